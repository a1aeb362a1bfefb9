package models

import (
	"database/sql/driver"
	"fmt"
)

// Role is the closed set of user roles
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// TeamStatus is the lifecycle state of a team
type TeamStatus string

const (
	TeamStatusPending  TeamStatus = "pending"
	TeamStatusApproved TeamStatus = "approved"
	TeamStatusRejected TeamStatus = "rejected"
	TeamStatusBlocked  TeamStatus = "blocked"
)

// ScheduleStatus is the state of a scrim event
type ScheduleStatus string

const (
	ScheduleStatusUpcoming  ScheduleStatus = "upcoming"
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// IsValid checks if the Role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// IsValid checks if the TeamStatus is valid
func (s TeamStatus) IsValid() bool {
	switch s {
	case TeamStatusPending, TeamStatusApproved, TeamStatusRejected, TeamStatusBlocked:
		return true
	}
	return false
}

// IsValid checks if the ScheduleStatus is valid
func (s ScheduleStatus) IsValid() bool {
	switch s {
	case ScheduleStatusUpcoming, ScheduleStatusActive, ScheduleStatusCompleted, ScheduleStatusCancelled:
		return true
	}
	return false
}

// Value rejects unknown roles before they reach the database
func (r Role) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %q", string(r))
	}
	return string(r), nil
}

// Scan implements sql.Scanner
func (r *Role) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	if !Role(s).IsValid() {
		return fmt.Errorf("invalid role %q", s)
	}
	*r = Role(s)
	return nil
}

// Value rejects unknown team statuses before they reach the database
func (s TeamStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid team status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *TeamStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	if !TeamStatus(v).IsValid() {
		return fmt.Errorf("invalid team status %q", v)
	}
	*s = TeamStatus(v)
	return nil
}

// Value rejects unknown schedule statuses before they reach the database
func (s ScheduleStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid schedule status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *ScheduleStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	if !ScheduleStatus(v).IsValid() {
		return fmt.Errorf("invalid schedule status %q", v)
	}
	*s = ScheduleStatus(v)
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into enum", src)
	}
}
