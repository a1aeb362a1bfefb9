package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scrim-portal-backend/internal/config"
	"scrim-portal-backend/internal/database"
	"scrim-portal-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type UserData struct {
	ID        string `yaml:"id"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
}

type ScheduleData struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Date        time.Time `yaml:"date"`
	MaxTeams    int       `yaml:"max_teams"`
	Status      string    `yaml:"status"`
}

type ResultData struct {
	Title         string    `yaml:"title"`
	ScheduleTitle string    `yaml:"schedule_title,omitempty"`
	Description   string    `yaml:"description"`
	ImageURL      string    `yaml:"image_url,omitempty"`
	Date          time.Time `yaml:"date"`
}

// File structures
type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type SchedulesFile struct {
	Schedules []ScheduleData `yaml:"schedules"`
}

type ResultsFile struct {
	Results []ResultData `yaml:"results"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Configure database options to suppress verbose logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var users UsersFile
	if err := walkYAML(dataDir, "users", func(data []byte) error {
		var file UsersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		users.Users = append(users.Users, file.Users...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	var schedules SchedulesFile
	if err := walkYAML(dataDir, "schedules", func(data []byte) error {
		var file SchedulesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		schedules.Schedules = append(schedules.Schedules, file.Schedules...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}

	var results ResultsFile
	if err := walkYAML(dataDir, "results", func(data []byte) error {
		var file ResultsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		results.Results = append(results.Results, file.Results...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	// Create users first
	userCreated := 0
	for _, userData := range users.Users {
		created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.ID, err)
		}
		if created {
			userCreated++
		}
	}
	log.Printf("📋 Users: %d created, %d total", userCreated, len(users.Users))

	// Create schedules (results reference them by title)
	scheduleMap := make(map[string]*models.Schedule)
	scheduleCreated := 0
	for _, scheduleData := range schedules.Schedules {
		schedule, created, err := createSchedule(db, scheduleData)
		if err != nil {
			return fmt.Errorf("failed to create schedule %s: %w", scheduleData.Title, err)
		}
		scheduleMap[scheduleData.Title] = schedule
		if created {
			scheduleCreated++
		}
	}
	log.Printf("📋 Schedules: %d created, %d total", scheduleCreated, len(schedules.Schedules))

	// Create results
	resultCreated := 0
	for _, resultData := range results.Results {
		created, err := createResult(db, resultData, scheduleMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create result %s: %v", resultData.Title, err)
			continue
		}
		if created {
			resultCreated++
		}
	}
	log.Printf("📋 Results: %d created, %d total", resultCreated, len(results.Results))

	return nil
}

// walkYAML feeds every .yaml file under dataDir whose path contains keyword to load
func walkYAML(dataDir, keyword string, load func(data []byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(filepath.Base(path), keyword) {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := load(data); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	})
}

func createUser(db *gorm.DB, userData UserData) (bool, error) {
	role := models.RoleUser
	if userData.Role != "" {
		role = models.Role(userData.Role)
	}
	if !role.IsValid() {
		return false, fmt.Errorf("invalid role %q", userData.Role)
	}

	var user models.User
	err := db.Where("id = ?", userData.ID).First(&user).Error
	if err == nil {
		// Seeded roles are authoritative on re-runs
		if user.Role != role {
			return false, db.Model(&user).Update("role", role).Error
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query user: %w", err)
	}

	user = models.User{
		ID:        userData.ID,
		Email:     optional(userData.Email),
		FirstName: optional(userData.FirstName),
		LastName:  optional(userData.LastName),
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, fmt.Errorf("failed to create user: %w", err)
	}
	return true, nil
}

func createSchedule(db *gorm.DB, scheduleData ScheduleData) (*models.Schedule, bool, error) {
	var schedule models.Schedule
	err := db.Where("title = ? AND date = ?", scheduleData.Title, scheduleData.Date).First(&schedule).Error
	if err == nil {
		return &schedule, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query schedule: %w", err)
	}

	status := models.ScheduleStatusUpcoming
	if scheduleData.Status != "" {
		status = models.ScheduleStatus(scheduleData.Status)
	}
	maxTeams := scheduleData.MaxTeams
	if maxTeams == 0 {
		maxTeams = models.DefaultMaxTeams
	}

	schedule = models.Schedule{
		Title:       scheduleData.Title,
		Description: optional(scheduleData.Description),
		Date:        scheduleData.Date,
		MaxTeams:    maxTeams,
		Status:      status,
	}
	if err := db.Create(&schedule).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create schedule: %w", err)
	}
	return &schedule, true, nil
}

func createResult(db *gorm.DB, resultData ResultData, scheduleMap map[string]*models.Schedule) (bool, error) {
	result := models.Result{
		Title:       resultData.Title,
		Description: optional(resultData.Description),
		ImageURL:    optional(resultData.ImageURL),
		Date:        resultData.Date,
	}
	if resultData.ScheduleTitle != "" {
		schedule := scheduleMap[resultData.ScheduleTitle]
		if schedule == nil {
			return false, fmt.Errorf("schedule %s not found for result %s", resultData.ScheduleTitle, resultData.Title)
		}
		result.ScheduleID = &schedule.ID
	}
	if result.Date.IsZero() {
		result.Date = time.Now().UTC()
	}

	var existing models.Result
	err := db.Where("title = ?", resultData.Title).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query result: %w", err)
	}

	if err := db.Create(&result).Error; err != nil {
		return false, fmt.Errorf("failed to create result: %w", err)
	}
	return true, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
