package service

import (
	"bytes"
	"encoding/json"
)

// OptionalInt distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present in the body; Value is nil for null.
type OptionalInt struct {
	Set   bool
	Value *int
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// IntValue returns an OptionalInt holding v
func IntValue(v int) OptionalInt {
	return OptionalInt{Set: true, Value: &v}
}

// NullInt returns an OptionalInt holding an explicit null
func NullInt() OptionalInt {
	return OptionalInt{Set: true}
}
