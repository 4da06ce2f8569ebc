package domain

import (
	"errors"
	"time"
)

// JobType tags the kind of crew work a shift covers.
type JobType string

const (
	JobSetup     JobType = "setup"
	JobLights    JobType = "lights"
	JobBreakdown JobType = "breakdown"
	JobOther     JobType = "other"
)

// Valid reports whether j is one of the known job types.
func (j JobType) Valid() bool {
	switch j {
	case JobSetup, JobLights, JobBreakdown, JobOther:
		return true
	}
	return false
}

// ShiftStatus represents the lifecycle state of a shift.
type ShiftStatus string

const (
	ShiftDraft     ShiftStatus = "draft"
	ShiftConfirmed ShiftStatus = "confirmed"
	ShiftChanged   ShiftStatus = "changed"
)

var ErrShiftNotFound = errors.New("shift not found")
var ErrInvalidShiftWindow = errors.New("shift end time must be after start time")

// Shift is a scheduled block of work with time bounds and a location.
type Shift struct {
	ID           string      `json:"id"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      *time.Time  `json:"end_time,omitempty"` // optional
	LocationName string      `json:"location_name,omitempty"`
	Address      string      `json:"address,omitempty"`
	JobType      JobType     `json:"job_type"`
	Notes        string      `json:"notes,omitempty"`
	Status       ShiftStatus `json:"status"`
	CreatedBy    string      `json:"created_by,omitempty"`
}

// Validate checks the invariants every stored shift must hold.
func (s *Shift) Validate() error {
	if s.EndTime != nil && !s.EndTime.After(s.StartTime) {
		return ErrInvalidShiftWindow
	}
	if s.JobType != "" && !s.JobType.Valid() {
		return ErrInvalidRequest
	}
	return nil
}

// Notifiable shift fields, in the order they are mentioned in messages.
const (
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldLocationName = "location_name"
	FieldAddress      = "address"
)

var NotifiableFields = []string{FieldStartTime, FieldEndTime, FieldLocationName, FieldAddress}

// FieldChange is the before/after value of a single shift field.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ShiftChanges maps a field name to its change. Unknown fields are carried
// but never mentioned to workers.
type ShiftChanges map[string]FieldChange

// Notifiable returns the subset of changes workers are told about, in
// message order. A field whose value did not actually change is dropped.
func (c ShiftChanges) Notifiable() []string {
	fields := make([]string, 0, len(NotifiableFields))
	for _, f := range NotifiableFields {
		ch, ok := c[f]
		if !ok || ch.From == ch.To {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// DiffShift compares two versions of the same shift and returns the changes
// to the notifiable fields. Times are encoded as RFC 3339.
func DiffShift(prev, next Shift) ShiftChanges {
	changes := ShiftChanges{}

	add := func(field, from, to string) {
		if from != to {
			changes[field] = FieldChange{From: from, To: to}
		}
	}

	add(FieldStartTime, formatTime(&prev.StartTime), formatTime(&next.StartTime))
	add(FieldEndTime, formatTime(prev.EndTime), formatTime(next.EndTime))
	add(FieldLocationName, prev.LocationName, next.LocationName)
	add(FieldAddress, prev.Address, next.Address)

	return changes
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
