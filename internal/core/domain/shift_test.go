package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestDiffShift(t *testing.T) {
	start := time.Date(2026, 3, 6, 13, 0, 0, 0, time.UTC)
	prev := Shift{StartTime: start, LocationName: "Hall A", Address: "12 Main St", Notes: "a"}
	next := prev
	next.StartTime = start.Add(90 * time.Minute)
	next.LocationName = "Hall B"
	next.Notes = "b"

	got := DiffShift(prev, next)

	want := ShiftChanges{
		FieldStartTime:    {From: "2026-03-06T13:00:00Z", To: "2026-03-06T14:30:00Z"},
		FieldLocationName: {From: "Hall A", To: "Hall B"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DiffShift = %v, want %v", got, want)
	}
}

func TestShiftChanges_Notifiable(t *testing.T) {
	changes := ShiftChanges{
		FieldAddress:      {From: "1", To: "2"},
		FieldLocationName: {From: "Hall A", To: "Hall A"},
		FieldStartTime:    {From: "x", To: "y"},
		"notes":           {From: "a", To: "b"},
	}

	got := changes.Notifiable()

	want := []string{FieldStartTime, FieldAddress}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Notifiable = %v, want %v", got, want)
	}
}

func TestShift_Validate(t *testing.T) {
	start := time.Date(2026, 3, 6, 13, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	if err := (&Shift{StartTime: start, EndTime: &before}).Validate(); !errors.Is(err, ErrInvalidShiftWindow) {
		t.Errorf("expected ErrInvalidShiftWindow, got %v", err)
	}
	if err := (&Shift{StartTime: start, JobType: "catering"}).Validate(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
	if err := (&Shift{StartTime: start, JobType: JobLights}).Validate(); err != nil {
		t.Errorf("expected valid shift, got %v", err)
	}
}

func TestRollbackError(t *testing.T) {
	profileErr := errors.New("profile write")
	deleteErr := errors.New("delete")
	err := error(&RollbackError{IdentityID: "id-1", Original: profileErr, Rollback: deleteErr})

	if !errors.Is(err, ErrRollbackFailed) {
		t.Error("expected RollbackError to match ErrRollbackFailed")
	}
	if !errors.Is(err, profileErr) || !errors.Is(err, deleteErr) {
		t.Error("expected RollbackError to unwrap both causes")
	}
}
