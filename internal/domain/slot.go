package domain

import "time"

// TimeSlot represents a fixed time window offered for one service
type TimeSlot struct {
	ID        string
	ServiceID string
	StartAt   time.Time
	EndAt     time.Time
	IsBooked  bool
}

// IsOpenAt returns true if the slot can still be offered at asOf:
// not booked and not started yet
func (s TimeSlot) IsOpenAt(asOf time.Time) bool {
	return !s.IsBooked && !s.StartAt.Before(asOf)
}

// Duration returns the slot length
func (s TimeSlot) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// Valid reports whether the slot window is well formed
func (s TimeSlot) Valid() bool {
	return s.StartAt.Before(s.EndAt)
}
