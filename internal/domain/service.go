package domain

import "time"

// Service is an immutable catalog entry that slots are offered for
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	CreatedAt       time.Time
}

// Duration returns the nominal slot length of the service
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
