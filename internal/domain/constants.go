package domain

// Defaults
const (
	DefaultTimezone = "America/Sao_Paulo"
	DefaultPageSize = 20
)

// Business validation constants
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
	MaxNameLength  = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
