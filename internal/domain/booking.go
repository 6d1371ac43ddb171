package domain

import "time"

// Booking represents a reserved slot. Created together with the slot
// transition to booked and never changed afterwards.
type Booking struct {
	ID          string
	CompanyName string
	ContactName string
	Phone       string
	ServiceID   string
	TimeSlotID  string
	CreatedAt   time.Time
}

// BookingView is a read-only join of Booking, TimeSlot and Service
type BookingView struct {
	BookingID   string
	CompanyName string
	ContactName string
	Phone       string
	ServiceName string
	StartAt     time.Time
	EndAt       time.Time
	CreatedAt   time.Time
}

// BookingsFilter holds optional filters combined with AND.
// StartFrom/StartTo are inclusive bounds on the slot start.
type BookingsFilter struct {
	ServiceName *string
	StartFrom   *time.Time
	StartTo     *time.Time
	SearchText  *string
}

// IsEmpty returns true if no filter is set
func (f BookingsFilter) IsEmpty() bool {
	return f.ServiceName == nil && f.StartFrom == nil && f.StartTo == nil && f.SearchText == nil
}

// Page is a 1-indexed page request
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Beyond returns true if the page starts at or after row total.
// Compared in pages, so a huge Number does not overflow Offset.
func (p Page) Beyond(total int) bool {
	if p.Size <= 0 {
		return true
	}
	if p.Number < 1 {
		return total == 0
	}
	pages := (total + p.Size - 1) / p.Size
	return p.Number-1 >= pages
}

// BookingsPage is one page of the filtered booking views
type BookingsPage struct {
	Items      []BookingView
	TotalCount int
	Page       int
	PageSize   int
}

// TotalPages returns the number of pages for TotalCount
func (p BookingsPage) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount == 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}
