// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
	BookingCanceled BookingStatus = "CANCELED"
)

// StateFilter selects a booking subset by temporal or status classification.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterCurrent  StateFilter = "CURRENT"
	FilterWaiting  StateFilter = "WAITING"
	FilterApproved StateFilter = "APPROVED"
	FilterCanceled StateFilter = "CANCELED"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter matches the token case-sensitively.
func ParseStateFilter(s string) (StateFilter, bool) {
	switch f := StateFilter(s); f {
	case FilterAll, FilterPast, FilterFuture, FilterCurrent,
		FilterWaiting, FilterApproved, FilterCanceled, FilterRejected:
		return f, true
	}
	return "", false
}

type Booking struct {
	ID       int64         `json:"id"`
	ItemID   int64         `json:"-"`
	BookerID int64         `json:"-"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`

	// Filled by joins on read, never written.
	ItemName    string `json:"-"`
	ItemOwnerID int64  `json:"-"`
}
