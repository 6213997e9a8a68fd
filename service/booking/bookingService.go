// Package bookingsvc is the booking lifecycle: create a WAITING booking,
// let the item's owner approve or reject it, and classify bookings by
// role, status and time window.
package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/roman3350/shareit/model"
	"github.com/roman3350/shareit/util/fault"
	"github.com/roman3350/shareit/util/paging"
)

type Bookings interface {
	Create(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	ListByBooker(ctx context.Context, bookerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error)
}

type Users interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	FindByID(ctx context.Context, id int64) (*model.Item, error)
}

type Service interface {
	// Create persists a new WAITING booking for the caller.
	Create(ctx context.Context, userID, itemID int64, start, end *time.Time) (*model.Booking, error)

	// Respond lets the item's owner approve or reject a booking.
	// Approving an already-approved booking fails; rejecting never
	// checks the current status.
	Respond(ctx context.Context, userID, bookingID int64, approved bool) (*model.Booking, error)

	// FindByID returns a booking to its booker or the item's owner.
	FindByID(ctx context.Context, userID, bookingID int64) (*model.Booking, error)

	ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
}

type service struct {
	bookings Bookings
	users    Users
	items    Items
	now      func() time.Time
}

func New(bookings Bookings, users Users, items Items) Service {
	return NewWithClock(bookings, users, items, time.Now)
}

// NewWithClock fixes the reference instant used for window validation
// and list classification.
func NewWithClock(bookings Bookings, users Users, items Items, now func() time.Time) Service {
	return &service{bookings: bookings, users: users, items: items, now: now}
}

func (s *service) Create(ctx context.Context, userID, itemID int64, start, end *time.Time) (*model.Booking, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if userID == item.OwnerID {
		return nil, fault.Newf(fault.Ownership, "booker id %d matches the owner of item %d", userID, itemID)
	}
	if err := s.validateWindow(start, end); err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fault.Newf(fault.InvalidInput, "item with id %d is not available", itemID)
	}

	b := &model.Booking{
		ItemID:      itemID,
		BookerID:    userID,
		Start:       *start,
		End:         *end,
		Status:      model.BookingWaiting,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Respond(ctx context.Context, userID, bookingID int64, approved bool) (*model.Booking, error) {
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != userID {
		return nil, fault.Newf(fault.Ownership, "user %d is not the owner of the booked item", userID)
	}
	if approved {
		if b.Status == model.BookingApproved {
			return nil, fault.Newf(fault.AlreadyApproved, "booking %d is already approved", bookingID)
		}
		b.Status = model.BookingApproved
	} else {
		b.Status = model.BookingRejected
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, b.Status); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) FindByID(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != userID && b.ItemOwnerID != userID {
		return nil, fault.Newf(fault.Ownership, "user %d is neither booker nor owner of booking %d", userID, bookingID)
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	f, offset, err := s.listArgs(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, userID, f, s.now(), size, offset)
}

func (s *service) ListByOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	f, offset, err := s.listArgs(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, userID, f, s.now(), size, offset)
}

func (s *service) listArgs(ctx context.Context, userID int64, state string, from, size int) (model.StateFilter, int, error) {
	if err := paging.Validate(from, size); err != nil {
		return "", 0, err
	}
	f, ok := model.ParseStateFilter(state)
	if !ok {
		return "", 0, fault.New(fault.UnsupportedState, "Unknown state: UNSUPPORTED_STATUS")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return "", 0, err
	}
	return f, paging.Offset(from, size), nil
}

func (s *service) validateWindow(start, end *time.Time) error {
	if start == nil || end == nil {
		return fault.New(fault.InvalidInput, "booking start and end must be set")
	}
	if !start.Before(*end) {
		return fault.New(fault.InvalidInput, "booking start must be before end")
	}
	if start.Before(s.now()) {
		return fault.New(fault.InvalidInput, "booking start must not be in the past")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "user with id %d not found", id)
	}
	return u, err
}

func (s *service) findItem(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.items.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "item with id %d not found", id)
	}
	return it, err
}

func (s *service) findBooking(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "booking with id %d not found", id)
	}
	return b, err
}
