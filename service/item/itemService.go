// Package itemsvc is the catalog: items, owner-only updates, search,
// and post-rental comments.
package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/roman3350/shareit/model"
	"github.com/roman3350/shareit/util/fault"
	"github.com/roman3350/shareit/util/paging"
)

type Items interface {
	Create(ctx context.Context, it *model.Item) error
	FindByID(ctx context.Context, id int64) (*model.Item, error)
	FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
}

type Users interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

type Bookings interface {
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FirstByBookerAndItem(ctx context.Context, bookerID, itemID int64) (*model.Booking, error)
}

type Comments interface {
	Create(ctx context.Context, c *model.Comment) error
	FindByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type Requests interface {
	FindByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

// CreateItem is the create payload after gateway binding; pointer fields
// distinguish absent from zero.
type CreateItem struct {
	Name        string
	Description *string
	Available   *bool
	RequestID   *int64
}

// UpdateItem carries a partial update; nil fields are left untouched.
type UpdateItem struct {
	Name        *string
	Description *string
	Available   *bool
}

type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemView is the item as returned to callers. LastBooking and
// NextBooking are present only on the owner's view.
type ItemView struct {
	model.Item
	LastBooking *BookingRef     `json:"lastBooking,omitempty"`
	NextBooking *BookingRef     `json:"nextBooking,omitempty"`
	Comments    []model.Comment `json:"comments"`
}

type Service interface {
	Create(ctx context.Context, userID int64, in CreateItem) (*model.Item, error)
	Update(ctx context.Context, userID, itemID int64, upd UpdateItem) (*model.Item, error)
	FindByID(ctx context.Context, userID, itemID int64) (*ItemView, error)
	FindByOwner(ctx context.Context, userID int64, from, size int) ([]ItemView, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	Delete(ctx context.Context, itemID int64) error
	CreateComment(ctx context.Context, userID, itemID int64, text string) (*model.Comment, error)
}

type service struct {
	items    Items
	users    Users
	bookings Bookings
	comments Comments
	requests Requests
	now      func() time.Time
}

func New(items Items, users Users, bookings Bookings, comments Comments, requests Requests) Service {
	return &service{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID int64, in CreateItem) (*model.Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fault.New(fault.InvalidInput, "item name must not be empty")
	}
	if in.Description == nil {
		return nil, fault.New(fault.InvalidInput, "item description must be set")
	}
	if in.Available == nil {
		return nil, fault.New(fault.InvalidInput, "item availability must be set")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if in.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *in.RequestID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fault.Newf(fault.NotFound, "request with id %d not found", *in.RequestID)
			}
			return nil, err
		}
	}

	it := &model.Item{
		Name:        in.Name,
		Description: *in.Description,
		Available:   *in.Available,
		OwnerID:     userID,
		RequestID:   in.RequestID,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, userID, itemID int64, upd UpdateItem) (*model.Item, error) {
	it, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != userID {
		return nil, fault.Newf(fault.Ownership, "user %d has no item with id %d", userID, itemID)
	}
	if upd.Name != nil {
		it.Name = *upd.Name
	}
	if upd.Description != nil {
		it.Description = *upd.Description
	}
	if upd.Available != nil {
		it.Available = *upd.Available
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) FindByID(ctx context.Context, userID, itemID int64) (*ItemView, error) {
	it, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, it, userID == it.OwnerID)
}

func (s *service) FindByOwner(ctx context.Context, userID int64, from, size int) ([]ItemView, error) {
	if err := paging.Validate(from, size); err != nil {
		return nil, err
	}
	items, err := s.items.FindByOwner(ctx, userID, size, paging.Offset(from, size))
	if err != nil {
		return nil, err
	}
	views := make([]ItemView, 0, len(items))
	for i := range items {
		v, err := s.view(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Search on an empty query returns an empty result set, never the full
// catalog.
func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if err := paging.Validate(from, size); err != nil {
		return nil, err
	}
	if text == "" {
		return []model.Item{}, nil
	}
	return s.items.Search(ctx, text, size, paging.Offset(from, size))
}

// Delete removes the item without an ownership check.
func (s *service) Delete(ctx context.Context, itemID int64) error {
	return s.items.Delete(ctx, itemID)
}

func (s *service) CreateComment(ctx context.Context, userID, itemID int64, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fault.New(fault.InvalidInput, "comment text must not be blank")
	}
	b, err := s.bookings.FirstByBookerAndItem(ctx, userID, itemID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if b == nil || b.Status == model.BookingRejected || b.Start.After(s.now()) {
		return nil, fault.Newf(fault.InvalidInput, "user %d has not rented item %d", userID, itemID)
	}
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findItem(ctx, itemID); err != nil {
		return nil, err
	}

	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   userID,
		AuthorName: u.Name,
		Created:    s.now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) view(ctx context.Context, it *model.Item, owner bool) (*ItemView, error) {
	comments, err := s.comments.FindByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	v := &ItemView{Item: *it, Comments: comments}
	if !owner {
		return v, nil
	}

	now := s.now()
	last, err := s.bookings.LastForItem(ctx, it.ID, now)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if last != nil {
		v.LastBooking = &BookingRef{ID: last.ID, BookerID: last.BookerID}
	}
	next, err := s.bookings.NextForItem(ctx, it.ID, now)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if next != nil {
		v.NextBooking = &BookingRef{ID: next.ID, BookerID: next.BookerID}
	}
	return v, nil
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
