// Package requestsvc handles "wanted item" requests and resolves the
// items listed in answer to them.
package requestsvc

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

type Requests interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	FindByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	FindByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	FindAllExcept(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error)
}

type Users interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	FindByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

// RequestView embeds the items listed in answer to the request.
type RequestView struct {
	model.ItemRequest
	Items []model.Item `json:"items"`
}

type Service interface {
	Create(ctx context.Context, userID int64, description *string) (*model.ItemRequest, error)
	FindByRequestor(ctx context.Context, userID int64) ([]RequestView, error)
	FindAll(ctx context.Context, userID int64, from, size int) ([]RequestView, error)
	FindByID(ctx context.Context, userID, requestID int64) (*RequestView, error)
}

type service struct {
	requests Requests
	users    Users
	items    Items
	now      func() time.Time
}

func New(requests Requests, users Users, items Items) Service {
	return &service{requests: requests, users: users, items: items, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID int64, description *string) (*model.ItemRequest, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if description == nil || strings.TrimSpace(*description) == "" {
		return nil, fault.New(fault.InvalidInput, "request description must not be empty")
	}

	req := &model.ItemRequest{
		Description: *description,
		RequestorID: userID,
		Created:     s.now(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) FindByRequestor(ctx context.Context, userID int64) ([]RequestView, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.requests.FindByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, reqs)
}

// FindAll lists everyone else's requests, newest first.
func (s *service) FindAll(ctx context.Context, userID int64, from, size int) ([]RequestView, error) {
	if err := paging.Validate(from, size); err != nil {
		return nil, err
	}
	reqs, err := s.requests.FindAllExcept(ctx, userID, size, paging.Offset(from, size))
	if err != nil {
		return nil, err
	}
	return s.views(ctx, reqs)
}

func (s *service) FindByID(ctx context.Context, userID, requestID int64) (*RequestView, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "request with id %d not found", requestID)
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.view(ctx, req)
}

func (s *service) views(ctx context.Context, reqs []model.ItemRequest) ([]RequestView, error) {
	out := make([]RequestView, 0, len(reqs))
	for i := range reqs {
		v, err := s.view(ctx, &reqs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *service) view(ctx context.Context, req *model.ItemRequest) (*RequestView, error) {
	items, err := s.items.FindByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return &RequestView{ItemRequest: *req, Items: items}, nil
}

func (s *service) findUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "user with id %d not found", id)
	}
	return u, err
}
