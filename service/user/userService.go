// Package usersvc is the identity store: registration, partial updates
// and the unique-email rule.
package usersvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/roman3350/shareit/model"
	userrepo "github.com/roman3350/shareit/repository/user"
	"github.com/roman3350/shareit/util/fault"
	"github.com/roman3350/shareit/util/paging"
)

// UpdateUser carries a partial update; nil fields are left untouched.
type UpdateUser struct {
	Name  *string
	Email *string
}

type Service interface {
	FindAll(ctx context.Context, from, size int) ([]model.User, error)
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	Create(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, userID int64, upd UpdateUser) (*model.User, error)
	Delete(ctx context.Context, userID int64) error
}

type service struct {
	users userrepo.Repo
}

func New(users userrepo.Repo) Service { return &service{users: users} }

func (s *service) FindAll(ctx context.Context, from, size int) ([]model.User, error) {
	if err := paging.Validate(from, size); err != nil {
		return nil, err
	}
	return s.users.FindAll(ctx, size, paging.Offset(from, size))
}

func (s *service) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.find(ctx, userID)
}

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.users.Create(ctx, u); err != nil {
		if userrepo.IsUniqueViolation(err) {
			return nil, fault.Newf(fault.DuplicateEmail, "email %s is already registered", email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, userID int64, upd UpdateUser) (*model.User, error) {
	u, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if err := s.users.Update(ctx, u); err != nil {
		if userrepo.IsUniqueViolation(err) {
			return nil, fault.Newf(fault.DuplicateEmail, "email %s is already registered", u.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, userID int64) error {
	if _, err := s.find(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

func (s *service) find(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.Newf(fault.NotFound, "user with id %d not found", id)
	}
	return u, err
}
