package requestrepo

import (
	"context"
	"database/sql"

	"github.com/roman3350/shareit/model"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	FindByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	FindByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	FindAllExcept(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	const q = `
		INSERT INTO requests (description, requestor_id, created)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		req.Description, req.RequestorID, req.Created,
	).Scan(&req.ID)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE id = $1`
	req := &model.ItemRequest{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&req.ID, &req.Description, &req.RequestorID, &req.Created)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) FindByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id = $1
		ORDER BY created`
	return r.list(ctx, q, requestorID)
}

func (r *repo) FindAllExcept(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id <> $1
		ORDER BY created DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, q, requestorID, limit, offset)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
