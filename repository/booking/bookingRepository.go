package bookingrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import

	"github.com/roman3350/shareit/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error

	ListByBooker(ctx context.Context, bookerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error)

	// LastForItem / NextForItem resolve the owner's item view: the latest
	// booking started before now and the next one starting after, both
	// skipping REJECTED.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)

	// FirstByBookerAndItem is the comment-eligibility lookup.
	FirstByBookerAndItem(ctx context.Context, bookerID, itemID int64) (*model.Booking, error)
}

const dialectPostgres = "postgres"

var pg = goqu.Dialect(dialectPostgres)

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (item_id, booker_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.ItemID, b.BookerID, b.Start, b.End, b.Status,
	).Scan(&b.ID)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = `
		SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status,
		       i.name, i.owner_id
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.id = $1`
	b := &model.Booking{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status,
		&b.ItemName, &b.ItemOwnerID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status)
	return err
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	ds := listDataset().Where(goqu.I("b.booker_id").Eq(bookerID))
	return r.listFiltered(ctx, ds, f, now, limit, offset)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	ds := listDataset().Where(goqu.I("i.owner_id").Eq(ownerID))
	return r.listFiltered(ctx, ds, f, now, limit, offset)
}

func listDataset() *goqu.SelectDataset {
	return pg.From(goqu.T("bookings").As("b")).
		Join(
			goqu.T("items").As("i"),
			goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id"))),
		).
		Select(
			goqu.I("b.id"), goqu.I("b.item_id"), goqu.I("b.booker_id"),
			goqu.I("b.start_date"), goqu.I("b.end_date"), goqu.I("b.status"),
			goqu.I("i.name"), goqu.I("i.owner_id"),
		)
}

// filterDataset narrows the dataset per the state filter. Every filter
// orders by end date descending except FUTURE, which orders by start.
func filterDataset(ds *goqu.SelectDataset, f model.StateFilter, now time.Time, limit, offset int) *goqu.SelectDataset {
	switch f {
	case model.FilterAll:
		ds = ds.Order(goqu.I("b.end_date").Desc())
	case model.FilterPast:
		ds = ds.Where(goqu.I("b.end_date").Lt(now)).
			Order(goqu.I("b.end_date").Desc())
	case model.FilterFuture:
		ds = ds.Where(
			goqu.I("b.status").In(model.BookingApproved, model.BookingWaiting),
			goqu.I("b.start_date").Gt(now),
		).Order(goqu.I("b.start_date").Desc())
	case model.FilterCurrent:
		ds = ds.Where(
			goqu.I("b.start_date").Lt(now),
			goqu.I("b.end_date").Gt(now),
		).Order(goqu.I("b.end_date").Desc())
	default:
		ds = ds.Where(goqu.I("b.status").Eq(string(f))).
			Order(goqu.I("b.end_date").Desc())
	}
	return ds.Limit(uint(limit)).Offset(uint(offset))
}

func (r *repo) listFiltered(ctx context.Context, ds *goqu.SelectDataset, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	q, args, err := filterDataset(ds, f, now, limit, offset).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status,
			&b.ItemName, &b.ItemOwnerID,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	const q = `
		SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status,
		       i.name, i.owner_id
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.item_id = $1
		  AND b.start_date < $2
		  AND b.status <> $3
		ORDER BY b.start_date DESC
		LIMIT 1`
	return r.one(ctx, q, itemID, now, model.BookingRejected)
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	const q = `
		SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status,
		       i.name, i.owner_id
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.item_id = $1
		  AND b.start_date > $2
		  AND b.status <> $3
		ORDER BY b.start_date
		LIMIT 1`
	return r.one(ctx, q, itemID, now, model.BookingRejected)
}

func (r *repo) FirstByBookerAndItem(ctx context.Context, bookerID, itemID int64) (*model.Booking, error) {
	const q = `
		SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status,
		       i.name, i.owner_id
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.booker_id = $1
		  AND b.item_id = $2
		ORDER BY b.id
		LIMIT 1`
	return r.one(ctx, q, bookerID, itemID)
}

func (r *repo) one(ctx context.Context, q string, args ...any) (*model.Booking, error) {
	b := &model.Booking{}
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status,
		&b.ItemName, &b.ItemOwnerID)
	if err != nil {
		return nil, err
	}
	return b, nil
}
