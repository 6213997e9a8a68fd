package bookingsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roman3350/shareit/model"
	bookingsvc "github.com/roman3350/shareit/service/booking"
	"github.com/roman3350/shareit/util/fault"
)

type bookingsMock struct {
	createFn     func(ctx context.Context, b *model.Booking) error
	findFn       func(ctx context.Context, id int64) (*model.Booking, error)
	updateFn     func(ctx context.Context, id int64, status model.BookingStatus) error
	listBookerFn func(ctx context.Context, bookerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error)
	listOwnerFn  func(ctx context.Context, ownerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error)
}

func (m *bookingsMock) Create(ctx context.Context, b *model.Booking) error {
	if m.createFn == nil {
		b.ID = 1
		return nil
	}
	return m.createFn(ctx, b)
}

func (m *bookingsMock) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	if m.findFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.findFn(ctx, id)
}

func (m *bookingsMock) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, id, status)
}

func (m *bookingsMock) ListByBooker(ctx context.Context, bookerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	return m.listBookerFn(ctx, bookerID, f, now, limit, offset)
}

func (m *bookingsMock) ListByOwner(ctx context.Context, ownerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	return m.listOwnerFn(ctx, ownerID, f, now, limit, offset)
}

type usersMock struct {
	findFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *usersMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findFn == nil {
		return &model.User{ID: id, Name: "user", Email: "user@example.com"}, nil
	}
	return m.findFn(ctx, id)
}

type itemsMock struct {
	findFn func(ctx context.Context, id int64) (*model.Item, error)
}

func (m *itemsMock) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.findFn == nil {
		return &model.Item{ID: id, Name: "drill", Available: true, OwnerID: 99}, nil
	}
	return m.findFn(ctx, id)
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(b *bookingsMock, u *usersMock, i *itemsMock) bookingsvc.Service {
	return bookingsvc.NewWithClock(b, u, i, func() time.Time { return testNow })
}

func window(startOffset, endOffset time.Duration) (*time.Time, *time.Time) {
	start := testNow.Add(startOffset)
	end := testNow.Add(endOffset)
	return &start, &end
}

func TestCreate_Waiting(t *testing.T) {
	ctx := context.Background()
	var saved *model.Booking
	b := &bookingsMock{
		createFn: func(ctx context.Context, bk *model.Booking) error {
			bk.ID = 7
			saved = bk
			return nil
		},
	}
	s := newService(b, &usersMock{}, &itemsMock{})

	start, end := window(time.Hour, 2*time.Hour)
	got, err := s.Create(ctx, 5, 3, start, end)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
	require.Equal(t, model.BookingWaiting, got.Status)
	require.Equal(t, int64(5), saved.BookerID)
	require.Equal(t, int64(3), saved.ItemID)
}

func TestCreate_StartAtNowAllowed(t *testing.T) {
	s := newService(&bookingsMock{}, &usersMock{}, &itemsMock{})

	start := testNow
	end := testNow.Add(time.Hour)
	_, err := s.Create(context.Background(), 5, 3, &start, &end)
	require.NoError(t, err)
}

func TestCreate_OwnerCannotBookOwnItem(t *testing.T) {
	i := &itemsMock{
		findFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Available: true, OwnerID: 5}, nil
		},
	}
	s := newService(&bookingsMock{}, &usersMock{}, i)

	start, end := window(time.Hour, 2*time.Hour)
	_, err := s.Create(context.Background(), 5, 3, start, end)
	require.Error(t, err)
	require.Equal(t, fault.Ownership, fault.KindOf(err))
}

func TestCreate_OwnerCheckIgnoresWindow(t *testing.T) {
	// The owner check fires before window validation, so even a broken
	// window reports ownership.
	i := &itemsMock{
		findFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Available: true, OwnerID: 5}, nil
		},
	}
	s := newService(&bookingsMock{}, &usersMock{}, i)

	start, end := window(2*time.Hour, time.Hour) // start after end
	_, err := s.Create(context.Background(), 5, 3, start, end)
	require.Equal(t, fault.Ownership, fault.KindOf(err))
}

func TestCreate_InvalidWindow(t *testing.T) {
	s := newService(&bookingsMock{}, &usersMock{}, &itemsMock{})
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end *time.Time
	}{
		{"nil start", nil, ptr(testNow.Add(time.Hour))},
		{"nil end", ptr(testNow.Add(time.Hour)), nil},
		{"start equals end", ptr(testNow.Add(time.Hour)), ptr(testNow.Add(time.Hour))},
		{"start after end", ptr(testNow.Add(2 * time.Hour)), ptr(testNow.Add(time.Hour))},
		{"start in past", ptr(testNow.Add(-time.Minute)), ptr(testNow.Add(time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, 5, 3, tc.start, tc.end)
			require.Error(t, err)
			require.Equal(t, fault.InvalidInput, fault.KindOf(err))
		})
	}
}

func TestCreate_ItemUnavailable(t *testing.T) {
	i := &itemsMock{
		findFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Available: false, OwnerID: 99}, nil
		},
	}
	s := newService(&bookingsMock{}, &usersMock{}, i)

	start, end := window(time.Hour, 2*time.Hour)
	_, err := s.Create(context.Background(), 5, 3, start, end)
	require.Equal(t, fault.InvalidInput, fault.KindOf(err))
}

func TestCreate_UnknownUserOrItem(t *testing.T) {
	start, end := window(time.Hour, 2*time.Hour)

	s := newService(&bookingsMock{}, &usersMock{
		findFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}, &itemsMock{})
	_, err := s.Create(context.Background(), 5, 3, start, end)
	require.Equal(t, fault.NotFound, fault.KindOf(err))

	s = newService(&bookingsMock{}, &usersMock{}, &itemsMock{
		findFn: func(ctx context.Context, id int64) (*model.Item, error) { return nil, sql.ErrNoRows },
	})
	_, err = s.Create(context.Background(), 5, 3, start, end)
	require.Equal(t, fault.NotFound, fault.KindOf(err))
}

// Two renters can hold overlapping WAITING bookings on one item: there
// is no exclusion between concurrent bookings, a known gap.
func TestCreate_NoOverlapExclusion(t *testing.T) {
	s := newService(&bookingsMock{}, &usersMock{}, &itemsMock{})
	ctx := context.Background()

	start, end := window(time.Hour, 2*time.Hour)
	_, err := s.Create(ctx, 5, 3, start, end)
	require.NoError(t, err)
	_, err = s.Create(ctx, 6, 3, start, end)
	require.NoError(t, err)
}

func respondMocks(status model.BookingStatus) *bookingsMock {
	return &bookingsMock{
		findFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{
				ID: id, ItemID: 3, BookerID: 5, Status: status,
				Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour),
				ItemOwnerID: 99,
			}, nil
		},
	}
}

func TestRespond_Approve(t *testing.T) {
	b := respondMocks(model.BookingWaiting)
	var updated model.BookingStatus
	b.updateFn = func(ctx context.Context, id int64, status model.BookingStatus) error {
		updated = status
		return nil
	}
	s := newService(b, &usersMock{}, &itemsMock{})

	got, err := s.Respond(context.Background(), 99, 1, true)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, got.Status)
	require.Equal(t, model.BookingApproved, updated)
}

func TestRespond_ApproveTwiceFails(t *testing.T) {
	s := newService(respondMocks(model.BookingApproved), &usersMock{}, &itemsMock{})

	_, err := s.Respond(context.Background(), 99, 1, true)
	require.Error(t, err)
	require.Equal(t, fault.AlreadyApproved, fault.KindOf(err))
}

// Reject has no status guard: any booking, approved or already
// rejected, ends up REJECTED.
func TestRespond_RejectUnguarded(t *testing.T) {
	for _, status := range []model.BookingStatus{
		model.BookingWaiting, model.BookingApproved, model.BookingRejected,
	} {
		s := newService(respondMocks(status), &usersMock{}, &itemsMock{})

		got, err := s.Respond(context.Background(), 99, 1, false)
		require.NoError(t, err, "status %s", status)
		require.Equal(t, model.BookingRejected, got.Status)
	}
}

func TestRespond_OnlyOwner(t *testing.T) {
	s := newService(respondMocks(model.BookingWaiting), &usersMock{}, &itemsMock{})

	// The booker cannot approve their own booking.
	_, err := s.Respond(context.Background(), 5, 1, true)
	require.Equal(t, fault.Ownership, fault.KindOf(err))
}

func TestRespond_MissingBooking(t *testing.T) {
	s := newService(&bookingsMock{}, &usersMock{}, &itemsMock{})

	_, err := s.Respond(context.Background(), 99, 1, true)
	require.Equal(t, fault.NotFound, fault.KindOf(err))
}

func TestFindByID_Authorization(t *testing.T) {
	s := newService(respondMocks(model.BookingWaiting), &usersMock{}, &itemsMock{})
	ctx := context.Background()

	_, err := s.FindByID(ctx, 5, 1) // booker
	require.NoError(t, err)
	_, err = s.FindByID(ctx, 99, 1) // item owner
	require.NoError(t, err)
	_, err = s.FindByID(ctx, 42, 1) // stranger
	require.Equal(t, fault.Ownership, fault.KindOf(err))
}

func TestList_PageArithmetic(t *testing.T) {
	cases := []struct {
		from, size int
		wantOffset int
	}{
		{0, 10, 0},
		{15, 5, 15},
		{7, 5, 5},
		{4, 5, 0},
	}
	for _, tc := range cases {
		var gotLimit, gotOffset int
		b := &bookingsMock{
			listBookerFn: func(ctx context.Context, bookerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
				gotLimit, gotOffset = limit, offset
				return nil, nil
			},
		}
		s := newService(b, &usersMock{}, &itemsMock{})

		_, err := s.ListByBooker(context.Background(), 5, "ALL", tc.from, tc.size)
		require.NoError(t, err)
		require.Equal(t, tc.size, gotLimit, "from=%d size=%d", tc.from, tc.size)
		require.Equal(t, tc.wantOffset, gotOffset, "from=%d size=%d", tc.from, tc.size)
	}
}

func TestList_InvalidPage(t *testing.T) {
	s := newService(&bookingsMock{}, &usersMock{}, &itemsMock{})
	ctx := context.Background()

	_, err := s.ListByBooker(ctx, 5, "ALL", 0, 0)
	require.Equal(t, fault.InvalidInput, fault.KindOf(err))
	_, err = s.ListByBooker(ctx, 5, "ALL", -1, 10)
	require.Equal(t, fault.InvalidInput, fault.KindOf(err))
	_, err = s.ListByOwner(ctx, 5, "ALL", 0, -3)
	require.Equal(t, fault.InvalidInput, fault.KindOf(err))
}

func TestList_UnsupportedState(t *testing.T) {
	s := newService(&bookingsMock{}, &usersMock{}, &itemsMock{})
	ctx := context.Background()

	for _, state := range []string{"BOGUS", "all", "Past", ""} {
		_, err := s.ListByBooker(ctx, 5, state, 0, 10)
		require.Error(t, err, "state %q", state)
		require.Equal(t, fault.UnsupportedState, fault.KindOf(err), "state %q", state)
		require.EqualError(t, err, "Unknown state: UNSUPPORTED_STATUS")
	}
}

func TestList_PassesFilterAndClock(t *testing.T) {
	var gotFilter model.StateFilter
	var gotNow time.Time
	b := &bookingsMock{
		listOwnerFn: func(ctx context.Context, ownerID int64, f model.StateFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
			gotFilter, gotNow = f, now
			return nil, nil
		},
	}
	s := newService(b, &usersMock{}, &itemsMock{})

	_, err := s.ListByOwner(context.Background(), 5, "FUTURE", 0, 10)
	require.NoError(t, err)
	require.Equal(t, model.FilterFuture, gotFilter)
	require.Equal(t, testNow, gotNow)
}

func TestList_UnknownUser(t *testing.T) {
	u := &usersMock{
		findFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}
	s := newService(&bookingsMock{}, u, &itemsMock{})

	_, err := s.ListByBooker(context.Background(), 5, "ALL", 0, 10)
	require.Equal(t, fault.NotFound, fault.KindOf(err))
}

func ptr(t time.Time) *time.Time { return &t }
