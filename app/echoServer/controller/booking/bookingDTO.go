package booking

import (
	"time"

	"github.com/roman3350/shareit/model"
)

type CreateBookingReq struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type BookerRef struct {
	ID int64 `json:"id"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResp struct {
	ID     int64               `json:"id"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Status model.BookingStatus `json:"status"`
	Booker BookerRef           `json:"booker"`
	Item   ItemRef             `json:"item"`
}

func toResp(b *model.Booking) BookingResp {
	return BookingResp{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: BookerRef{ID: b.BookerID},
		Item:   ItemRef{ID: b.ItemID, Name: b.ItemName},
	}
}

func toRespList(bs []model.Booking) []BookingResp {
	out := make([]BookingResp, 0, len(bs))
	for i := range bs {
		out = append(out, toResp(&bs[i]))
	}
	return out
}
