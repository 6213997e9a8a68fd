package booking

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/app/echoServer/httperr"
	"github.com/roman3350/shareit/model"
	bookingsvc "github.com/roman3350/shareit/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "booking create", err)
	}
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start, req.End)
	if err != nil {
		return httperr.JSON(c, h.Log, "booking create", err)
	}
	return c.JSON(http.StatusCreated, toResp(b))
}

// PATCH /bookings/:bookingId?approved=
func (h *Controller) Respond(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "booking respond", err)
	}
	id, err := httperr.PathID(c, "bookingId")
	if err != nil {
		return httperr.JSON(c, h.Log, "booking respond", err)
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}

	b, err := h.Svc.Respond(c.Request().Context(), uid, id, approved)
	if err != nil {
		return httperr.JSON(c, h.Log, "booking respond", err)
	}
	return c.JSON(http.StatusOK, toResp(b))
}

// GET /bookings/:bookingId
func (h *Controller) FindByID(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "booking find", err)
	}
	id, err := httperr.PathID(c, "bookingId")
	if err != nil {
		return httperr.JSON(c, h.Log, "booking find", err)
	}

	b, err := h.Svc.FindByID(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.JSON(c, h.Log, "booking find", err)
	}
	return c.JSON(http.StatusOK, toResp(b))
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListByBooker(c echo.Context) error {
	return h.list(c, "bookings by booker", h.Svc.ListByBooker)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListByOwner(c echo.Context) error {
	return h.list(c, "bookings by owner", h.Svc.ListByOwner)
}

type listFn func(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)

func (h *Controller) list(c echo.Context, op string, fn listFn) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, op, err)
	}
	from, size, err := httperr.Page(c)
	if err != nil {
		return httperr.JSON(c, h.Log, op, err)
	}
	state := c.QueryParam("state")
	if state == "" {
		state = string(model.FilterAll)
	}

	bs, err := fn(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, op, err)
	}
	return c.JSON(http.StatusOK, toRespList(bs))
}
