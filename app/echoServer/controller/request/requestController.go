package request

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/app/echoServer/httperr"
	requestsvc "github.com/roman3350/shareit/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	Log *slog.Logger
}

type CreateRequestReq struct {
	Description *string `json:"description"`
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "request create", err)
	}
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return httperr.JSON(c, h.Log, "request create", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests
func (h *Controller) FindOwn(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "request list", err)
	}
	views, err := h.Svc.FindByRequestor(c.Request().Context(), uid)
	if err != nil {
		return httperr.JSON(c, h.Log, "request list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /requests/all?from=&size=
func (h *Controller) FindAll(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "request list all", err)
	}
	from, size, err := httperr.Page(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "request list all", err)
	}

	views, err := h.Svc.FindAll(c.Request().Context(), uid, from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, "request list all", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /requests/:requestId
func (h *Controller) FindByID(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "request find", err)
	}
	id, err := httperr.PathID(c, "requestId")
	if err != nil {
		return httperr.JSON(c, h.Log, "request find", err)
	}

	v, err := h.Svc.FindByID(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.JSON(c, h.Log, "request find", err)
	}
	return c.JSON(http.StatusOK, v)
}
