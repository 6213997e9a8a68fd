package item

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/app/echoServer/httperr"
	itemsvc "github.com/roman3350/shareit/service/item"
)

type Controller struct {
	Svc itemsvc.Service
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "item create", err)
	}
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	it, err := h.Svc.Create(c.Request().Context(), uid, itemsvc.CreateItem{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "item create", err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:itemId
func (h *Controller) Update(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "item update", err)
	}
	id, err := httperr.PathID(c, "itemId")
	if err != nil {
		return httperr.JSON(c, h.Log, "item update", err)
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	it, err := h.Svc.Update(c.Request().Context(), uid, id, itemsvc.UpdateItem{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "item update", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:itemId
func (h *Controller) FindByID(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "item find", err)
	}
	id, err := httperr.PathID(c, "itemId")
	if err != nil {
		return httperr.JSON(c, h.Log, "item find", err)
	}

	v, err := h.Svc.FindByID(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.JSON(c, h.Log, "item find", err)
	}
	return c.JSON(http.StatusOK, v)
}

// GET /items?from=&size=
func (h *Controller) FindByOwner(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "item list", err)
	}
	from, size, err := httperr.Page(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "item list", err)
	}

	views, err := h.Svc.FindByOwner(c.Request().Context(), uid, from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, "item list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /items/search?text=&from=&size=
func (h *Controller) Search(c echo.Context) error {
	if _, err := httperr.UserID(c); err != nil {
		return httperr.JSON(c, h.Log, "item search", err)
	}
	from, size, err := httperr.Page(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "item search", err)
	}

	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, "item search", err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:itemId/comment
func (h *Controller) CreateComment(c echo.Context) error {
	uid, err := httperr.UserID(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "comment create", err)
	}
	id, err := httperr.PathID(c, "itemId")
	if err != nil {
		return httperr.JSON(c, h.Log, "comment create", err)
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	cm, err := h.Svc.CreateComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return httperr.JSON(c, h.Log, "comment create", err)
	}
	return c.JSON(http.StatusCreated, cm)
}

// DELETE /items/:itemId
//
// Deletion carries no ownership check.
func (h *Controller) Delete(c echo.Context) error {
	id, err := httperr.PathID(c, "itemId")
	if err != nil {
		return httperr.JSON(c, h.Log, "item delete", err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.JSON(c, h.Log, "item delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
