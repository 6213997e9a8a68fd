package user

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/app/echoServer/httperr"
	usersvc "github.com/roman3350/shareit/service/user"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /users?from=&size=
func (h *Controller) FindAll(c echo.Context) error {
	from, size, err := httperr.Page(c)
	if err != nil {
		return httperr.JSON(c, h.Log, "user list", err)
	}
	users, err := h.Svc.FindAll(c.Request().Context(), from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, "user list", err)
	}
	return c.JSON(http.StatusOK, users)
}

// GET /users/:userId
func (h *Controller) FindByID(c echo.Context) error {
	id, err := httperr.PathID(c, "userId")
	if err != nil {
		return httperr.JSON(c, h.Log, "user find", err)
	}
	u, err := h.Svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "user find", err)
	}
	return c.JSON(http.StatusOK, u)
}

// POST /users
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	u, err := h.Svc.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return httperr.JSON(c, h.Log, "user create", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// PATCH /users/:userId
func (h *Controller) Update(c echo.Context) error {
	id, err := httperr.PathID(c, "userId")
	if err != nil {
		return httperr.JSON(c, h.Log, "user update", err)
	}
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	u, err := h.Svc.Update(c.Request().Context(), id, usersvc.UpdateUser{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "user update", err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:userId
func (h *Controller) Delete(c echo.Context) error {
	id, err := httperr.PathID(c, "userId")
	if err != nil {
		return httperr.JSON(c, h.Log, "user delete", err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.JSON(c, h.Log, "user delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
