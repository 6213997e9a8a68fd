// Package httperr renders service failures: known fault kinds become
// their mapped status with the error message, everything else is a 500.
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/util/fault"
)

func JSON(c echo.Context, log *slog.Logger, op string, err error) error {
	if k := fault.KindOf(err); k != "" {
		return c.JSON(fault.HTTPStatus(k), echo.Map{"error": err.Error()})
	}
	log.Error(op, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
