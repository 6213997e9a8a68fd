package httperr

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/util/fault"
)

// HeaderUserID is the caller-identity header. The value is trusted
// verbatim; there is no session or token verification.
const HeaderUserID = "X-Sharer-User-Id"

func UserID(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(HeaderUserID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fault.New(fault.InvalidInput, "missing or malformed "+HeaderUserID+" header")
	}
	return id, nil
}

func PathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fault.New(fault.InvalidInput, "invalid "+name)
	}
	return id, nil
}

// Page reads the from/size query parameters, defaulting to 0/10.
// Bounds are checked by the services.
func Page(c echo.Context) (from, size int, err error) {
	from, err = queryInt(c, "from", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err = queryInt(c, "size", 10)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fault.New(fault.InvalidInput, "invalid "+name)
	}
	return v, nil
}
