package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the authenticated identity injected by the Auth
// middleware. A missing or non-positive id means the middleware did not run
// (or the token carried no usable identity); reject with 401 before any
// service call.
func ctxIdentity(c echo.Context) (id int64, role string, err error) {
	id, _ = c.Get("id").(int64)
	if id <= 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return id, role, nil
}
