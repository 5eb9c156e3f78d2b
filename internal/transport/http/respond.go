package http

import (
	"github.com/labstack/echo/v4"

	"github.com/tripnest/vacation-api/internal/util"
)

// respond writes the fixed {status, message, ...payload} envelope every route
// uses, for successes and failures alike.
func respond(c echo.Context, code int, message string, payload util.Envelope) error {
	body := util.Envelope{
		"status":  code,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(code, body)
}

func respondErr(c echo.Context, code int, message string) error {
	return respond(c, code, message, nil)
}
