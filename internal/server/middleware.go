package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identityHeader carries the authenticated user's email, set by the upstream
// auth proxy. Authentication itself is not re-verified here.
const identityHeader = "Clerk-User-Email"

const emailKey = "email"

// requireIdentity rejects requests without the identity header and stashes
// the email on the request context.
func requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := c.Request().Header.Get(identityHeader)
		if email == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
		}
		c.Set(emailKey, email)
		return next(c)
	}
}

func requestEmail(c echo.Context) string {
	email, _ := c.Get(emailKey).(string)
	return email
}
