// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// UserID returns the authenticated user id placed in context by the auth
// middleware.
func UserID(c echo.Context) (int64, error) {
	id, ok := c.Get("user_id").(int64)
	if !ok || id <= 0 {
		return 0, errors.New("no user id in context")
	}
	return id, nil
}

// AccountType returns the authenticated account type claim.
func AccountType(c echo.Context) string {
	t, _ := c.Get("account_type").(string)
	return t
}
