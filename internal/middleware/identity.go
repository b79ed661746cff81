package middleware

import "github.com/labstack/echo/v4"

// Subject returns the authenticated subject stored by JWTAuth, or "anon"
// for unauthenticated requests.
func Subject(c echo.Context) string {
	if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
		return s
	}
	return "anon"
}

// Role returns the role claim stored by JWTAuth, or "".
func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}
