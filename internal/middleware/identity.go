package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID returns the request's user identifier for rate-limit and
// cache keys, or "guest" for unauthenticated requests.  JWTAuth and
// OptionalJWT store the sub claim under "user_id"; jwt.MapClaims
// decodes numeric claims as float64.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "guest"
	case string:
		if v != "" {
			return v
		}
		return "guest"
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// UserIDFromContext resolves the authenticated user's numeric id, or
// nil for guests.  Handlers use it for owner scoping and to record the
// booking's user_id column.
func UserIDFromContext(c echo.Context) *uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		id := uint64(v)
		return &id
	case uint64:
		return &v
	default:
		return nil
	}
}
