package middleware

// identity.go holds the identity extraction shared by the middleware in this
// package. JWTAuth stores the raw "sub" claim under "user_id"; rate limiting
// and any future per-user middleware read it back through userID so there is
// one definition of "who is calling".

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// userID returns a stable string identifier for the authenticated caller.
// JWT subjects arrive as float64 or string depending on how the claims were
// decoded; both forms are normalised. Unauthenticated requests map to "anon".
func userID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return fmt.Sprintf("%.0f", t)
    case int64:
        return fmt.Sprintf("%d", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}
