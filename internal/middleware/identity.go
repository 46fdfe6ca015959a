package middleware

// identity.go holds the context plumbing between JWTAuth and the
// handlers: the owner id resolved from the bearer token is the only
// tenant scope handlers ever use.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// ContextOwnerKey is the echo context key holding the model.OwnerID of
// the authenticated user.
const ContextOwnerKey = "user_id"

// OwnerFromContext returns the owner set by JWTAuth.  ok is false on
// routes that are not behind JWTAuth.
func OwnerFromContext(c echo.Context) (model.OwnerID, bool) {
	owner, ok := c.Get(ContextOwnerKey).(model.OwnerID)
	if !ok || owner == 0 {
		return 0, false
	}
	return owner, true
}

// clientKey identifies the caller for throttling: the authenticated
// owner when known, else the client IP.
func clientKey(c echo.Context) string {
	if owner, ok := OwnerFromContext(c); ok {
		return "user:" + strconv.FormatUint(uint64(owner), 10)
	}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
