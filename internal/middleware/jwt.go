package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/model"
	"github.com/iliyamo/eldercare-records/internal/utils"
)

// Messages for rejected bearer credentials.
const (
	msgNoHeader     = "No authorization header"
	msgInvalidToken = "Could not validate credentials"
)

// UserResolver loads the account behind a verified token.  It returns
// an ErrUnauthorized-kind error for missing or inactive users.
type UserResolver interface {
	ActiveUser(ctx context.Context, id uint64) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access
// token, resolves its subject to an active user and stores the owner id
// under ContextOwnerKey.  The secret must match the one used when
// issuing tokens.
func JWTAuth(secret string, users UserResolver, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return unauthorized(c, msgNoHeader)
			}
			// scheme match is case-insensitive
			scheme, raw, ok := strings.Cut(auth, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				return unauthorized(c, msgInvalidToken)
			}

			uid, err := utils.ParseAccessToken(secret, strings.TrimSpace(raw))
			if err != nil {
				return unauthorized(c, msgInvalidToken)
			}

			u, err := users.ActiveUser(c.Request().Context(), uid)
			if errors.Is(err, model.ErrUnauthorized) {
				return unauthorized(c, err.Error())
			}
			if err != nil {
				log.Error("resolve token subject", zap.Uint64("user_id", uid), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}

			c.Set(ContextOwnerKey, u.Owner())
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}
