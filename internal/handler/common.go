package handler // handler defines the echo handlers of the HTTP API

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/middleware"
	"github.com/iliyamo/eldercare-records/internal/model"
)

// requestTimeout bounds the store and cache work of one request.
const requestTimeout = 5 * time.Second

// errInvalidID is returned for non-numeric or zero path ids.
var errInvalidID = model.Invalid(errors.New("invalid id"))

// respondError maps an error kind to its HTTP status.  Errors outside
// the taxonomy are logged and hidden behind a generic 500.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var fields validation.Errors
	switch {
	case errors.Is(err, model.ErrInvalidInput) && errors.As(err, &fields):
		out := make(map[string]string, len(fields))
		for k, v := range fields {
			out[k] = v.Error()
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input", "fields": out})
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrConflict):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": message(err)})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// message strips the "invalid input: " prefix added by model.Invalid.
func message(err error) string {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := u.Unwrap(); len(errs) == 2 && errors.Is(errs[0], model.ErrInvalidInput) {
			return errs[1].Error()
		}
	}
	return err.Error()
}

// owner returns the authenticated tenant set by middleware.JWTAuth.
func owner(c echo.Context) (model.OwnerID, error) {
	o, ok := middleware.OwnerFromContext(c)
	if !ok {
		return 0, model.Unauthorized("Could not validate credentials")
	}
	return o, nil
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// bind decodes the JSON body into v.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return model.Invalid(errors.New("invalid request body"))
	}
	return nil
}

// requestContext derives the per-request deadline.
func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func deleted(c echo.Context, what string, id uint64) error {
	return c.JSON(http.StatusOK, echo.Map{"message": what + " " + strconv.FormatUint(id, 10) + " deleted successfully"})
}
