package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/service"
)

// AssignmentHandler serves /caregiver-assignments.
type AssignmentHandler struct {
	Svc *service.AssignmentService
	Log *zap.Logger
}

func NewAssignmentHandler(svc *service.AssignmentService, log *zap.Logger) *AssignmentHandler {
	if svc == nil {
		panic("nil assignment service passed to NewAssignmentHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AssignmentHandler{Svc: svc, Log: log}
}

func (h *AssignmentHandler) Create(c echo.Context) error {
	o, err := owner(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var req dto.AssignmentCreate
	if err := bind(c, &req); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.Create(ctx, o, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AssignmentHandler) List(c echo.Context) error {
	o, err := owner(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.List(ctx, o)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AssignmentHandler) Get(c echo.Context) error {
	o, err := owner(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.Get(ctx, o, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AssignmentHandler) Delete(c echo.Context) error {
	o, err := owner(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Svc.Delete(ctx, o, id); err != nil {
		return respondError(c, h.Log, err)
	}
	return deleted(c, "Assignment", id)
}
