package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/payslip"
	"github.com/iliyamo/eldercare-records/internal/service"
)

// CaregiverHandler serves /caregivers.
type CaregiverHandler struct {
	Svc *service.CaregiverService
	Log *zap.Logger
}

func NewCaregiverHandler(svc *service.CaregiverService, log *zap.Logger) *CaregiverHandler {
	if svc == nil {
		panic("nil caregiver service passed to NewCaregiverHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CaregiverHandler{Svc: svc, Log: log}
}

// Create handles POST /caregivers.
func (h *CaregiverHandler) Create(c echo.Context) error {
	o, err := owner(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var req dto.CaregiverCreate
	if err := bind(c, &req); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.Add(ctx, o, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// List handles GET /caregivers.
func (h *CaregiverHandler) List(c echo.Context) error {
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

// Get handles GET /caregivers/:id.
func (h *CaregiverHandler) Get(c echo.Context) error {
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

// UpdateSalary handles PUT /caregivers/:id/update-salary.
func (h *CaregiverHandler) UpdateSalary(c echo.Context) error {
	o, err := owner(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var req dto.SalaryUpdate
	if err := bind(c, &req); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.UpdateSalary(ctx, o, id, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /caregivers/:id.
func (h *CaregiverHandler) Delete(c echo.Context) error {
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
	return deleted(c, "Caregiver", id)
}

// PDF handles GET /caregivers/:id/generate-pdf.
func (h *CaregiverHandler) PDF(c echo.Context) error { return h.payslip(c, payslip.FormatPDF) }

// XLSX handles GET /caregivers/:id/generate-xlsx.
func (h *CaregiverHandler) XLSX(c echo.Context) error { return h.payslip(c, payslip.FormatXLSX) }

func (h *CaregiverHandler) payslip(c echo.Context, format string) error {
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

	out, err := h.Svc.Payslip(ctx, o, id, format)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+out.Filename+`"`)
	return c.Blob(http.StatusOK, out.ContentType, out.Body)
}
