package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/model"
	"github.com/iliyamo/eldercare-records/internal/service"
)

// ElderlyHandler serves /elderly and the tasks and medications nested
// under it.
type ElderlyHandler struct {
	Svc *service.ElderlyService
	Log *zap.Logger
}

func NewElderlyHandler(svc *service.ElderlyService, log *zap.Logger) *ElderlyHandler {
	if svc == nil {
		panic("nil elderly service passed to NewElderlyHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ElderlyHandler{Svc: svc, Log: log}
}

// scope resolves the owner and the parent elderly id of a request.
func (h *ElderlyHandler) scope(c echo.Context) (model.OwnerID, uint64, error) {
	o, err := owner(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return o, id, nil
}

func (h *ElderlyHandler) Create(c echo.Context) error {
	o, err := owner(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var req dto.ElderlyCreate
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

func (h *ElderlyHandler) List(c echo.Context) error {
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

func (h *ElderlyHandler) Get(c echo.Context) error {
	o, id, err := h.scope(c)
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

func (h *ElderlyHandler) Delete(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Svc.Delete(ctx, o, id); err != nil {
		return respondError(c, h.Log, err)
	}
	return deleted(c, "Elderly", id)
}

// CreateTask handles POST /elderly/:id/tasks.
func (h *ElderlyHandler) CreateTask(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var req dto.TaskCreate
	if err := bind(c, &req); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.AddTask(ctx, o, id, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListTasks handles GET /elderly/:id/tasks.
func (h *ElderlyHandler) ListTasks(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.ListTasks(ctx, o, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateTaskStatus handles PUT /elderly/:id/tasks/:task_id/status.
func (h *ElderlyHandler) UpdateTaskStatus(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	taskID, err := idParam(c, "task_id")
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var req dto.TaskStatusUpdate
	if err := bind(c, &req); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.UpdateTaskStatus(ctx, o, id, taskID, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteTask handles DELETE /elderly/:id/tasks/:task_id.
func (h *ElderlyHandler) DeleteTask(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	taskID, err := idParam(c, "task_id")
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Svc.DeleteTask(ctx, o, id, taskID); err != nil {
		return respondError(c, h.Log, err)
	}
	return deleted(c, "Task", taskID)
}

// CreateMedication handles POST /elderly/:id/medications.
func (h *ElderlyHandler) CreateMedication(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var req dto.MedicationCreate
	if err := bind(c, &req); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.AddMedication(ctx, o, id, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListMedications handles GET /elderly/:id/medications.
func (h *ElderlyHandler) ListMedications(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Svc.ListMedications(ctx, o, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteMedication handles DELETE /elderly/:id/medications/:medication_id.
func (h *ElderlyHandler) DeleteMedication(c echo.Context) error {
	o, id, err := h.scope(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	medID, err := idParam(c, "medication_id")
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Svc.DeleteMedication(ctx, o, id, medID); err != nil {
		return respondError(c, h.Log, err)
	}
	return deleted(c, "Medication", medID)
}
