package assignment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/transport"
	"github.com/hrops/backoffice/pkg/logger"
)

type ServiceAPI interface {
	CreateAssignment(dto CreateAssignmentDTO, assignedBy int64) (*Assignment, error)
	Reconcile(employeeID int64) error
	GetEmployeeAssignments(employeeID int64) ([]*Assignment, error)
	GetActiveAssignment(employeeID int64) (*Assignment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("CreateAssignment: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAssignment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateAssignment(dto, actorID)
	if err != nil {
		h.Logger.Error("CreateAssignment: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAssignment: assignment created",
		"assignment_id", a.ID,
		"employee_id", a.EmployeeID,
		"type", a.Type,
		"start_date", a.StartDate)

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetEmployeeAssignments(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.employeeIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	assignments, err := h.Service.GetEmployeeAssignments(employeeID)
	if err != nil {
		h.Logger.Error("GetEmployeeAssignments: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"count":       len(assignments),
	})
}

func (h *Handler) GetActiveAssignment(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.employeeIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	a, err := h.Service.GetActiveAssignment(employeeID)
	if err != nil {
		h.Logger.Error("GetActiveAssignment: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ReconcileAssignments(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.employeeIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if err := h.Service.Reconcile(employeeID); err != nil {
		h.Logger.Error("ReconcileAssignments: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ReconcileAssignments: timeline reconciled", "employee_id", employeeID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "reconciled"})
}

func (h *Handler) employeeIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "employeeID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid employee ID param", "id", idStr)
		return 0, err
	}
	return id, nil
}
