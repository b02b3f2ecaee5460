package increment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/employee"
	"github.com/hrops/backoffice/internal/transport"
	"github.com/hrops/backoffice/pkg/logger"
)

type ServiceAPI interface {
	CreateIncrement(dto CreateIncrementDTO, requestedBy int64) (*SalaryIncrement, error)
	ApproveIncrement(ctx context.Context, incrementID, approverID int64) (*SalaryIncrement, error)
	RejectIncrement(ctx context.Context, incrementID, rejectorID int64, dto RejectIncrementDTO) (*SalaryIncrement, error)
	Apply(ctx context.Context, incrementID int64) (*SalaryIncrement, error)
	ApplyDueIncrements(ctx context.Context) ([]*SalaryIncrement, error)
	GetIncrement(incrementID int64) (*SalaryIncrement, error)
	GetEmployeeIncrements(employeeID int64) ([]*SalaryIncrement, error)
	ListIncrements(filter ListFilter) ([]*SalaryIncrement, error)
	GetSalaryHistory(employeeID int64) ([]*employee.SalaryRecord, error)
	GetStatistics(from, to *time.Time) (*Statistics, error)
	GetProjectedAnnualCost() (*ProjectedAnnualCost, error)
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

func (h *Handler) CreateIncrement(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("CreateIncrement: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateIncrementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateIncrement: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inc, err := h.Service.CreateIncrement(dto, actorID)
	if err != nil {
		h.Logger.Error("CreateIncrement: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateIncrement: increment created",
		"increment_id", inc.ID,
		"employee_id", inc.EmployeeID,
		"increment_type", inc.IncrementType,
		"effective_date", inc.EffectiveDate)

	h.WriteJSON(w, http.StatusCreated, inc)
}

func (h *Handler) GetIncrement(w http.ResponseWriter, r *http.Request) {
	incrementID, err := h.incrementIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid increment ID")
		return
	}

	inc, err := h.Service.GetIncrement(incrementID)
	if err != nil {
		h.Logger.Error("GetIncrement: service error", "error", err, "increment_id", incrementID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) ListIncrements(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)

	increments, err := h.Service.ListIncrements(filter)
	if err != nil {
		h.Logger.Error("ListIncrements: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"increments": increments,
		"count":      len(increments),
	})
}

func (h *Handler) GetEmployeeIncrements(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.int64Param(r, "employeeID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	increments, err := h.Service.GetEmployeeIncrements(employeeID)
	if err != nil {
		h.Logger.Error("GetEmployeeIncrements: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"increments": increments,
		"count":      len(increments),
	})
}

func (h *Handler) GetSalaryHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.int64Param(r, "employeeID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	history, err := h.Service.GetSalaryHistory(employeeID)
	if err != nil {
		h.Logger.Error("GetSalaryHistory: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"salary_history": history,
		"count":          len(history),
	})
}

func (h *Handler) ApproveIncrement(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("ApproveIncrement: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	incrementID, err := h.incrementIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid increment ID")
		return
	}

	inc, err := h.Service.ApproveIncrement(r.Context(), incrementID, actorID)
	if err != nil {
		h.Logger.Error("ApproveIncrement: service error", "error", err, "increment_id", incrementID, "approver_id", actorID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveIncrement: increment approved",
		"increment_id", inc.ID,
		"approver_id", actorID,
		"status", inc.Status)

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) RejectIncrement(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("RejectIncrement: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	incrementID, err := h.incrementIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid increment ID")
		return
	}

	var dto RejectIncrementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RejectIncrement: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inc, err := h.Service.RejectIncrement(r.Context(), incrementID, actorID, dto)
	if err != nil {
		h.Logger.Error("RejectIncrement: service error", "error", err, "increment_id", incrementID, "rejector_id", actorID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RejectIncrement: increment rejected",
		"increment_id", inc.ID,
		"rejector_id", actorID)

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) ApplyIncrement(w http.ResponseWriter, r *http.Request) {
	incrementID, err := h.incrementIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid increment ID")
		return
	}

	inc, err := h.Service.Apply(r.Context(), incrementID)
	if err != nil {
		h.Logger.Error("ApplyIncrement: service error", "error", err, "increment_id", incrementID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApplyIncrement: increment applied",
		"increment_id", inc.ID,
		"employee_id", inc.EmployeeID)

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) ApplyDueIncrements(w http.ResponseWriter, r *http.Request) {
	applied, err := h.Service.ApplyDueIncrements(r.Context())
	if err != nil {
		h.Logger.Error("ApplyDueIncrements: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApplyDueIncrements: sweep finished", "applied", len(applied))

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"applied": applied,
		"count":   len(applied),
	})
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = &t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = &t
		}
	}

	stats, err := h.Service.GetStatistics(from, to)
	if err != nil {
		h.Logger.Error("GetStatistics: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetProjectedAnnualCost(w http.ResponseWriter, r *http.Request) {
	cost, err := h.Service.GetProjectedAnnualCost()
	if err != nil {
		h.Logger.Error("GetProjectedAnnualCost: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cost)
}

func (h *Handler) incrementIDParam(r *http.Request) (int64, error) {
	return h.int64Param(r, "id")
}

func (h *Handler) int64Param(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid path param", "param", name, "value", idStr)
		return 0, err
	}
	return id, nil
}

func parseListFilter(r *http.Request) ListFilter {
	var filter ListFilter
	q := r.URL.Query()

	filter.Limit = 20
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if v := q.Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			filter.Offset = o
		}
	}
	if v := q.Get("employee_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.EmployeeID = &id
		}
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("increment_type"); v != "" {
		t := Type(v)
		filter.IncrementType = &t
	}
	if v := q.Get("effective_date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EffectiveDateFrom = &t
		}
	}
	if v := q.Get("effective_date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EffectiveDateTo = &t
		}
	}
	if v := q.Get("requested_by"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.RequestedBy = &id
		}
	}
	return filter
}
