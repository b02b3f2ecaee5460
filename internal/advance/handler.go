package advance

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/transport"
	"github.com/hrops/backoffice/pkg/logger"
	"github.com/shopspring/decimal"
)

type ServiceAPI interface {
	RequestAdvance(dto CreateAdvanceDTO, requestedBy int64) (*Advance, error)
	ApproveAdvance(ctx context.Context, advanceID, approverID int64, dto ApproveAdvanceDTO) (*Advance, error)
	RejectAdvance(ctx context.Context, advanceID, rejectorID int64, dto RejectAdvanceDTO) (*Advance, error)
	ProcessDeduction(advanceID int64, dto DeductionDTO) (*Advance, error)
	RecordRepayment(advanceID int64, dto RecordRepaymentDTO, recordedBy int64) (*Advance, error)
	GetDeductionSchedule(advanceID int64) ([]ScheduleEntry, error)
	GetAdvance(advanceID int64) (*Advance, error)
	GetEmployeeAdvances(employeeID int64) ([]*Advance, error)
	ListAdvances(filter ListFilter) ([]*Advance, error)
	GetPendingAdvances(limit, offset int) ([]*Advance, error)
	GetRepayments(advanceID int64) ([]*Repayment, error)
	GetEmployeeBalance(employeeID int64) (*BalanceSummary, error)
	UpdateDeductionPlan(advanceID int64, amount decimal.Decimal, frequency string, startDate time.Time, endDate *time.Time) (*Advance, error)
	UpcomingDeductions(withinDays int) ([]DueDeduction, error)
	OverdueDeductions() ([]DueDeduction, error)
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

func (h *Handler) RequestAdvance(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("RequestAdvance: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAdvanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RequestAdvance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adv, err := h.Service.RequestAdvance(dto, actorID)
	if err != nil {
		h.Logger.Error("RequestAdvance: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RequestAdvance: advance requested",
		"advance_id", adv.ID,
		"employee_id", adv.EmployeeID,
		"amount", adv.Amount)

	h.WriteJSON(w, http.StatusCreated, adv)
}

func (h *Handler) GetAdvance(w http.ResponseWriter, r *http.Request) {
	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	adv, err := h.Service.GetAdvance(advanceID)
	if err != nil {
		h.Logger.Error("GetAdvance: service error", "error", err, "advance_id", advanceID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, adv)
}

func (h *Handler) ListAdvances(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)

	advances, err := h.Service.ListAdvances(filter)
	if err != nil {
		h.Logger.Error("ListAdvances: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"advances": advances,
		"count":    len(advances),
	})
}

func (h *Handler) GetPendingAdvances(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	advances, err := h.Service.GetPendingAdvances(limit, offset)
	if err != nil {
		h.Logger.Error("GetPendingAdvances: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"advances": advances,
		"count":    len(advances),
	})
}

func (h *Handler) GetEmployeeAdvances(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.int64Param(r, "employeeID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	advances, err := h.Service.GetEmployeeAdvances(employeeID)
	if err != nil {
		h.Logger.Error("GetEmployeeAdvances: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"advances": advances,
		"count":    len(advances),
	})
}

func (h *Handler) GetEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.int64Param(r, "employeeID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	balance, err := h.Service.GetEmployeeBalance(employeeID)
	if err != nil {
		h.Logger.Error("GetEmployeeBalance: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, balance)
}

func (h *Handler) ApproveAdvance(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("ApproveAdvance: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	var dto ApproveAdvanceDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.Logger.Error("ApproveAdvance: invalid request body", "error", err)
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	adv, err := h.Service.ApproveAdvance(r.Context(), advanceID, actorID, dto)
	if err != nil {
		h.Logger.Error("ApproveAdvance: service error", "error", err, "advance_id", advanceID, "approver_id", actorID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveAdvance: advance approved",
		"advance_id", adv.ID,
		"approver_id", actorID)

	h.WriteJSON(w, http.StatusOK, adv)
}

func (h *Handler) RejectAdvance(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("RejectAdvance: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	var dto RejectAdvanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RejectAdvance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adv, err := h.Service.RejectAdvance(r.Context(), advanceID, actorID, dto)
	if err != nil {
		h.Logger.Error("RejectAdvance: service error", "error", err, "advance_id", advanceID, "rejector_id", actorID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RejectAdvance: advance rejected",
		"advance_id", adv.ID,
		"rejector_id", actorID)

	h.WriteJSON(w, http.StatusOK, adv)
}

func (h *Handler) ProcessDeduction(w http.ResponseWriter, r *http.Request) {
	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	var dto DeductionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ProcessDeduction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adv, err := h.Service.ProcessDeduction(advanceID, dto)
	if err != nil {
		h.Logger.Error("ProcessDeduction: service error", "error", err, "advance_id", advanceID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ProcessDeduction: deduction applied",
		"advance_id", adv.ID,
		"amount", dto.Amount,
		"remaining", adv.RemainingAmount,
		"status", adv.Status)

	h.WriteJSON(w, http.StatusOK, adv)
}

func (h *Handler) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	actorID := internal.ActorFromContext(r.Context())
	if actorID == 0 {
		h.Logger.Error("RecordRepayment: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	var dto RecordRepaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RecordRepayment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adv, err := h.Service.RecordRepayment(advanceID, dto, actorID)
	if err != nil {
		h.Logger.Error("RecordRepayment: service error", "error", err, "advance_id", advanceID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RecordRepayment: repayment recorded",
		"advance_id", adv.ID,
		"amount", dto.Amount,
		"remaining", adv.RemainingAmount)

	h.WriteJSON(w, http.StatusOK, adv)
}

func (h *Handler) GetDeductionSchedule(w http.ResponseWriter, r *http.Request) {
	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	schedule, err := h.Service.GetDeductionSchedule(advanceID)
	if err != nil {
		h.Logger.Error("GetDeductionSchedule: service error", "error", err, "advance_id", advanceID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schedule": schedule,
		"count":    len(schedule),
	})
}

func (h *Handler) GetRepayments(w http.ResponseWriter, r *http.Request) {
	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	repayments, err := h.Service.GetRepayments(advanceID)
	if err != nil {
		h.Logger.Error("GetRepayments: service error", "error", err, "advance_id", advanceID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"repayments": repayments,
		"count":      len(repayments),
	})
}

func (h *Handler) UpdateDeductionPlan(w http.ResponseWriter, r *http.Request) {
	advanceID, err := h.advanceIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid advance ID")
		return
	}

	var dto struct {
		DeductionAmount    decimal.Decimal `json:"deduction_amount"`
		DeductionFrequency string          `json:"deduction_frequency"`
		DeductionStartDate time.Time       `json:"deduction_start_date"`
		DeductionEndDate   *time.Time      `json:"deduction_end_date,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateDeductionPlan: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adv, err := h.Service.UpdateDeductionPlan(advanceID, dto.DeductionAmount, dto.DeductionFrequency, dto.DeductionStartDate, dto.DeductionEndDate)
	if err != nil {
		h.Logger.Error("UpdateDeductionPlan: service error", "error", err, "advance_id", advanceID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, adv)
}

func (h *Handler) GetUpcomingDeductions(w http.ResponseWriter, r *http.Request) {
	withinDays := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 && d <= 365 {
			withinDays = d
		}
	}

	deductions, err := h.Service.UpcomingDeductions(withinDays)
	if err != nil {
		h.Logger.Error("GetUpcomingDeductions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deductions": deductions,
		"count":      len(deductions),
	})
}

func (h *Handler) GetOverdueDeductions(w http.ResponseWriter, r *http.Request) {
	deductions, err := h.Service.OverdueDeductions()
	if err != nil {
		h.Logger.Error("GetOverdueDeductions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deductions": deductions,
		"count":      len(deductions),
	})
}

func (h *Handler) advanceIDParam(r *http.Request) (int64, error) {
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

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

func parseListFilter(r *http.Request) ListFilter {
	var filter ListFilter
	filter.Limit, filter.Offset = parsePagination(r)

	q := r.URL.Query()
	if v := q.Get("employee_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.EmployeeID = &id
		}
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &t
		}
	}
	if v := q.Get("amount_min"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.AmountMin = &d
		}
	}
	if v := q.Get("amount_max"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.AmountMax = &d
		}
	}
	return filter
}
