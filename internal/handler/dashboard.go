package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

type dashboardData struct {
	Summary    *domain.DashboardSummary `json:"summary"`
	Todos      []*domain.Todo           `json:"todos"`
	StickyNote *domain.StickyNote       `json:"stickyNote"`
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	companyID := h.companyID(r)
	cacheKey := fmt.Sprintf("dashboard_summary_%d", companyID)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	// the summary is the expensive part; todos and the sticky note are always
	// read fresh so edits show up immediately
	var summary *domain.DashboardSummary
	cached, err := h.redisClient.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		summary = &domain.DashboardSummary{}
		if err := json.Unmarshal([]byte(cached), summary); err != nil {
			summary = nil
		}
	case errors.Is(err, redis.Nil):
	default:
		slog.Error("failed to read dashboard cache", "company_id", companyID, "error", err)
	}

	if summary == nil {
		summary, err = h.repository.GetDashboardSummary(companyID, time.Now().UTC())
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		if data, err := json.Marshal(summary); err == nil {
			if err := h.redisClient.Set(ctx, cacheKey, data, time.Duration(h.config.Dashboard.CacheExpiration)*time.Second).Err(); err != nil {
				slog.Error("failed to write dashboard cache", "company_id", companyID, "error", err)
			}
		}
	}

	todos, err := h.repository.ListTodos(companyID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	note, err := h.repository.GetStickyNote(companyID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "dashboard fetched", dashboardData{
		Summary:    summary,
		Todos:      todos,
		StickyNote: note,
	})
}

func (h *Handler) SaveTodo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	todo := &domain.Todo{
		CompanyID: h.companyID(r),
		Title:     req.Title,
	}

	if err := h.repository.CreateTodo(todo); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "todo created", todo)
}

func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoIDParam := chi.URLParam(r, "id")
	todoID, err := strconv.ParseInt(todoIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid todo ID")
		return
	}

	// todos are tiny; updates always carry the full row
	var req struct {
		Title  string `json:"title" validate:"required"`
		IsDone bool   `json:"isDone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	todo := &domain.Todo{
		ID:        todoID,
		CompanyID: h.companyID(r),
		Title:     req.Title,
		IsDone:    req.IsDone,
	}

	if err := h.repository.UpdateTodo(todo); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "todo updated", todo)
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoIDParam := chi.URLParam(r, "id")
	todoID, err := strconv.ParseInt(todoIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid todo ID")
		return
	}

	if err := h.repository.DeleteTodo(h.companyID(r), todoID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "todo deleted", nil)
}

func (h *Handler) SaveStickyNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	note := &domain.StickyNote{
		CompanyID: h.companyID(r),
		Content:   req.Content,
	}

	if err := h.repository.SaveStickyNote(note); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "sticky note saved", note)
}
