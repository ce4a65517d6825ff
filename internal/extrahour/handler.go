package extrahour

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	"github.com/cloudnative-amadeus/extrahours/internal/transport"
	"github.com/cloudnative-amadeus/extrahours/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, caller *auth.User, dto ExtraHourDTO) (*ExtraHour, error)
	GetByID(ctx context.Context, caller *auth.User, id int64) (*ExtraHour, error)
	List(ctx context.Context, caller *auth.User, filter ListFilter) ([]*ExtraHour, error)
	Update(ctx context.Context, caller *auth.User, id int64, dto ExtraHourDTO) (*ExtraHour, error)
	Delete(ctx context.Context, caller *auth.User, id int64) error
	Approve(ctx context.Context, caller *auth.User, id int64, note string) (*ExtraHour, error)
	Reject(ctx context.Context, caller *auth.User, id int64, note string) (*ExtraHour, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateExtraHour(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateExtraHour: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ExtraHourDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExtraHour: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), user, dto)
	if err != nil {
		h.Logger.Error("CreateExtraHour: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateExtraHour: request created",
		"extra_hour_id", created.ID,
		"user_id", user.ID,
		"hours", created.Hours)

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetExtraHour(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetExtraHour: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid extra hour ID")
		return
	}

	found, err := h.Service.GetByID(r.Context(), user, id)
	if err != nil {
		h.Logger.Error("GetExtraHour: service error", "error", err, "extra_hour_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListExtraHours(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ListExtraHours: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		if uid, err := strconv.ParseInt(userIDStr, 10, 64); err == nil {
			filter.UserID = uid
		}
	}

	requests, err := h.Service.List(r.Context(), user, filter)
	if err != nil {
		h.Logger.Error("ListExtraHours: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"extra_hours": requests,
		"count":       len(requests),
	})
}

func (h *Handler) UpdateExtraHour(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("UpdateExtraHour: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid extra hour ID")
		return
	}

	var dto ExtraHourDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateExtraHour: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(r.Context(), user, id, dto)
	if err != nil {
		h.Logger.Error("UpdateExtraHour: service error", "error", err, "extra_hour_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("UpdateExtraHour: request updated", "extra_hour_id", id, "user_id", user.ID)
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteExtraHour(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("DeleteExtraHour: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid extra hour ID")
		return
	}

	if err := h.Service.Delete(r.Context(), user, id); err != nil {
		h.Logger.Error("DeleteExtraHour: service error", "error", err, "extra_hour_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DeleteExtraHour: request withdrawn", "extra_hour_id", id, "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ApproveExtraHour(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve, "ApproveExtraHour")
}

func (h *Handler) RejectExtraHour(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject, "RejectExtraHour")
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(context.Context, *auth.User, int64, string) (*ExtraHour, error), name string) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error(name + ": user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid extra hour ID")
		return
	}

	// note is optional; an empty body is a valid decision
	var dto DecisionDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&dto)
	}
	if err := dto.Validate(); err != nil {
		h.Logger.Error(name+": invalid decision payload", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	decided, err := op(r.Context(), user, id, dto.Note)
	if err != nil {
		h.Logger.Error(name+": service error", "error", err, "extra_hour_id", id, "approver_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info(name+": decision recorded",
		"extra_hour_id", id,
		"approver_id", user.ID,
		"status", decided.Status)

	h.WriteJSON(w, http.StatusOK, decided)
}

func (h *Handler) pathID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid extra hour ID", "id", idStr)
		return 0, err
	}
	return id, nil
}
