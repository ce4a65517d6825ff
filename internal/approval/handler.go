package approval

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/cloudnative-amadeus/extrahours/internal/transport"
	"github.com/cloudnative-amadeus/extrahours/pkg/logger"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id int64) (*ApprovalRecord, error)
	GetAll(ctx context.Context) ([]*ApprovalRecord, error)
	GetByExtraHour(ctx context.Context, extraHourID int64) ([]*ApprovalRecord, error)
	GetByUser(ctx context.Context, userID int64) ([]*ApprovalRecord, error)
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

func (h *Handler) GetApproval(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetApproval: invalid approval ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid approval ID")
		return
	}

	record, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetApproval: service error", "error", err, "approval_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) ListApprovals(w http.ResponseWriter, r *http.Request) {
	// optional approver filter
	if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid user ID")
			return
		}
		records, err := h.Service.GetByUser(r.Context(), userID)
		if err != nil {
			h.Logger.Error("ListApprovals: service error", "error", err, "user_id", userID)
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"approvals": records, "count": len(records)})
		return
	}

	records, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("ListApprovals: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"approvals": records, "count": len(records)})
}

func (h *Handler) ListForExtraHour(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("ListForExtraHour: invalid extra hour ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid extra hour ID")
		return
	}

	records, err := h.Service.GetByExtraHour(r.Context(), id)
	if err != nil {
		h.Logger.Error("ListForExtraHour: service error", "error", err, "extra_hour_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"approvals": records, "count": len(records)})
}
