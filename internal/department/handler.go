package department

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
	GetByID(ctx context.Context, id int64) (*Department, error)
	GetAll(ctx context.Context) ([]*Department, error)
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

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("ListDepartments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"departments": departments})
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetDepartment: invalid department ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}

	found, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetDepartment: service error", "error", err, "department_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}
