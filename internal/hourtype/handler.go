package hourtype

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/cloudnative-amadeus/extrahours/internal/transport"
	"github.com/cloudnative-amadeus/extrahours/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto ExtraHourTypeDTO) (*ExtraHourType, error)
	GetByID(ctx context.Context, id int64) (*ExtraHourType, error)
	GetAll(ctx context.Context) ([]*ExtraHourType, error)
	Update(ctx context.Context, id int64, dto ExtraHourTypeDTO) (*ExtraHourType, error)
	Delete(ctx context.Context, id int64) error
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

func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("ListTypes: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"extra_hour_types": types})
}

func (h *Handler) GetType(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid type ID")
		return
	}

	found, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetType: service error", "error", err, "type_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) CreateType(w http.ResponseWriter, r *http.Request) {
	var dto ExtraHourTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateType: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateType: service error", "error", err, "name", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateType: type created", "type_id", created.ID, "name", created.Name)
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid type ID")
		return
	}

	var dto ExtraHourTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateType: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateType: service error", "error", err, "type_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid type ID")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteType: service error", "error", err, "type_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid type ID", "id", idStr)
		return 0, err
	}
	return id, nil
}
