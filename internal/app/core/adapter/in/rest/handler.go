package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
	"github.com/JoeShih716/bill-splitz/internal/app/core/usecase"
	"github.com/JoeShih716/bill-splitz/pkg/response"
)

// Handler 處理朋友與分帳的 HTTP 請求
type Handler struct {
	core *usecase.CoreUseCase
}

// NewHandler 建立 Handler
func NewHandler(core *usecase.CoreUseCase) *Handler {
	return &Handler{core: core}
}

// Routes 回傳 /friends 底下的路由
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/settlements", h.Settle)

	return r
}

// Create 處理 POST /friends
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	friend, err := h.core.AddFriend(r.Context(), req.Name, req.ImageRef)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toFriendResponse(friend))
}

// List 處理 GET /friends
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	friends, err := h.core.ListFriends(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]FriendResponse, len(friends))
	for i, f := range friends {
		out[i] = toFriendResponse(f)
	}
	response.JSON(w, http.StatusOK, out)
}

// GetByID 處理 GET /friends/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	friend, err := h.core.GetFriend(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toFriendResponse(friend))
}

// Settle 處理 POST /friends/{id}/settlements
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	var req SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := domain.NewBill(req.BillTotal, req.PaidByUser, req.Payer)
	if err != nil {
		writeError(w, r, err)
		return
	}

	settlement, err := h.core.SubmitSettlement(r.Context(), chi.URLParam(r, "id"), bill)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrFriendAlreadyExists):
		response.Conflict(w, err.Error())
	case errors.Is(err, domain.ErrLedgerClosed):
		response.Unavailable(w, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		response.InternalError(w, "Internal error")
	}
}
