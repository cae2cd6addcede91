package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/dreamsync/internal/energy"
	"github.com/hitoshi/dreamsync/internal/middleware"
	"github.com/hitoshi/dreamsync/internal/model"
)

// EnergyServiceInterface はエネルギー記録ハンドラーが必要とするサービスインターフェース。
type EnergyServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.EnergyEntry, error)
	Create(ctx context.Context, userID string, input energy.CreateInput) (*model.EnergyEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

// EnergyHandler はエネルギー記録のHTTPハンドラー。
type EnergyHandler struct {
	service EnergyServiceInterface
}

// NewEnergyHandler はEnergyHandlerを生成する。
func NewEnergyHandler(service EnergyServiceInterface) *EnergyHandler {
	return &EnergyHandler{service: service}
}

// createEnergyRequest はエネルギー記録作成リクエストのボディ。
// dateを省略した場合は当日が使用される。
type createEnergyRequest struct {
	Level int    `json:"level"`
	Notes string `json:"notes"`
	Date  string `json:"date"`
}

// energyEntryResponse はエネルギー記録のAPIレスポンス。
type energyEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Level     int       `json:"level"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListEntries はエネルギー記録一覧を日付降順で返す。
// GET /api/energy-entries
func (h *EnergyHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	res := make([]energyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		res = append(res, toEnergyEntryResponse(entry))
	}

	writeJSON(w, http.StatusOK, res)
}

// CreateEntry はエネルギー記録を作成する。同一日付の既存記録は上書きされる。
// POST /api/energy-entries
func (h *EnergyHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createEnergyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	entry, err := h.service.Create(r.Context(), userID, energy.CreateInput{
		Level: req.Level,
		Notes: req.Notes,
		Date:  req.Date,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEnergyEntryResponse(entry))
}

// DeleteEntry はエネルギー記録を削除する。
// DELETE /api/energy-entries/:id
func (h *EnergyHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// toEnergyEntryResponse はmodel.EnergyEntryからAPIレスポンスに変換する。
func toEnergyEntryResponse(entry *model.EnergyEntry) energyEntryResponse {
	return energyEntryResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Date:      entry.Date,
		Level:     entry.Level,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
	}
}
