package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/dreamsync/internal/manifestation"
	"github.com/hitoshi/dreamsync/internal/middleware"
	"github.com/hitoshi/dreamsync/internal/model"
)

// ManifestationServiceInterface は目標ハンドラーが必要とするサービスインターフェース。
type ManifestationServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Manifestation, error)
	Create(ctx context.Context, userID string, input manifestation.CreateInput) (*model.Manifestation, error)
	Update(ctx context.Context, userID, id string, input manifestation.UpdateInput) (*model.Manifestation, error)
	Delete(ctx context.Context, userID, id string) error
}

// ManifestationHandler は目標管理のHTTPハンドラー。
type ManifestationHandler struct {
	service ManifestationServiceInterface
}

// NewManifestationHandler はManifestationHandlerを生成する。
func NewManifestationHandler(service ManifestationServiceInterface) *ManifestationHandler {
	return &ManifestationHandler{service: service}
}

// createManifestationRequest は目標作成リクエストのボディ。
type createManifestationRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

// updateManifestationRequest は目標更新リクエストのボディ。全フィールドを置換する。
type updateManifestationRequest struct {
	Text      string `json:"text"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// manifestationResponse は目標のAPIレスポンス。
// 更新時は保存行を再取得せず入力から構成するため、createdAtはゼロ値なら省略する。
type manifestationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// ListManifestations は目標一覧を日付降順で返す。
// GET /api/manifestations
func (h *ManifestationHandler) ListManifestations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	manifestations, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	res := make([]manifestationResponse, 0, len(manifestations))
	for _, m := range manifestations {
		res = append(res, toManifestationResponse(m))
	}

	writeJSON(w, http.StatusOK, res)
}

// CreateManifestation は目標を作成する。
// POST /api/manifestations
func (h *ManifestationHandler) CreateManifestation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createManifestationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	m, err := h.service.Create(r.Context(), userID, manifestation.CreateInput{
		Text:     req.Text,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toManifestationResponse(m))
}

// UpdateManifestation は目標の全フィールドを置換する。
// PUT /api/manifestations/:id
func (h *ManifestationHandler) UpdateManifestation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req updateManifestationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	m, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), manifestation.UpdateInput{
		Text:      req.Text,
		Category:  req.Category,
		Notes:     req.Notes,
		Date:      req.Date,
		Completed: req.Completed,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toManifestationResponse(m))
}

// DeleteManifestation は目標を削除する。
// DELETE /api/manifestations/:id
func (h *ManifestationHandler) DeleteManifestation(w http.ResponseWriter, r *http.Request) {
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

// toManifestationResponse はmodel.ManifestationからAPIレスポンスに変換する。
func toManifestationResponse(m *model.Manifestation) manifestationResponse {
	return manifestationResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		Category:  string(m.Category),
		Notes:     m.Notes,
		Date:      m.Date,
		Completed: m.Completed,
		CreatedAt: m.CreatedAt,
	}
}
