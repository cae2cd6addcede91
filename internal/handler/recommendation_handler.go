package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/dreamsync/internal/middleware"
	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/recommendation"
)

// RecommendationServiceInterface はおすすめハンドラーが必要とするサービスインターフェース。
type RecommendationServiceInterface interface {
	List(ctx context.Context, userID, band string) ([]*model.Recommendation, error)
	Create(ctx context.Context, userID string, input recommendation.Input) (*model.Recommendation, error)
	Update(ctx context.Context, userID, id string, input recommendation.Input) error
	Delete(ctx context.Context, userID, id string) error
}

// RecommendationHandler はおすすめアクティビティのHTTPハンドラー。
type RecommendationHandler struct {
	service RecommendationServiceInterface
}

// NewRecommendationHandler はRecommendationHandlerを生成する。
func NewRecommendationHandler(service RecommendationServiceInterface) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// recommendationRequest はおすすめ作成・更新リクエストのボディ。
type recommendationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Link        string `json:"link"`
	EnergyLevel string `json:"energyLevel"`
}

// recommendationResponse はおすすめのAPIレスポンス。
type recommendationResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Link        string    `json:"link,omitempty"`
	EnergyLevel string    `json:"energyLevel"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// ListRecommendations はenergyLevelクエリパラメータで絞り込んだおすすめ一覧を返す。
// システム標準とユーザー作成分のマージ。パラメータ未指定は空の一覧を返す。
// GET /api/recommendations?energyLevel=
func (h *RecommendationHandler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	recs, err := h.service.List(r.Context(), userID, r.URL.Query().Get("energyLevel"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	res := make([]recommendationResponse, 0, len(recs))
	for _, rec := range recs {
		res = append(res, toRecommendationResponse(rec))
	}

	writeJSON(w, http.StatusOK, res)
}

// CreateRecommendation はユーザー作成のおすすめを登録する。
// POST /api/recommendations
func (h *RecommendationHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	rec, err := h.service.Create(r.Context(), userID, recommendation.Input{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Link:        req.Link,
		EnergyLevel: req.EnergyLevel,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecommendationResponse(rec))
}

// UpdateRecommendation はおすすめの全フィールドを置換する。
// PUT /api/recommendations/:id
func (h *RecommendationHandler) UpdateRecommendation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	err = h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), recommendation.Input{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Link:        req.Link,
		EnergyLevel: req.EnergyLevel,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// DeleteRecommendation はおすすめを削除する。
// DELETE /api/recommendations/:id
func (h *RecommendationHandler) DeleteRecommendation(w http.ResponseWriter, r *http.Request) {
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

// toRecommendationResponse はmodel.RecommendationからAPIレスポンスに変換する。
func toRecommendationResponse(rec *model.Recommendation) recommendationResponse {
	return recommendationResponse{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Title:       rec.Title,
		Description: rec.Description,
		Type:        string(rec.Type),
		Link:        rec.Link,
		EnergyLevel: string(rec.EnergyLevel),
		IsDefault:   rec.IsDefault,
		CreatedAt:   rec.CreatedAt,
	}
}
