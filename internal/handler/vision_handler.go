package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/dreamsync/internal/middleware"
	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/vision"
)

// VisionServiceInterface はビジョンボードハンドラーが必要とするサービスインターフェース。
type VisionServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.VisionItem, error)
	Create(ctx context.Context, userID string, input vision.CreateInput) (*model.VisionItem, error)
	Update(ctx context.Context, userID, id string, input vision.UpdateInput) (*model.VisionItem, error)
	Delete(ctx context.Context, userID, id string) error
}

// VisionHandler はビジョンボードのHTTPハンドラー。
type VisionHandler struct {
	service VisionServiceInterface
}

// NewVisionHandler はVisionHandlerを生成する。
func NewVisionHandler(service VisionServiceInterface) *VisionHandler {
	return &VisionHandler{service: service}
}

// createVisionRequest はビジョンアイテム作成リクエストのボディ。
// 数値フィールドの省略はデフォルト値に解決される。
type createVisionRequest struct {
	ImageURL string   `json:"image_url"`
	Section  string   `json:"section"`
	Text     string   `json:"text"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
	ZIndex   *int     `json:"zIndex"`
}

// updateVisionRequest はビジョンアイテム部分更新リクエストのボディ。
// 省略した文字列フィールドは既存値を維持し、省略した数値フィールドは
// デフォルト値に戻る。
type updateVisionRequest struct {
	ImageURL *string  `json:"image_url"`
	Section  *string  `json:"section"`
	Text     *string  `json:"text"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
	ZIndex   *int     `json:"zIndex"`
}

// visionItemResponse はビジョンアイテムのAPIレスポンス。
type visionItemResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageURL  string    `json:"imageUrl"`
	Section   string    `json:"section"`
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	ZIndex    int       `json:"zIndex"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListItems はビジョンアイテム一覧を返す。
// GET /api/vision-items
func (h *VisionHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	res := make([]visionItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, toVisionItemResponse(item))
	}

	writeJSON(w, http.StatusOK, res)
}

// CreateItem はビジョンアイテムを作成する。
// POST /api/vision-items
func (h *VisionHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createVisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	item, err := h.service.Create(r.Context(), userID, vision.CreateInput{
		ImageURL: req.ImageURL,
		Section:  req.Section,
		Text:     req.Text,
		X:        req.X,
		Y:        req.Y,
		Width:    req.Width,
		Height:   req.Height,
		ZIndex:   req.ZIndex,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVisionItemResponse(item))
}

// UpdateItem はビジョンアイテムを部分更新する。
// PUT /api/vision-items/:id
func (h *VisionHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req updateVisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	item, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), vision.UpdateInput{
		ImageURL: req.ImageURL,
		Section:  req.Section,
		Text:     req.Text,
		X:        req.X,
		Y:        req.Y,
		Width:    req.Width,
		Height:   req.Height,
		ZIndex:   req.ZIndex,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVisionItemResponse(item))
}

// DeleteItem はビジョンアイテムを削除する。
// DELETE /api/vision-items/:id
func (h *VisionHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
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

// toVisionItemResponse はmodel.VisionItemからAPIレスポンスに変換する。
func toVisionItemResponse(item *model.VisionItem) visionItemResponse {
	return visionItemResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ImageURL:  item.ImageURL,
		Section:   string(item.Section),
		Text:      item.Text,
		X:         item.X,
		Y:         item.Y,
		Width:     item.Width,
		Height:    item.Height,
		ZIndex:    item.ZIndex,
		CreatedAt: item.CreatedAt,
	}
}
