package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/dreamsync/internal/middleware"
	"github.com/hitoshi/dreamsync/internal/model"
)

// UserDataHandler はユーザーデータ一括取得のHTTPハンドラー。
type UserDataHandler struct {
	energy         EnergyServiceInterface
	manifestations ManifestationServiceInterface
	vision         VisionServiceInterface
}

// NewUserDataHandler はUserDataHandlerを生成する。
func NewUserDataHandler(energy EnergyServiceInterface, manifestations ManifestationServiceInterface, vision VisionServiceInterface) *UserDataHandler {
	return &UserDataHandler{
		energy:         energy,
		manifestations: manifestations,
		vision:         vision,
	}
}

// userDataResponse はユーザーデータ一括取得のレスポンス。
type userDataResponse struct {
	EnergyEntries  []energyEntryResponse   `json:"energyEntries"`
	Manifestations []manifestationResponse `json:"manifestations"`
	VisionItems    []visionItemResponse    `json:"visionItems"`
}

// GetUserData はユーザーのエネルギー記録・目標・ビジョンアイテムを一括で返す。
// 3つの読み取りは独立に実行され、アトミックなスナップショットではない
// （読み取りの間に割り込んだ書き込みは一部にだけ反映され得る）。
// パスのuserIdは認証済みユーザーIDと一致しなければならない。
// GET /api/users/:userId/data
func (h *UserDataHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if chi.URLParam(r, "userId") != userID {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	entries, err := h.energy.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	manifestations, err := h.manifestations.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items, err := h.vision.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	res := userDataResponse{
		EnergyEntries:  make([]energyEntryResponse, 0, len(entries)),
		Manifestations: make([]manifestationResponse, 0, len(manifestations)),
		VisionItems:    make([]visionItemResponse, 0, len(items)),
	}
	for _, entry := range entries {
		res.EnergyEntries = append(res.EnergyEntries, toEnergyEntryResponse(entry))
	}
	for _, m := range manifestations {
		res.Manifestations = append(res.Manifestations, toManifestationResponse(m))
	}
	for _, item := range items {
		res.VisionItems = append(res.VisionItems, toVisionItemResponse(item))
	}

	writeJSON(w, http.StatusOK, res)
}
