package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/dreamsync/internal/auth"
	"github.com/hitoshi/dreamsync/internal/energy"
	"github.com/hitoshi/dreamsync/internal/manifestation"
	"github.com/hitoshi/dreamsync/internal/middleware"
	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/recommendation"
	"github.com/hitoshi/dreamsync/internal/vision"
)

// authedRequest は認証済みユーザーIDをコンテキストに設定したリクエストを生成する。
func authedRequest(method, target, userID, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withURLParam はchiのURLパラメータをリクエストコンテキストに設定する。
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	registerFunc func(ctx context.Context, email, password string) (*auth.Result, error)
	loginFunc    func(ctx context.Context, email, password string) (*auth.Result, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (*auth.Result, error) {
	return m.registerFunc(ctx, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*auth.Result, error) {
	return m.loginFunc(ctx, email, password)
}

// mockEnergyService はEnergyServiceInterfaceのモック実装。
type mockEnergyService struct {
	listFunc   func(ctx context.Context, userID string) ([]*model.EnergyEntry, error)
	createFunc func(ctx context.Context, userID string, input energy.CreateInput) (*model.EnergyEntry, error)
	deleteFunc func(ctx context.Context, userID, id string) error
}

func (m *mockEnergyService) List(ctx context.Context, userID string) ([]*model.EnergyEntry, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockEnergyService) Create(ctx context.Context, userID string, input energy.CreateInput) (*model.EnergyEntry, error) {
	return m.createFunc(ctx, userID, input)
}

func (m *mockEnergyService) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFunc(ctx, userID, id)
}

// mockManifestationService はManifestationServiceInterfaceのモック実装。
type mockManifestationService struct {
	listFunc   func(ctx context.Context, userID string) ([]*model.Manifestation, error)
	createFunc func(ctx context.Context, userID string, input manifestation.CreateInput) (*model.Manifestation, error)
	updateFunc func(ctx context.Context, userID, id string, input manifestation.UpdateInput) (*model.Manifestation, error)
	deleteFunc func(ctx context.Context, userID, id string) error
}

func (m *mockManifestationService) List(ctx context.Context, userID string) ([]*model.Manifestation, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockManifestationService) Create(ctx context.Context, userID string, input manifestation.CreateInput) (*model.Manifestation, error) {
	return m.createFunc(ctx, userID, input)
}

func (m *mockManifestationService) Update(ctx context.Context, userID, id string, input manifestation.UpdateInput) (*model.Manifestation, error) {
	return m.updateFunc(ctx, userID, id, input)
}

func (m *mockManifestationService) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFunc(ctx, userID, id)
}

// mockVisionService はVisionServiceInterfaceのモック実装。
type mockVisionService struct {
	listFunc   func(ctx context.Context, userID string) ([]*model.VisionItem, error)
	createFunc func(ctx context.Context, userID string, input vision.CreateInput) (*model.VisionItem, error)
	updateFunc func(ctx context.Context, userID, id string, input vision.UpdateInput) (*model.VisionItem, error)
	deleteFunc func(ctx context.Context, userID, id string) error
}

func (m *mockVisionService) List(ctx context.Context, userID string) ([]*model.VisionItem, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockVisionService) Create(ctx context.Context, userID string, input vision.CreateInput) (*model.VisionItem, error) {
	return m.createFunc(ctx, userID, input)
}

func (m *mockVisionService) Update(ctx context.Context, userID, id string, input vision.UpdateInput) (*model.VisionItem, error) {
	return m.updateFunc(ctx, userID, id, input)
}

func (m *mockVisionService) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFunc(ctx, userID, id)
}

// mockRecommendationService はRecommendationServiceInterfaceのモック実装。
type mockRecommendationService struct {
	listFunc   func(ctx context.Context, userID, band string) ([]*model.Recommendation, error)
	createFunc func(ctx context.Context, userID string, input recommendation.Input) (*model.Recommendation, error)
	updateFunc func(ctx context.Context, userID, id string, input recommendation.Input) error
	deleteFunc func(ctx context.Context, userID, id string) error
}

func (m *mockRecommendationService) List(ctx context.Context, userID, band string) ([]*model.Recommendation, error) {
	return m.listFunc(ctx, userID, band)
}

func (m *mockRecommendationService) Create(ctx context.Context, userID string, input recommendation.Input) (*model.Recommendation, error) {
	return m.createFunc(ctx, userID, input)
}

func (m *mockRecommendationService) Update(ctx context.Context, userID, id string, input recommendation.Input) error {
	return m.updateFunc(ctx, userID, id, input)
}

func (m *mockRecommendationService) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFunc(ctx, userID, id)
}
