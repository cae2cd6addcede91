package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/dreamsync/internal/metrics"
	"github.com/hitoshi/dreamsync/internal/middleware"
)

// maxRequestBodyBytes はリクエストボディのサイズ上限（10MiB）。
// ビジョンアイテムのdata URI画像を収容できる大きさとする。
const maxRequestBodyBytes = 10 << 20

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier      middleware.TokenVerifier
	CORSAllowedOrigins []string
	RateLimiter        *middleware.RateLimiter
	Logger             *slog.Logger

	// メトリクス
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	// ヘルスチェック
	DB Pinger

	// ドメインサービス
	AuthService           AuthServiceInterface
	EnergyService         EnergyServiceInterface
	ManifestationService  ManifestationServiceInterface
	VisionService         VisionServiceInterface
	RecommendationService RecommendationServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → CORS → Logging → Metrics → BodyLimit →（認証ルート: AuthRateLimit）
//	                                     →（保護ルート: Auth → RateLimit(General)）
//
// /health と /metrics は認証不要。認証ルート（/api/auth/*）はIP単位のレート制限のみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigins))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.NewBodyLimitMiddleware(maxRequestBodyBytes))

	authHandler := NewAuthHandler(deps.AuthService)
	energyHandler := NewEnergyHandler(deps.EnergyService)
	manifestationHandler := NewManifestationHandler(deps.ManifestationService)
	visionHandler := NewVisionHandler(deps.VisionService)
	recommendationHandler := NewRecommendationHandler(deps.RecommendationService)
	userDataHandler := NewUserDataHandler(deps.EnergyService, deps.ManifestationService, deps.VisionService)
	healthHandler := NewHealthHandler(deps.DB)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler.Health)
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// 認証ルート（IP単位のレート制限）
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.AuthMiddleware())

		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// エネルギー記録
		r.Route("/api/energy-entries", func(r chi.Router) {
			r.Get("/", energyHandler.ListEntries)
			r.Post("/", energyHandler.CreateEntry)
			r.Delete("/{id}", energyHandler.DeleteEntry)
		})

		// 目標
		r.Route("/api/manifestations", func(r chi.Router) {
			r.Get("/", manifestationHandler.ListManifestations)
			r.Post("/", manifestationHandler.CreateManifestation)
			r.Put("/{id}", manifestationHandler.UpdateManifestation)
			r.Delete("/{id}", manifestationHandler.DeleteManifestation)
		})

		// ビジョンボード
		r.Route("/api/vision-items", func(r chi.Router) {
			r.Get("/", visionHandler.ListItems)
			r.Post("/", visionHandler.CreateItem)
			r.Put("/{id}", visionHandler.UpdateItem)
			r.Delete("/{id}", visionHandler.DeleteItem)
		})

		// おすすめ
		r.Route("/api/recommendations", func(r chi.Router) {
			r.Get("/", recommendationHandler.ListRecommendations)
			r.Post("/", recommendationHandler.CreateRecommendation)
			r.Put("/{id}", recommendationHandler.UpdateRecommendation)
			r.Delete("/{id}", recommendationHandler.DeleteRecommendation)
		})

		// ユーザーデータ一括取得
		r.Get("/api/users/{userId}/data", userDataHandler.GetUserData)
	})

	return r
}
