package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/cookiteer/internal/metrics"
	"github.com/hitoshi/cookiteer/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// database.DBの部分集合として定義する。
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// 認証
	TokenIssuer   TokenIssuer
	TokenVerifier middleware.TokenVerifier
	AuthConfig    AuthHandlerConfig

	// ドメインサービス
	FoodService    FoodServiceInterface
	RequestService RequestServiceInterface

	// メトリクス
	Collector metrics.MetricsCollector
	Gatherer  prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → (保護ルートのみ: Session → RateLimit)
//
// 公開ルート（一覧・詳細・作成・削除）はセッションゲートを通らない。
// 所有者スコープのルート（manage-food、food-requests一覧、manage-food-requests一覧）
// のみセッションゲートと所有者ガードで保護する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var onStatus middleware.StatusRecorderFunc
	if deps.Collector != nil {
		onStatus = deps.Collector.RecordHTTPStatus
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(logger, onStatus))

	var onIssued TokenIssuedFunc
	if deps.Collector != nil {
		onIssued = deps.Collector.RecordTokenIssued
	}

	authHandler := NewAuthHandler(deps.TokenIssuer, deps.AuthConfig, onIssued)
	foodHandler := NewFoodHandler(deps.FoodService)
	requestHandler := NewRequestHandler(deps.RequestService)

	// ルート直下
	r.Get("/", handleWelcome)
	r.Get("/health", newHealthHandler(deps.HealthChecker))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// --- 認証不要のルート ---

		// トークン発行（発行専用レート制限を適用）
		if deps.RateLimiter != nil {
			r.With(deps.RateLimiter.TokenIssueMiddleware()).Post("/jwt", authHandler.CreateToken)
		} else {
			r.Post("/jwt", authHandler.CreateToken)
		}
		r.Post("/logout", authHandler.Logout)

		// リスティングの閲覧・作成・管理は公開
		// （閲覧と投稿は誰でも可能という方針。履歴と管理のみ本人スコープ）
		r.Get("/foods", foodHandler.ListFoods)
		r.Get("/foods/{id}", foodHandler.GetFood)
		r.Post("/add-food", foodHandler.AddFood)
		r.Patch("/update-food/{id}", foodHandler.UpdateFood)
		r.Delete("/foods/{id}", foodHandler.DeleteFood)

		r.Post("/food-requests", requestHandler.CreateRequest)
		r.Delete("/food-requests/{id}", requestHandler.DeleteRequest)
		r.Patch("/manage-food-requests", requestHandler.DeliverRequest)

		// --- 認証が必要なルート ---
		// ミドルウェアスタック: Session → RateLimit(General)
		r.Group(func(r chi.Router) {
			var onAuthFailure middleware.AuthFailureFunc
			if deps.Collector != nil {
				onAuthFailure = deps.Collector.RecordAuthFailure
			}
			r.Use(middleware.NewSessionMiddleware(deps.TokenVerifier, onAuthFailure))
			if deps.RateLimiter != nil {
				r.Use(deps.RateLimiter.GeneralMiddleware())
			}

			r.Get("/manage-food", foodHandler.ManageFood)
			r.Get("/food-requests", requestHandler.ListMyRequests)
			r.Get("/manage-food-requests", requestHandler.ManageRequests)
		})
	})

	return r
}

// handleWelcome はルートパスへのアクセスに簡単な案内を返す。
// GET /
func handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "cookiteer-backend",
		"message": "Welcome to the Cookiteer backend!",
	})
}

// newHealthHandler はヘルスチェックハンドラーを返す。
// データベースへの疎通確認を含む。
// GET /health
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Ping(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
