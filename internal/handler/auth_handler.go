// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/cookiteer/internal/middleware"
	"github.com/hitoshi/cookiteer/internal/model"
)

// tokenCookieName はセッショントークンを保持するCookieの名前。
const tokenCookieName = "token"

// TokenIssuer は認証ハンドラーが必要とするトークン発行インターフェース。
// token.Codecの部分集合として定義する。
type TokenIssuer interface {
	Issue(identity string) (string, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
// Cookie属性は起動時に1回解決し、設定と削除で同一の値を使う。
// 削除時に属性が一致しないとブラウザはCookieを消さないため、
// ハンドラー内で属性を組み立て直すことはしない。
type AuthHandlerConfig struct {
	CookieSecure   bool
	CookieSameSite http.SameSite
	CookieDomain   string
	TokenTTL       time.Duration
}

// TokenIssuedFunc はトークン発行成功時に呼ばれるフック。メトリクス収集に使う。
type TokenIssuedFunc func()

// AuthHandler はセッショントークン関連のHTTPハンドラー。
type AuthHandler struct {
	issuer   TokenIssuer
	config   AuthHandlerConfig
	onIssued TokenIssuedFunc
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(issuer TokenIssuer, config AuthHandlerConfig, onIssued TokenIssuedFunc) *AuthHandler {
	return &AuthHandler{
		issuer:   issuer,
		config:   config,
		onIssued: onIssued,
	}
}

// createTokenRequest はトークン発行リクエストのボディ。
// userはクライアントが主張するメールアドレス。サインインプロバイダでの
// 認証はフロントエンド側で完結しており、ここでは主張された値に署名するだけ。
type createTokenRequest struct {
	User string `json:"user"`
}

// CreateToken は本人確認クレームに署名したセッショントークンを発行し、
// HTTP Only Cookieに設定する。
// POST /api/v1/jwt
func (h *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req createTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}
	if req.User == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("userは必須です"))
		return
	}

	signed, err := h.issuer.Issue(req.User)
	if err != nil {
		slog.Error("failed to issue token", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    signed,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   int(h.config.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: h.config.CookieSameSite,
	})

	if h.onIssued != nil {
		h.onIssued()
	}

	slog.Info("session token issued", slog.String("identity", req.User))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Logout はセッションCookieをクリアする。
// トークンはサーバー側に状態を持たないため、削除はクライアント側のみで完結する。
// Cookie属性は設定時と完全に同一にする（不一致だとブラウザが削除しない）。
// POST /api/v1/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: h.config.CookieSameSite,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"logout": true})
}
