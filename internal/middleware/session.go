// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/cookiteer/internal/model"
)

// TokenCookieName はセッショントークンを保持するCookieの名前。
const TokenCookieName = "token"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに検証済み本人確認を格納するためのキー。
var identityContextKey = contextKey("identity")

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Codecの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// AuthFailureFunc はセッション検証失敗時に呼ばれるフック。メトリクス収集に使う。
type AuthFailureFunc func()

// NewSessionMiddleware はHTTP Only Cookieからセッショントークンを読み取り、
// 署名と有効期限を検証するミドルウェアを返す。
// 検証済みの本人確認（メールアドレス）をリクエストコンテキストに注入する。
// 未認証リクエストには一律401 Unauthorizedを返す。失敗種別はログにのみ記録し、
// クライアントには区別して返さない。
// onFailureが指定された場合、401を返す際に通知する。
func NewSessionMiddleware(verifier TokenVerifier, onFailure AuthFailureFunc) func(next http.Handler) http.Handler {
	fail := func(w http.ResponseWriter) {
		if onFailure != nil {
			onFailure()
		}
		WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieからトークンを取得
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				fail(w)
				return
			}

			// 2. トークンの署名と有効期限を検証
			identity, err := verifier.Verify(cookie.Value)
			if err != nil {
				slog.Warn("token verification failed",
					slog.String("error", err.Error()),
					slog.String("path", r.URL.Path),
				)
				fail(w)
				return
			}

			// 3. 検証済み本人確認をコンテキストに注入
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext はリクエストコンテキストから検証済み本人確認を取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (string, error) {
	identity, ok := ctx.Value(identityContextKey).(string)
	if !ok || identity == "" {
		return "", fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

// ContextWithIdentity はコンテキストに本人確認を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
