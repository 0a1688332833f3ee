package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	MongoURI     string
	DatabaseName string

	// Token
	AccessTokenSecret string
	TokenTTL          time.Duration

	// Rate Limit
	RateLimitGeneral    int
	RateLimitTokenIssue int

	// Server
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure   bool
	CookieSameSite http.SameSite
	CookieDomain   string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.MongoURI = os.Getenv("MONGODB_URI")
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGODB_URI")
	}

	cfg.AccessTokenSecret = os.Getenv("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "" {
		missing = append(missing, "ACCESS_TOKEN_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.DatabaseName = getEnvString("DATABASE_NAME", "cookiteerDB")
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 6*time.Hour)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitTokenIssue = getEnvInt("RATE_LIMIT_TOKEN_ISSUE", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "5000")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:5173")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieSameSite = parseSameSite(os.Getenv("COOKIE_SAMESITE"), cfg.CookieSecure)
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:5173")

	return cfg, nil
}

// parseSameSite はCOOKIE_SAMESITE環境変数の値をhttp.SameSiteに変換する。
// 未設定の場合はSecure環境ではNone（クロスサイトのフロントエンドを想定）、
// 非Secure環境ではLaxを返す。ブラウザはSecureでないSameSite=None Cookieを
// 受け付けないため、この組み合わせはデフォルトでは生成しない。
// Cookieの設定と削除で同一の属性を使うため、解決は起動時の1回のみ行う。
func parseSameSite(v string, secure bool) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	}
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
