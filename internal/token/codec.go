// Package token はセッショントークンの発行と検証を提供する。
//
// トークンはHMAC-SHA256で署名されたJWTで、本人確認用のクレーム（メールアドレス）と
// 発行時刻・有効期限を持つ。サーバー側には状態を持たないため失効リストはない。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 検証失敗の種別。呼び出し側はerrors.Isで判別できる。
var (
	// ErrMalformed はトークンを解析できない場合のエラー。
	ErrMalformed = errors.New("token is malformed")
	// ErrInvalidSignature は署名が一致しない場合のエラー。
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrExpired は有効期限切れの場合のエラー。
	ErrExpired = errors.New("token is expired")
)

// identityClaims はトークンに埋め込むクレーム。
// userフィールドはサインイン時にクライアントが主張したメールアドレス。
type identityClaims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Codec はトークンの発行（署名）と検証を行う。
// 署名鍵と有効期限ポリシーを所有し、プロセス全体で読み取り専用に共有される。
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec はCodecを生成する。
// ttlは発行するトークンの有効期間（デフォルト設定では6時間）。
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue は本人確認クレームを埋め込んだ署名済みトークンを発行する。
// 有効期限は発行時刻 + TTLの絶対時刻。
func (c *Codec) Issue(identity string) (string, error) {
	now := c.now()
	claims := identityClaims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、本人確認クレームを返す。
// 失敗時はErrMalformed、ErrInvalidSignature、ErrExpiredのいずれかを返す。
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		default:
			return "", ErrMalformed
		}
	}

	return claims.User, nil
}
