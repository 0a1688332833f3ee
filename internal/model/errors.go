package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, request, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeInvalidID        = "INVALID_ID"
	ErrCodeRequestNotFound  = "REQUEST_NOT_FOUND"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewForbiddenError はアクセス権限なしエラーを生成する。
// セッションの本人確認と要求された所有者が一致しない場合に使う。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このリソースへのアクセス権限がありません。",
		Category: "auth",
		Action:   "自分のアカウントのデータのみ操作できます。",
	}
}

// NewDuplicateRequestError は同一リスティングへの重複リクエストエラーを生成する。
func NewDuplicateRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateRequest,
		Message:  "この食品にはすでにリクエスト済みです。",
		Category: "request",
		Action:   "リクエスト一覧から状況を確認してください。",
	}
}

// NewInvalidRequestError はリクエストボディの解析・検証エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストが不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewInvalidIDError は識別子の形式エラーを生成する。
func NewInvalidIDError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("無効なIDです: %s", id),
		Category: "validation",
		Action:   "IDを確認してください。",
	}
}

// NewRequestNotFoundError は更新対象リクエストが存在しない場合のエラーを生成する。
func NewRequestNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeRequestNotFound,
		Message:  fmt.Sprintf("指定されたリクエストが見つかりません: %s", id),
		Category: "request",
		Action:   "リクエストIDを確認してください。",
	}
}
