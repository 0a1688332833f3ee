// Package auth は所有者スコープのエンドポイントに対する認可判定を提供する。
package auth

import "github.com/hitoshi/cookiteer/internal/model"

// Authorize はセッションで検証済みの本人確認とクエリで主張された所有者を比較する。
// 比較は厳密な文字列一致で、大文字小文字の正規化やトリムは行わない
// （サインインプロバイダが返す表記がそのまま一致する前提の仕様）。
// 不一致の場合はFORBIDDENのAPIErrorを返し、呼び出し側はデータアクセスを行わずに
// 403を返さなければならない。判定はリクエストごとに行い、キャッシュしない。
func Authorize(sessionIdentity, claimedIdentity string) error {
	if sessionIdentity != claimedIdentity {
		return model.NewForbiddenError()
	}
	return nil
}
