// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/cookiteer/internal/model"
)

// FoodRepository は食品リスティングの永続化インターフェース。
type FoodRepository interface {
	// Find は検索条件に一致するリスティング一覧を返す。
	Find(ctx context.Context, query model.FoodQuery) ([]*model.FoodListing, error)

	// FindByID は指定IDのリスティングを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.FoodListing, error)

	// FindByDonarEmail は指定した寄付者のリスティング一覧を返す。
	FindByDonarEmail(ctx context.Context, email string) ([]*model.FoodListing, error)

	// Create はリスティングを作成し、挿入されたドキュメントのID（hex）を返す。
	Create(ctx context.Context, listing *model.FoodListing) (string, error)

	// Update は指定IDのリスティングを部分更新し、一致件数と更新件数を返す。
	Update(ctx context.Context, id string, update model.FoodListingUpdate) (matched, modified int64, err error)

	// DeleteByID は指定IDのリスティングを削除し、削除件数を返す。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// FoodRequestRepository は食品リクエストの永続化インターフェース。
type FoodRequestRepository interface {
	// Create はリクエストを作成し、挿入されたドキュメントのID（hex）を返す。
	Create(ctx context.Context, request *model.FoodRequest) (string, error)

	// FindByFoodAndRequester はリスティングIDとリクエスト者メールの組で検索する。
	// 見つからない場合はnilを返す。重複リクエスト判定に使う。
	FindByFoodAndRequester(ctx context.Context, foodID, requesterEmail string) (*model.FoodRequest, error)

	// FindByRequesterEmail は指定したリクエスト者のリクエスト一覧を返す。
	FindByRequesterEmail(ctx context.Context, email string) ([]*model.FoodRequest, error)

	// FindByFoodID は指定リスティングに対するリクエスト一覧を返す。
	FindByFoodID(ctx context.Context, foodID string) ([]*model.FoodRequest, error)

	// UpdateStatusByID は指定IDのリクエストの状態を更新し、一致件数を返す。
	UpdateStatusByID(ctx context.Context, id string, status model.RequestStatus) (int64, error)

	// DeleteByID は指定IDのリクエストを削除し、削除件数を返す。
	DeleteByID(ctx context.Context, id string) (int64, error)
}
