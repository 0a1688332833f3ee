// Package model はドメインモデルを定義する。
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// FoodListing は寄付者が登録した食品リスティングを表す。
// フロントエンドのフォーム項目をそのまま保持するドキュメント。
type FoodListing struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FoodName        string             `bson:"foodName" json:"foodName"`
	FoodImage       string             `bson:"foodImage" json:"foodImage"`
	FoodQuantity    int                `bson:"foodQuantity" json:"foodQuantity"`
	PickupLocation  string             `bson:"pickupLocation" json:"pickupLocation"`
	ExpiredDate     string             `bson:"expiredDate" json:"expiredDate"`
	AdditionalNotes string             `bson:"additionalNotes" json:"additionalNotes"`
	Category        string             `bson:"category" json:"category"`
	DonarName       string             `bson:"donarName" json:"donarName"`
	DonarImage      string             `bson:"donarImage" json:"donarImage"`
	DonarEmail      string             `bson:"donarEmail" json:"donarEmail"`
}

// FoodListingUpdate は部分更新で変更可能なフィールドを表す。
// nilのフィールドは変更しない。
type FoodListingUpdate struct {
	FoodName        *string `json:"foodName,omitempty"`
	FoodImage       *string `json:"foodImage,omitempty"`
	FoodQuantity    *int    `json:"foodQuantity,omitempty"`
	PickupLocation  *string `json:"pickupLocation,omitempty"`
	ExpiredDate     *string `json:"expiredDate,omitempty"`
	AdditionalNotes *string `json:"additionalNotes,omitempty"`
	Category        *string `json:"category,omitempty"`
}

// FoodSortField はリスティング一覧のソート対象フィールドを表す。
type FoodSortField string

const (
	// FoodSortNone はソート指定なしを示す。
	FoodSortNone FoodSortField = ""
	// FoodSortExpiredDate は賞味期限によるソートを示す。
	FoodSortExpiredDate FoodSortField = "expiredDate"
	// FoodSortQuantity は数量によるソートを示す。
	FoodSortQuantity FoodSortField = "foodQuantity"
)

// FoodQuery はリスティング一覧取得の検索条件を表す。
type FoodQuery struct {
	// Category はカテゴリの完全一致フィルタ。空なら全件。
	Category string
	// Search はfoodNameに対する大文字小文字を区別しない部分一致検索。
	Search string
	// SortField はソート対象フィールド。FoodSortNoneならソートしない。
	SortField FoodSortField
	// SortAsc はtrueで昇順、falseで降順。SortFieldが指定された場合のみ有効。
	SortAsc bool
}
