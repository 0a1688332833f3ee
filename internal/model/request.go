package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// RequestStatus は食品リクエストのライフサイクル状態を表す。
type RequestStatus string

const (
	// RequestStatusRequested はリクエスト直後の初期状態を示す。
	RequestStatusRequested RequestStatus = "Requested"
	// RequestStatusDelivered は受け渡し完了状態を示す。
	RequestStatusDelivered RequestStatus = "Delivered"
)

// FoodRequest はリスティングに対する受け取りリクエストを表す。
// リスティング側の表示情報（名前・画像・寄付者）は作成時点のスナップショットとして持つ。
type FoodRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FoodID         string             `bson:"foodId" json:"foodId"`
	FoodName       string             `bson:"foodName" json:"foodName"`
	FoodImage      string             `bson:"foodImage" json:"foodImage"`
	DonarName      string             `bson:"donarName" json:"donarName"`
	DonarEmail     string             `bson:"donarEmail" json:"donarEmail"`
	RequesterName  string             `bson:"requesterName" json:"requesterName"`
	RequesterImage string             `bson:"requesterImage" json:"requesterImage"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	PickupLocation string             `bson:"pickupLocation" json:"pickupLocation"`
	ExpiredDate    string             `bson:"expiredDate" json:"expiredDate"`
	RequestDate    string             `bson:"requestDate" json:"requestDate"`
	Status         RequestStatus      `bson:"status" json:"status"`
}
