package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hitoshi/cookiteer/internal/model"
)

// MongoFoodRequestRepo はMongoDBを使用した食品リクエストリポジトリ。
type MongoFoodRequestRepo struct {
	collection *mongo.Collection
}

// NewMongoFoodRequestRepo はMongoFoodRequestRepoを生成する。
func NewMongoFoodRequestRepo(collection *mongo.Collection) *MongoFoodRequestRepo {
	return &MongoFoodRequestRepo{collection: collection}
}

// Create はリクエストを作成し、挿入されたドキュメントのID（hex）を返す。
func (r *MongoFoodRequestRepo) Create(ctx context.Context, request *model.FoodRequest) (string, error) {
	result, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to insert food request: %w", err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type: %T", result.InsertedID)
	}
	return objectID.Hex(), nil
}

// FindByFoodAndRequester はリスティングIDとリクエスト者メールの組で検索する。
// 見つからない場合はnilを返す。
func (r *MongoFoodRequestRepo) FindByFoodAndRequester(ctx context.Context, foodID, requesterEmail string) (*model.FoodRequest, error) {
	request := &model.FoodRequest{}
	err := r.collection.FindOne(ctx, bson.M{
		"foodId":         foodID,
		"requesterEmail": requesterEmail,
	}).Decode(request)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find food request: %w", err)
	}
	return request, nil
}

// FindByRequesterEmail は指定したリクエスト者のリクエスト一覧を返す。
func (r *MongoFoodRequestRepo) FindByRequesterEmail(ctx context.Context, email string) ([]*model.FoodRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"requesterEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find food requests by requester: %w", err)
	}

	requests := []*model.FoodRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode food requests: %w", err)
	}
	return requests, nil
}

// FindByFoodID は指定リスティングに対するリクエスト一覧を返す。
func (r *MongoFoodRequestRepo) FindByFoodID(ctx context.Context, foodID string) ([]*model.FoodRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"foodId": foodID})
	if err != nil {
		return nil, fmt.Errorf("failed to find food requests by food: %w", err)
	}

	requests := []*model.FoodRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode food requests: %w", err)
	}
	return requests, nil
}

// UpdateStatusByID は指定IDのリクエストの状態を更新し、一致件数を返す。
func (r *MongoFoodRequestRepo) UpdateStatusByID(ctx context.Context, id string, status model.RequestStatus) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, model.NewInvalidIDError(id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update food request status: %w", err)
	}
	return result.MatchedCount, nil
}

// DeleteByID は指定IDのリクエストを削除し、削除件数を返す。
func (r *MongoFoodRequestRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, model.NewInvalidIDError(id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete food request: %w", err)
	}
	return result.DeletedCount, nil
}

// compile-time interface check
var _ FoodRequestRepository = (*MongoFoodRequestRepo)(nil)
