package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hitoshi/cookiteer/internal/model"
)

// MongoFoodRepo はMongoDBを使用した食品リスティングリポジトリ。
type MongoFoodRepo struct {
	collection *mongo.Collection
}

// NewMongoFoodRepo はMongoFoodRepoを生成する。
func NewMongoFoodRepo(collection *mongo.Collection) *MongoFoodRepo {
	return &MongoFoodRepo{collection: collection}
}

// Find は検索条件に一致するリスティング一覧を返す。
// 名前検索は大文字小文字を区別しない部分一致（正規表現メタ文字はエスケープする）。
func (r *MongoFoodRepo) Find(ctx context.Context, query model.FoodQuery) ([]*model.FoodListing, error) {
	filter := bson.M{}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if query.Search != "" {
		filter["foodName"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(query.Search),
			Options: "i",
		}}
	}

	opts := options.Find()
	if query.SortField != model.FoodSortNone {
		order := 1
		if !query.SortAsc {
			order = -1
		}
		opts.SetSort(bson.D{{Key: string(query.SortField), Value: order}})
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find food listings: %w", err)
	}

	listings := []*model.FoodListing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode food listings: %w", err)
	}
	return listings, nil
}

// FindByID は指定IDのリスティングを取得する。見つからない場合はnilを返す。
func (r *MongoFoodRepo) FindByID(ctx context.Context, id string) (*model.FoodListing, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NewInvalidIDError(id)
	}

	listing := &model.FoodListing{}
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(listing)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find food listing: %w", err)
	}
	return listing, nil
}

// FindByDonarEmail は指定した寄付者のリスティング一覧を返す。
func (r *MongoFoodRepo) FindByDonarEmail(ctx context.Context, email string) ([]*model.FoodListing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"donarEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find food listings by donar: %w", err)
	}

	listings := []*model.FoodListing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode food listings: %w", err)
	}
	return listings, nil
}

// Create はリスティングを作成し、挿入されたドキュメントのID（hex）を返す。
func (r *MongoFoodRepo) Create(ctx context.Context, listing *model.FoodListing) (string, error) {
	result, err := r.collection.InsertOne(ctx, listing)
	if err != nil {
		return "", fmt.Errorf("failed to insert food listing: %w", err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type: %T", result.InsertedID)
	}
	return objectID.Hex(), nil
}

// Update は指定IDのリスティングを部分更新する。nilフィールドは変更しない。
func (r *MongoFoodRepo) Update(ctx context.Context, id string, update model.FoodListingUpdate) (int64, int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, 0, model.NewInvalidIDError(id)
	}

	set := bson.M{}
	if update.FoodName != nil {
		set["foodName"] = *update.FoodName
	}
	if update.FoodImage != nil {
		set["foodImage"] = *update.FoodImage
	}
	if update.FoodQuantity != nil {
		set["foodQuantity"] = *update.FoodQuantity
	}
	if update.PickupLocation != nil {
		set["pickupLocation"] = *update.PickupLocation
	}
	if update.ExpiredDate != nil {
		set["expiredDate"] = *update.ExpiredDate
	}
	if update.AdditionalNotes != nil {
		set["additionalNotes"] = *update.AdditionalNotes
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	if len(set) == 0 {
		return 0, 0, model.NewInvalidRequestError("更新するフィールドがありません")
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to update food listing: %w", err)
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

// DeleteByID は指定IDのリスティングを削除し、削除件数を返す。
func (r *MongoFoodRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, model.NewInvalidIDError(id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete food listing: %w", err)
	}
	return result.DeletedCount, nil
}

// compile-time interface check
var _ FoodRepository = (*MongoFoodRepo)(nil)
