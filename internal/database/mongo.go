// Package database はMongoDBクライアントのライフサイクルを管理する。
package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// コレクション名。マネージドMongoDB上の既存データと互換を保つため固定。
const (
	foodsCollectionName    = "foodsCollection"
	requestsCollectionName = "requestCollection"
)

// DB は共有MongoDBクライアントとデータベースハンドルを保持する。
// 起動時に1回生成し、ハンドラーへ注入して使う。内部のクライアントは
// スレッドセーフで、リクエスト間で共有してよい。
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// Open はMongoDBへの接続を確立してDBを返す。
// Stable API v1を指定して接続する。mongo.Connectは即時に接続検証を
// 行わないため、実際の疎通確認にはPingを使用すること。
func Open(ctx context.Context, uri, databaseName string) (*DB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &DB{
		client:   client,
		database: client.Database(databaseName),
	}, nil
}

// Ping はプライマリノードへの疎通を確認する。
func (d *DB) Ping(ctx context.Context) error {
	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return nil
}

// Close は接続を閉じる。シャットダウン時に1回呼ぶ。
func (d *DB) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

// Foods は食品リスティングのコレクションを返す。
func (d *DB) Foods() *mongo.Collection {
	return d.database.Collection(foodsCollectionName)
}

// FoodRequests は食品リクエストのコレクションを返す。
func (d *DB) FoodRequests() *mongo.Collection {
	return d.database.Collection(requestsCollectionName)
}

// EnsureIndexes はクエリ用のインデックスを作成する。冪等。
// (foodId, requesterEmail)にユニーク制約は意図的に付けない。重複リクエストの
// 判定はアプリケーション側のチェックのみで行う（既存実装との互換動作）。
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.Foods().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "donarEmail", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create food indexes: %w", err)
	}

	_, err = d.FoodRequests().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "requesterEmail", Value: 1}}},
		{Keys: bson.D{{Key: "foodId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create request indexes: %w", err)
	}

	return nil
}
