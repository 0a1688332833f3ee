// Package request は食品リクエストに関するビジネスロジックを提供する。
package request

import (
	"context"
	"log/slog"

	"github.com/hitoshi/cookiteer/internal/metrics"
	"github.com/hitoshi/cookiteer/internal/model"
	"github.com/hitoshi/cookiteer/internal/repository"
)

// Service は食品リクエストのドメインサービス。
type Service struct {
	requestRepo repository.FoodRequestRepository
	foodRepo    repository.FoodRepository
	collector   metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(
	requestRepo repository.FoodRequestRepository,
	foodRepo repository.FoodRepository,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		foodRepo:    foodRepo,
		collector:   collector,
	}
}

// Create は食品リクエストを作成し、挿入されたドキュメントのIDを返す。
// 同一の（リスティング, リクエスト者）の組がすでに存在する場合は
// DUPLICATE_REQUESTのAPIErrorを返す。
//
// 存在チェックと挿入は別々のDB呼び出しで、トランザクションもユニーク
// インデックスも使わない。同時刻の同一リクエスト同士には競合の窓がある
// （既存実装との互換動作。片方が重複のまま通る可能性を許容する）。
func (s *Service) Create(ctx context.Context, req *model.FoodRequest) (string, error) {
	if req.FoodID == "" {
		return "", model.NewInvalidRequestError("foodIdは必須です")
	}
	if req.RequesterEmail == "" {
		return "", model.NewInvalidRequestError("requesterEmailは必須です")
	}

	existing, err := s.requestRepo.FindByFoodAndRequester(ctx, req.FoodID, req.RequesterEmail)
	if err != nil {
		return "", err
	}
	if existing != nil {
		s.collector.RecordRequestConflict()
		return "", model.NewDuplicateRequestError()
	}

	if req.Status == "" {
		req.Status = model.RequestStatusRequested
	}

	id, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		return "", err
	}

	s.collector.RecordRequestCreated()
	return id, nil
}

// ListByRequester は指定したリクエスト者のリクエスト一覧を返す。
func (s *Service) ListByRequester(ctx context.Context, email string) ([]*model.FoodRequest, error) {
	return s.requestRepo.FindByRequesterEmail(ctx, email)
}

// ListByFood は指定リスティングに対するリクエスト一覧を返す。
func (s *Service) ListByFood(ctx context.Context, foodID string) ([]*model.FoodRequest, error) {
	return s.requestRepo.FindByFoodID(ctx, foodID)
}

// Delete は指定IDのリクエストを削除し、削除件数を返す。
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	return s.requestRepo.DeleteByID(ctx, id)
}

// Deliver はリクエストをDelivered状態に更新し、対象のリスティングを削除する。
// 2つの操作は別々のDB呼び出しで、トランザクションは使わない（既存実装との
// 互換動作）。状態更新後のリスティング削除に失敗した場合はエラーを返すが、
// 状態の巻き戻しは行わない。
func (s *Service) Deliver(ctx context.Context, requestID, foodID string) error {
	if requestID == "" {
		return model.NewInvalidRequestError("idは必須です")
	}
	if foodID == "" {
		return model.NewInvalidRequestError("foodIdは必須です")
	}

	matched, err := s.requestRepo.UpdateStatusByID(ctx, requestID, model.RequestStatusDelivered)
	if err != nil {
		return err
	}
	if matched == 0 {
		return model.NewRequestNotFoundError(requestID)
	}

	deleted, err := s.foodRepo.DeleteByID(ctx, foodID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		slog.Warn("delivered request had no backing listing",
			slog.String("request_id", requestID),
			slog.String("food_id", foodID),
		)
	}

	return nil
}
