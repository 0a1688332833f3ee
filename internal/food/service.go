// Package food は食品リスティングに関するビジネスロジックを提供する。
package food

import (
	"context"
	"strings"

	"github.com/hitoshi/cookiteer/internal/model"
	"github.com/hitoshi/cookiteer/internal/repository"
	"github.com/hitoshi/cookiteer/internal/security"
)

// Service は食品リスティングのドメインサービス。
type Service struct {
	repo      repository.FoodRepository
	sanitizer security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(repo repository.FoodRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
	}
}

// TranslateCategory はURLで渡されるカテゴリ名をDB上の表記に変換する。
// フロントエンドは「&」をURLに載せられないため「And」に置き換えて送ってくる
// （例: MeatAndVeg → Meat&Veg）。置換は「And」が先頭以外に現れた場合のみ、
// 最初の1箇所に対して行う。先頭の「And」は単語の一部とみなし変換しない。
func TranslateCategory(category string) string {
	i := strings.Index(category, "And")
	if i <= 0 {
		return category
	}
	return category[:i] + "&" + category[i+3:]
}

// List は検索条件に一致するリスティング一覧を返す。
// カテゴリはDB表記に変換してからフィルタする。
func (s *Service) List(ctx context.Context, query model.FoodQuery) ([]*model.FoodListing, error) {
	query.Category = TranslateCategory(query.Category)
	return s.repo.Find(ctx, query)
}

// Get は指定IDのリスティングを返す。見つからない場合はnilを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.FoodListing, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByDonar は指定した寄付者のリスティング一覧を返す。
func (s *Service) ListByDonar(ctx context.Context, email string) ([]*model.FoodListing, error) {
	return s.repo.FindByDonarEmail(ctx, email)
}

// Create はリスティングを作成し、挿入されたドキュメントのIDを返す。
// 補足メモはXSS対策のため保存前にサニタイズする。
func (s *Service) Create(ctx context.Context, listing *model.FoodListing) (string, error) {
	listing.AdditionalNotes = s.sanitizer.Sanitize(listing.AdditionalNotes)
	return s.repo.Create(ctx, listing)
}

// Update は指定IDのリスティングを部分更新する。nilフィールドは変更しない。
// 補足メモが指定された場合は保存前にサニタイズする。
func (s *Service) Update(ctx context.Context, id string, update model.FoodListingUpdate) (int64, int64, error) {
	if update.AdditionalNotes != nil {
		sanitized := s.sanitizer.Sanitize(*update.AdditionalNotes)
		update.AdditionalNotes = &sanitized
	}
	return s.repo.Update(ctx, id, update)
}

// Delete は指定IDのリスティングを削除し、削除件数を返す。
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteByID(ctx, id)
}
