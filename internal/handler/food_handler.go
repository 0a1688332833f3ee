package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/cookiteer/internal/auth"
	"github.com/hitoshi/cookiteer/internal/middleware"
	"github.com/hitoshi/cookiteer/internal/model"
)

// FoodServiceInterface は食品リスティングハンドラーが必要とするサービスインターフェース。
type FoodServiceInterface interface {
	// List は検索条件に一致するリスティング一覧を返す。
	List(ctx context.Context, query model.FoodQuery) ([]*model.FoodListing, error)
	// Get は指定IDのリスティングを返す。見つからない場合はnilを返す。
	Get(ctx context.Context, id string) (*model.FoodListing, error)
	// ListByDonar は指定した寄付者のリスティング一覧を返す。
	ListByDonar(ctx context.Context, email string) ([]*model.FoodListing, error)
	// Create はリスティングを作成し、挿入されたドキュメントのIDを返す。
	Create(ctx context.Context, listing *model.FoodListing) (string, error)
	// Update は指定IDのリスティングを部分更新する。
	Update(ctx context.Context, id string, update model.FoodListingUpdate) (matched, modified int64, err error)
	// Delete は指定IDのリスティングを削除し、削除件数を返す。
	Delete(ctx context.Context, id string) (int64, error)
}

// FoodHandler は食品リスティングのHTTPハンドラー。
type FoodHandler struct {
	service FoodServiceInterface
}

// NewFoodHandler はFoodHandlerを生成する。
func NewFoodHandler(service FoodServiceInterface) *FoodHandler {
	return &FoodHandler{service: service}
}

// --- レスポンス型 ---

// insertResultResponse はドキュメント挿入結果のレスポンス。
// 既存フロントエンドが期待するMongoDBドライバーの結果形式に合わせる。
type insertResultResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// updateResultResponse はドキュメント更新結果のレスポンス。
type updateResultResponse struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// deleteResultResponse はドキュメント削除結果のレスポンス。
type deleteResultResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// ListFoods は公開されている全リスティングを検索条件付きで返す。
// GET /api/v1/foods?category=xxx&search=xxx&sortBy=expiredDate|quantity&order=asc|desc
func (h *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := model.FoodQuery{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}

	switch q.Get("sortBy") {
	case "":
		query.SortField = model.FoodSortNone
	case "expiredDate":
		query.SortField = model.FoodSortExpiredDate
	case "quantity":
		query.SortField = model.FoodSortQuantity
	default:
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("sortByにはexpiredDateまたはquantityを指定してください"))
		return
	}

	switch q.Get("order") {
	case "", "asc":
		query.SortAsc = true
	case "desc":
		query.SortAsc = false
	default:
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("orderにはascまたはdescを指定してください"))
		return
	}

	listings, err := h.service.List(r.Context(), query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

// GetFood は指定IDのリスティングを返す。
// ドキュメントが存在しない場合は404ではなくnullボディの200を返す
// （既存フロントエンドが期待する動作）。
// GET /api/v1/foods/{id}
func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listing)
}

// AddFood はリスティングを作成する。
// POST /api/v1/add-food
func (h *FoodHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	var listing model.FoodListing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	id, err := h.service.Create(r.Context(), &listing)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(insertResultResponse{
		Acknowledged: true,
		InsertedID:   id,
	})
}

// UpdateFood はリスティングを部分更新する。ボディに含まれないフィールドは変更しない。
// PATCH /api/v1/update-food/{id}
func (h *FoodHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update model.FoodListingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	matched, modified, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updateResultResponse{
		Acknowledged:  true,
		MatchedCount:  matched,
		ModifiedCount: modified,
	})
}

// DeleteFood はリスティングを削除する。
// DELETE /api/v1/foods/{id}
func (h *FoodHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deleteResultResponse{
		Acknowledged: true,
		DeletedCount: deleted,
	})
}

// ManageFood は呼び出し元が所有するリスティング一覧を返す。
// セッションの検証済み本人確認とクエリのemailが厳密一致しない場合は403を返し、
// データアクセスは行わない。
// GET /api/v1/manage-food?email=xxx
func (h *FoodHandler) ManageFood(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	email := r.URL.Query().Get("email")
	if err := auth.Authorize(identity, email); err != nil {
		handleServiceError(w, err)
		return
	}

	listings, err := h.service.ListByDonar(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

// --- ヘルパー関数 ---

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeDuplicateRequest:
		return http.StatusConflict
	case model.ErrCodeInvalidRequest, model.ErrCodeInvalidID:
		return http.StatusBadRequest
	case model.ErrCodeRequestNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
