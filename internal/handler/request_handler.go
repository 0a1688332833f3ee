package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/cookiteer/internal/auth"
	"github.com/hitoshi/cookiteer/internal/middleware"
	"github.com/hitoshi/cookiteer/internal/model"
)

// RequestServiceInterface は食品リクエストハンドラーが必要とするサービスインターフェース。
type RequestServiceInterface interface {
	// Create はリクエストを作成する。重複時はDUPLICATE_REQUESTのAPIErrorを返す。
	Create(ctx context.Context, req *model.FoodRequest) (string, error)
	// ListByRequester は指定したリクエスト者のリクエスト一覧を返す。
	ListByRequester(ctx context.Context, email string) ([]*model.FoodRequest, error)
	// ListByFood は指定リスティングに対するリクエスト一覧を返す。
	ListByFood(ctx context.Context, foodID string) ([]*model.FoodRequest, error)
	// Delete は指定IDのリクエストを削除し、削除件数を返す。
	Delete(ctx context.Context, id string) (int64, error)
	// Deliver はリクエストをDelivered状態に更新し、対象のリスティングを削除する。
	Deliver(ctx context.Context, requestID, foodID string) error
}

// RequestHandler は食品リクエストのHTTPハンドラー。
type RequestHandler struct {
	service RequestServiceInterface
}

// NewRequestHandler はRequestHandlerを生成する。
func NewRequestHandler(service RequestServiceInterface) *RequestHandler {
	return &RequestHandler{service: service}
}

// deliverRequestBody はリクエスト受け渡し完了のボディ。
type deliverRequestBody struct {
	ID     string `json:"id"`
	FoodID string `json:"foodId"`
}

// deliverResultResponse は受け渡し完了のレスポンス。
type deliverResultResponse struct {
	Acknowledged bool                `json:"acknowledged"`
	Status       model.RequestStatus `json:"status"`
}

// CreateRequest は食品リクエストを作成する。
// 同一の（リスティング, リクエスト者）の組がすでに存在する場合は409を返す。
// POST /api/v1/food-requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req model.FoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	id, err := h.service.Create(r.Context(), &req)
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

// ListMyRequests は呼び出し元が行ったリクエスト一覧を返す。
// セッションの検証済み本人確認とクエリのemailが厳密一致しない場合は403を返す。
// GET /api/v1/food-requests?email=xxx
func (h *RequestHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := h.service.ListByRequester(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// DeleteRequest は食品リクエストを削除する。
// DELETE /api/v1/food-requests/{id}
func (h *RequestHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
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

// ManageRequests は呼び出し元のリスティングに対するリクエスト一覧を返す。
// emailはリスティング所有者としての本人確認、foodIdは対象リスティングの絞り込み。
// GET /api/v1/manage-food-requests?email=xxx&foodId=xxx
func (h *RequestHandler) ManageRequests(w http.ResponseWriter, r *http.Request) {
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

	foodID := r.URL.Query().Get("foodId")
	if foodID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("foodIdは必須です"))
		return
	}

	requests, err := h.service.ListByFood(r.Context(), foodID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// DeliverRequest はリクエストをDelivered状態にし、対象のリスティングを削除する。
// PATCH /api/v1/manage-food-requests
func (h *RequestHandler) DeliverRequest(w http.ResponseWriter, r *http.Request) {
	var body deliverRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	if err := h.service.Deliver(r.Context(), body.ID, body.FoodID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deliverResultResponse{
		Acknowledged: true,
		Status:       model.RequestStatusDelivered,
	})
}
