package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/cookiteer/internal/middleware"
	"github.com/hitoshi/cookiteer/internal/model"
)

// --- モック定義 ---

type mockRequestService struct {
	createFn          func(ctx context.Context, req *model.FoodRequest) (string, error)
	listByRequesterFn func(ctx context.Context, email string) ([]*model.FoodRequest, error)
	listByFoodFn      func(ctx context.Context, foodID string) ([]*model.FoodRequest, error)
	deleteFn          func(ctx context.Context, id string) (int64, error)
	deliverFn         func(ctx context.Context, requestID, foodID string) error
}

func (m *mockRequestService) Create(ctx context.Context, req *model.FoodRequest) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return "", errors.New("create not configured")
}

func (m *mockRequestService) ListByRequester(ctx context.Context, email string) ([]*model.FoodRequest, error) {
	if m.listByRequesterFn != nil {
		return m.listByRequesterFn(ctx, email)
	}
	return nil, errors.New("listByRequester not configured")
}

func (m *mockRequestService) ListByFood(ctx context.Context, foodID string) ([]*model.FoodRequest, error) {
	if m.listByFoodFn != nil {
		return m.listByFoodFn(ctx, foodID)
	}
	return nil, errors.New("listByFood not configured")
}

func (m *mockRequestService) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return 0, errors.New("delete not configured")
}

func (m *mockRequestService) Deliver(ctx context.Context, requestID, foodID string) error {
	if m.deliverFn != nil {
		return m.deliverFn(ctx, requestID, foodID)
	}
	return errors.New("deliver not configured")
}

// --- テスト ---

func TestCreateRequest_ReturnsInsertResult(t *testing.T) {
	svc := &mockRequestService{
		createFn: func(ctx context.Context, req *model.FoodRequest) (string, error) {
			return "66f0a1b2c3d4e5f6a7b8c9d1", nil
		},
	}
	h := NewRequestHandler(svc)

	body := `{"foodId":"66f0a1b2c3d4e5f6a7b8c9d0","requesterEmail":"a@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/food-requests", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateRequest(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result insertResultResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Acknowledged || result.InsertedID != "66f0a1b2c3d4e5f6a7b8c9d1" {
		t.Errorf("result = %+v, want acknowledged insert", result)
	}
}

func TestCreateRequest_DuplicateReturns409(t *testing.T) {
	svc := &mockRequestService{
		createFn: func(ctx context.Context, req *model.FoodRequest) (string, error) {
			return "", model.NewDuplicateRequestError()
		},
	}
	h := NewRequestHandler(svc)

	body := `{"foodId":"66f0a1b2c3d4e5f6a7b8c9d0","requesterEmail":"a@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/food-requests", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateRequest(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var errBody middleware.ErrorResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if errBody.Code != model.ErrCodeDuplicateRequest {
		t.Errorf("code = %q, want %q", errBody.Code, model.ErrCodeDuplicateRequest)
	}
}

func TestCreateRequest_InvalidJSONReturns400(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/food-requests", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()
	h.CreateRequest(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestListMyRequests_MatchingIdentity(t *testing.T) {
	svc := &mockRequestService{
		listByRequesterFn: func(ctx context.Context, email string) ([]*model.FoodRequest, error) {
			if email != "a@x.com" {
				t.Errorf("email = %q, want a@x.com", email)
			}
			return []*model.FoodRequest{{RequesterEmail: "a@x.com"}}, nil
		},
	}
	h := NewRequestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/food-requests?email=a@x.com", nil)
	req = req.WithContext(middleware.ContextWithIdentity(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()
	h.ListMyRequests(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

func TestListMyRequests_MismatchedIdentityReturns403(t *testing.T) {
	svc := &mockRequestService{
		listByRequesterFn: func(ctx context.Context, email string) ([]*model.FoodRequest, error) {
			t.Fatal("data must not be accessed on ownership mismatch")
			return nil, nil
		},
	}
	h := NewRequestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/food-requests?email=b@x.com", nil)
	req = req.WithContext(middleware.ContextWithIdentity(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()
	h.ListMyRequests(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestDeleteRequest_ReturnsDeleteResult(t *testing.T) {
	svc := &mockRequestService{
		deleteFn: func(ctx context.Context, id string) (int64, error) {
			return 1, nil
		},
	}
	h := NewRequestHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/food-requests/66f0a1b2c3d4e5f6a7b8c9d1", nil)
	req = withURLParam(req, "id", "66f0a1b2c3d4e5f6a7b8c9d1")
	w := httptest.NewRecorder()
	h.DeleteRequest(w, req)

	var result deleteResultResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Acknowledged || result.DeletedCount != 1 {
		t.Errorf("result = %+v, want acknowledged with deletedCount 1", result)
	}
}

func TestManageRequests_RequiresFoodID(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/manage-food-requests?email=a@x.com", nil)
	req = req.WithContext(middleware.ContextWithIdentity(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()
	h.ManageRequests(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestManageRequests_OwnershipCheckedBeforeFoodID(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	// foodId欠落かつ本人確認不一致の場合、所有権チェックが先に働く
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manage-food-requests?email=b@x.com", nil)
	req = req.WithContext(middleware.ContextWithIdentity(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()
	h.ManageRequests(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestManageRequests_ReturnsRequestsForListing(t *testing.T) {
	svc := &mockRequestService{
		listByFoodFn: func(ctx context.Context, foodID string) ([]*model.FoodRequest, error) {
			if foodID != "66f0a1b2c3d4e5f6a7b8c9d0" {
				t.Errorf("foodID = %q", foodID)
			}
			return []*model.FoodRequest{{FoodID: foodID, RequesterEmail: "b@x.com"}}, nil
		},
	}
	h := NewRequestHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/manage-food-requests?email=a@x.com&foodId=66f0a1b2c3d4e5f6a7b8c9d0", nil)
	req = req.WithContext(middleware.ContextWithIdentity(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()
	h.ManageRequests(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

func TestDeliverRequest_Success(t *testing.T) {
	var gotRequestID, gotFoodID string
	svc := &mockRequestService{
		deliverFn: func(ctx context.Context, requestID, foodID string) error {
			gotRequestID = requestID
			gotFoodID = foodID
			return nil
		},
	}
	h := NewRequestHandler(svc)

	body := `{"id":"66f0a1b2c3d4e5f6a7b8c9d1","foodId":"66f0a1b2c3d4e5f6a7b8c9d0"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/manage-food-requests", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.DeliverRequest(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if gotRequestID != "66f0a1b2c3d4e5f6a7b8c9d1" || gotFoodID != "66f0a1b2c3d4e5f6a7b8c9d0" {
		t.Errorf("deliver called with (%q, %q)", gotRequestID, gotFoodID)
	}

	var result deliverResultResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Acknowledged || result.Status != model.RequestStatusDelivered {
		t.Errorf("result = %+v, want acknowledged Delivered", result)
	}
}

func TestDeliverRequest_UnknownRequestReturns404(t *testing.T) {
	svc := &mockRequestService{
		deliverFn: func(ctx context.Context, requestID, foodID string) error {
			return model.NewRequestNotFoundError(requestID)
		},
	}
	h := NewRequestHandler(svc)

	body := `{"id":"66f0a1b2c3d4e5f6a7b8c9d1","foodId":"66f0a1b2c3d4e5f6a7b8c9d0"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/manage-food-requests", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.DeliverRequest(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}
