package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"morishcart/internal/coupon"
	"morishcart/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCouponService is a mock implementation of service.CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Validate(ctx context.Context, code string, total decimal.Decimal) (coupon.Result, error) {
	args := m.Called(ctx, code, total)
	return args.Get(0).(coupon.Result), args.Error(1)
}

func (m *MockCouponService) GetAll(ctx context.Context) ([]model.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *MockCouponService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCouponHandler_Validate(t *testing.T) {
	logger := zerolog.Nop()

	savings := decimal.RequireFromString("20.00")
	valid := coupon.Result{
		Valid:    true,
		Discount: &savings,
		Message:  "Coupon applied! You saved $20.00",
	}
	invalid := coupon.Result{
		Valid:   false,
		Message: "Invalid coupon code",
	}

	tests := []struct {
		name           string
		requestBody    string
		mockResult     coupon.Result
		mockError      error
		expectedStatus int
		expectService  bool
		expectBody     string
	}{
		{
			name:           "Valid coupon",
			requestBody:    `{"code":"SAVE20","total":100}`,
			mockResult:     valid,
			expectedStatus: http.StatusOK,
			expectService:  true,
			expectBody:     "Coupon applied! You saved $20.00",
		},
		{
			name:           "Unknown coupon",
			requestBody:    `{"code":"NOPE","total":100}`,
			mockResult:     invalid,
			expectedStatus: http.StatusOK,
			expectService:  true,
			expectBody:     "Invalid coupon code",
		},
		{
			name:           "Malformed JSON",
			requestBody:    `{`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
			expectBody:     "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCouponService)
			if tt.expectService {
				mockService.On("Validate", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
					Return(tt.mockResult, tt.mockError)
			}

			h := NewCouponHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/coupons/validate", bytes.NewBufferString(tt.requestBody))
			w := httptest.NewRecorder()

			h.Validate(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectBody)

			mockService.AssertExpectations(t)
		})
	}
}

func TestCouponHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		requestBody    string
		mockReturn     *model.Coupon
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:        "Success",
			requestBody: `{"code":"SAVE20","type":"percentage","value":20}`,
			mockReturn: &model.Coupon{
				ID:    1,
				Code:  "SAVE20",
				Type:  model.CouponTypePercentage,
				Value: decimal.NewFromInt(20),
			},
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Duplicate code",
			requestBody:    `{"code":"SAVE20","type":"percentage","value":20}`,
			mockError:      model.ErrCouponCodeExists,
			expectedStatus: http.StatusConflict,
			expectService:  true,
		},
		{
			name:           "Malformed JSON",
			requestBody:    `{`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCouponService)
			if tt.expectService {
				mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.CouponRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewCouponHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons", bytes.NewBufferString(tt.requestBody))
			w := httptest.NewRecorder()

			h.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCouponHandler_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCouponService)
	mockService.On("UpdateStatus", mock.Anything, int64(7), false).Return(nil)

	h := NewCouponHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons/7/status", bytes.NewBufferString(`{"isActive":false}`))
	req = withURLParam(req, "id", "7")
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCouponHandler_Delete_NotFound(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCouponService)
	mockService.On("Delete", mock.Anything, int64(99)).Return(model.ErrCouponNotFound)

	h := NewCouponHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/coupons/99", nil)
	req = withURLParam(req, "id", "99")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
