package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"morishcart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVerificationService is a mock implementation of service.VerificationService.
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) GetByOrderID(ctx context.Context, orderID string) (*model.OrderVerification, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderVerification), args.Error(1)
}

func (m *MockVerificationService) List(ctx context.Context, filter model.VerificationFilter) ([]model.OrderVerification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderVerification), args.Error(1)
}

func (m *MockVerificationService) Update(ctx context.Context, orderID string, update model.VerificationUpdate) error {
	args := m.Called(ctx, orderID, update)
	return args.Error(0)
}

func (m *MockVerificationService) ClearCustomerInfo(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func TestVerificationHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	mockVerifications := new(MockVerificationService)
	mockOrders := new(MockOrderService)

	mockVerifications.On("List", mock.Anything, model.VerificationFilter{
		Status:        model.VerificationStatusPending,
		CustomerPhone: "",
		Limit:         25,
	}).Return([]model.OrderVerification{
		{ID: 1, OrderID: "MC-AAA111BBB", Status: model.VerificationStatusPending},
	}, nil)

	h := NewVerificationHandler(mockVerifications, mockOrders, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?status=pending&limit=25", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MC-AAA111BBB")
	mockVerifications.AssertExpectations(t)
}

func TestVerificationHandler_List_InvalidLimit(t *testing.T) {
	h := NewVerificationHandler(new(MockVerificationService), new(MockOrderService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?limit=abc", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationHandler_GetByOrderID(t *testing.T) {
	logger := zerolog.Nop()

	verification := &model.OrderVerification{
		ID:          4,
		OrderID:     "MC-AAA111BBB",
		TotalAmount: decimal.RequireFromString("42.00"),
		Status:      model.VerificationStatusPending,
	}
	order := &model.Order{
		OrderID: "MC-AAA111BBB",
		Total:   decimal.RequireFromString("42.00"),
		Status:  model.OrderStatusInitiated,
	}
	items := []model.OrderItem{{ProductID: "P001", Quantity: 2}}

	mockVerifications := new(MockVerificationService)
	mockOrders := new(MockOrderService)
	mockVerifications.On("GetByOrderID", mock.Anything, "MC-AAA111BBB").Return(verification, nil)
	mockOrders.On("GetByID", mock.Anything, "MC-AAA111BBB").Return(order, items, nil)

	h := NewVerificationHandler(mockVerifications, mockOrders, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/MC-AAA111BBB", nil)
	req = withURLParam(req, "orderId", "MC-AAA111BBB")
	w := httptest.NewRecorder()

	h.GetByOrderID(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verification"`)
	assert.Contains(t, w.Body.String(), `"order"`)
	assert.Contains(t, w.Body.String(), `"items"`)
	mockVerifications.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestVerificationHandler_GetByOrderID_NotFound(t *testing.T) {
	mockVerifications := new(MockVerificationService)
	mockOrders := new(MockOrderService)
	mockVerifications.On("GetByOrderID", mock.Anything, "MC-MISSING12").Return(nil, model.ErrOrderNotFound)

	h := NewVerificationHandler(mockVerifications, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/MC-MISSING12", nil)
	req = withURLParam(req, "orderId", "MC-MISSING12")
	w := httptest.NewRecorder()

	h.GetByOrderID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockOrders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestVerificationHandler_Update(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name               string
		body               string
		expectVerification bool
		expectOrderStatus  bool
		expectedStatus     int
	}{
		{
			name:               "Verification fields only",
			body:               `{"status":"verified","customerName":"Aisha"}`,
			expectVerification: true,
			expectedStatus:     http.StatusOK,
		},
		{
			name:              "Order status only",
			body:              `{"orderStatus":"confirmed"}`,
			expectOrderStatus: true,
			expectedStatus:    http.StatusOK,
		},
		{
			name:               "Both",
			body:               `{"status":"verified","orderStatus":"confirmed"}`,
			expectVerification: true,
			expectOrderStatus:  true,
			expectedStatus:     http.StatusOK,
		},
		{
			name:           "Empty update",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Non-whitelisted fields only",
			body:           `{"signature":"hack","totalAmount":999}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockVerifications := new(MockVerificationService)
			mockOrders := new(MockOrderService)

			if tt.expectVerification {
				mockVerifications.On("Update", mock.Anything, "MC-AAA111BBB", mock.AnythingOfType("model.VerificationUpdate")).
					Return(nil)
			}
			if tt.expectOrderStatus {
				mockOrders.On("UpdateStatus", mock.Anything, "MC-AAA111BBB", model.OrderStatusConfirmed).Return(nil)
			}

			h := NewVerificationHandler(mockVerifications, mockOrders, logger)

			req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/MC-AAA111BBB", bytes.NewBufferString(tt.body))
			req = withURLParam(req, "orderId", "MC-AAA111BBB")
			w := httptest.NewRecorder()

			h.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockVerifications.AssertExpectations(t)
			mockOrders.AssertExpectations(t)

			if !tt.expectVerification {
				mockVerifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
			if !tt.expectOrderStatus {
				mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestVerificationHandler_ClearCustomerInfo(t *testing.T) {
	mockVerifications := new(MockVerificationService)
	mockOrders := new(MockOrderService)
	mockVerifications.On("ClearCustomerInfo", mock.Anything, "MC-AAA111BBB").Return(nil)

	h := NewVerificationHandler(mockVerifications, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/orders/MC-AAA111BBB/clear-customer", nil)
	req = withURLParam(req, "orderId", "MC-AAA111BBB")
	w := httptest.NewRecorder()

	h.ClearCustomerInfo(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockVerifications.AssertExpectations(t)
}
