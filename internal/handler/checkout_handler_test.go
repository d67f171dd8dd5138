package handler

import (
	"bytes"
	"context"
	"encoding/json"
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

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResult), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func TestCheckoutHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	created := &model.CheckoutResult{
		OrderID:          "MC-AB12CD34E",
		VerificationCode: "AB12",
		TotalAmount:      decimal.RequireFromString("80.00"),
	}
	duplicate := &model.CheckoutResult{
		OrderID:          "MC-AB12CD34E",
		VerificationCode: "AB12",
		TotalAmount:      decimal.RequireFromString("80.00"),
		Duplicate:        true,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *model.CheckoutResult
		mockError      error
		expectedStatus int
		expectService  bool
		expectBody     string
	}{
		{
			name: "Success",
			requestBody: &model.CheckoutRequest{
				Items: []model.CartItem{{ProductID: "P001", Quantity: 2}},
			},
			mockReturn:     created,
			expectedStatus: http.StatusCreated,
			expectService:  true,
			expectBody:     `"orderId":"MC-AB12CD34E"`,
		},
		{
			name: "Duplicate submission returns existing order",
			requestBody: &model.CheckoutRequest{
				Items: []model.CartItem{{ProductID: "P001", Quantity: 2}},
			},
			mockReturn:     duplicate,
			expectedStatus: http.StatusOK,
			expectService:  true,
			expectBody:     `"duplicate":true`,
		},
		{
			name:           "Empty cart",
			requestBody:    &model.CheckoutRequest{},
			mockError:      model.ErrEmptyCart,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
			expectBody:     model.ErrEmptyCart.Message,
		},
		{
			name: "Invalid quantity",
			requestBody: &model.CheckoutRequest{
				Items: []model.CartItem{{ProductID: "P001", Quantity: -1}},
			},
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Malformed JSON",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
			expectBody:     "invalid request body",
		},
		{
			name: "Internal failure stays generic",
			requestBody: &model.CheckoutRequest{
				Items: []model.CartItem{{ProductID: "P001", Quantity: 2}},
			},
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
			expectBody:     "failed to create order, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("CreateOrder", mock.Anything, mock.AnythingOfType("*model.CheckoutRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewCheckoutHandler(mockService, logger)

			var body bytes.Buffer
			if raw, ok := tt.requestBody.(string); ok {
				body.WriteString(raw)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/checkout/create", &body)
			w := httptest.NewRecorder()

			h.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectBody)
			}
			if tt.expectedStatus >= 400 {
				assert.Contains(t, w.Body.String(), `"success":false`)
			} else {
				assert.Contains(t, w.Body.String(), `"success":true`)
			}

			mockService.AssertExpectations(t)
		})
	}
}
