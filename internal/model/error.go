package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeDuplicateOrder   = "DUPLICATE_ORDER"
	ErrCodeCouponExists     = "COUPON_EXISTS"
	ErrCodeCouponNotFound   = "COUPON_NOT_FOUND"
	ErrCodeNoFieldsToUpdate = "NO_FIELDS_TO_UPDATE"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a typed business-rule failure with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "Order must contain at least one item")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity is out of the allowed range")
	ErrDuplicateOrder   = NewDomainError(ErrCodeDuplicateOrder, "An identical cart was already submitted")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrCouponCodeExists = NewDomainError(ErrCodeCouponExists, "Coupon code already exists")
	ErrCouponNotFound   = NewDomainError(ErrCodeCouponNotFound, "Coupon not found")
	ErrNoFieldsToUpdate = NewDomainError(ErrCodeNoFieldsToUpdate, "No valid fields to update")
	ErrInvalidStatus    = NewDomainError(ErrCodeInvalidStatus, "Invalid status value")
)
