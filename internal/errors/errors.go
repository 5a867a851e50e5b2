// Package errors provides custom error types for the BudgetWise core.
// All service-layer errors should use AppError so that the HTTP surface
// can render consistent responses without leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors. PIN failures are deliberately split so the UI can
// distinguish "set up a PIN first" from "wrong PIN".
var (
	ErrUnauthorized    = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrSessionExpired  = &AppError{Code: "SESSION_EXPIRED", Message: "Session has expired", StatusCode: http.StatusUnauthorized}
	ErrNoPINConfigured = &AppError{Code: "NO_PIN_CONFIGURED", Message: "No PIN has been set up", StatusCode: http.StatusConflict}
	ErrIncorrectPIN    = &AppError{Code: "INCORRECT_PIN", Message: "Incorrect PIN", StatusCode: http.StatusUnauthorized}
	ErrPINTooShort     = &AppError{Code: "PIN_TOO_SHORT", Message: "PIN must be at least 4 digits", StatusCode: http.StatusBadRequest}
)

// Crypto errors.
var (
	ErrEncryptionFailed = &AppError{Code: "ENCRYPTION_FAILED", Message: "Failed to encrypt payload", StatusCode: http.StatusInternalServerError}
	ErrDecryptionFailed = &AppError{Code: "DECRYPTION_FAILED", Message: "Failed to decrypt payload", StatusCode: http.StatusInternalServerError}
)

// General errors.
var (
	ErrInvalidInput     = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound         = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer   = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "Local store could not be opened", StatusCode: http.StatusServiceUnavailable}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrDuplicateTransaction   = &AppError{Code: "DUPLICATE_TRANSACTION", Message: "A transaction with this ID already exists", StatusCode: http.StatusConflict}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrNegativeAmount         = &AppError{Code: "NEGATIVE_AMOUNT", Message: "Amount must be a non-negative magnitude", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound   = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse      = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
	ErrCategoryDepth      = &AppError{Code: "CATEGORY_DEPTH", Message: "Categories support a single level of nesting", StatusCode: http.StatusBadRequest}
	ErrSelfParentCategory = &AppError{Code: "SELF_PARENT_CATEGORY", Message: "A category cannot be its own parent", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrInvalidPeriod  = &AppError{Code: "INVALID_PERIOD", Message: "Unsupported budget period", StatusCode: http.StatusBadRequest}
)

// Settings errors.
var (
	ErrSettingNotFound = &AppError{Code: "SETTING_NOT_FOUND", Message: "Setting not found", StatusCode: http.StatusNotFound}
)
