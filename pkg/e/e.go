package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrPriceMustBePositive = fmt.Errorf("price must be positive")
	ErrStockMustBeNonNeg   = fmt.Errorf("stock must be non-negative")
	ErrInvalidPrice        = fmt.Errorf("invalid price format")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrMissingFields       = fmt.Errorf("required fields are missing")
	ErrInvalidQuantity     = fmt.Errorf("quantity must be positive")
	ErrEmptyOrder          = fmt.Errorf("order must contain at least one item")
	ErrInvalidOrderID      = fmt.Errorf("invalid order id")
	ErrInvalidProductID    = fmt.Errorf("invalid product id")
	ErrInvalidSignature    = fmt.Errorf("invalid webhook signature")
	ErrMissingSignature    = fmt.Errorf("missing webhook signature")
	ErrUnknownAction       = fmt.Errorf("unknown action")
	ErrFileTooLarge        = fmt.Errorf("file too large")
	ErrUnsupportedMedia    = fmt.Errorf("unsupported media type")

	// 401/403
	ErrUnauthorized = fmt.Errorf("authorization required")
	ErrForbidden    = fmt.Errorf("access denied")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrOrderNotFound   = fmt.Errorf("order not found")

	// 409 Conflict
	ErrInsufficientStock  = fmt.Errorf("insufficient stock")
	ErrProductUnavailable = fmt.Errorf("product is not available")
	ErrOrderNotPayable    = fmt.Errorf("order is not awaiting payment")
	ErrStatusTransition   = fmt.Errorf("order status transition not allowed")

	// 5xx
	ErrInternalServerError   = fmt.Errorf("internal server error")
	ErrPaymentsNotConfigured = fmt.Errorf("payment processor is not configured")
	ErrBotNotConfigured      = fmt.Errorf("telegram bot is not configured")
	ErrUpstreamFailure       = fmt.Errorf("upstream service failure")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
