package commands

import "ticket-checkout/internal/pkg/errs"

var (
	ErrCartNotFound            = errs.New("cart not found")
	ErrCartNotOwned            = errs.New("cart not owned by user")
	ErrCartEmpty               = errs.New("cart has no items")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInsufficientInventory   = errs.New("insufficient inventory")
	ErrEventNotFound           = errs.New("event not found")
	ErrSignatureInvalid        = errs.New("webhook signature invalid")
	ErrGatewayUnavailable      = errs.New("payment gateway unavailable")
	ErrPublishFailed           = errs.New("failed to enqueue checkout event")
	ErrBuyerNotFound           = errs.New("buyer not found")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
