package service

import "errors"

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderFetchFailed       = errors.New("order fetch failed")
	ErrOrderStatusInvalid     = errors.New("order status invalid")
	ErrOrderUpdateFailed      = errors.New("order update failed")
	ErrPaymentNotEligible     = errors.New("payment not eligible")
	ErrInstallmentNotEligible = errors.New("installment payment not eligible")
	ErrMissingToken           = errors.New("payment token missing")
	ErrMissingOrderReference  = errors.New("order reference missing from gateway response")
	ErrAttemptUpdateFailed    = errors.New("payment attempt update failed")
	ErrGatewayRequestFailed   = errors.New("gateway request failed")
	ErrGatewayRefused         = errors.New("gateway refused payment session")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
