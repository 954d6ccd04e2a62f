package service

import "errors"

// 认领相关错误
var (
	ErrClaimNotFound           = errors.New("claim not found")
	ErrClaimCreateFailed       = errors.New("claim create failed")
	ErrClaimFetchFailed        = errors.New("claim fetch failed")
	ErrClaimUpdateFailed       = errors.New("claim update failed")
	ErrInvalidTransition       = errors.New("invalid claim transition")
	ErrRejectionReasonRequired = errors.New("rejection reason required")
	ErrClaimNotVerified        = errors.New("claim not verified")
	ErrClaimNotReady           = errors.New("claim not ready")
	ErrItemNotFound            = errors.New("item not found")
	ErrStorageLocationNotFound = errors.New("storage location not found")
)

// 支付相关错误
var (
	ErrAlreadyPaid            = errors.New("claim already paid")
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrGatewayConfigInvalid   = errors.New("payment gateway config invalid")
	ErrPaymentNotConfirmed    = errors.New("payment not confirmed")
	ErrPaymentIntentNotFound  = errors.New("payment intent not found")
	ErrPaymentIntentFailed    = errors.New("payment intent create failed")
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrStaleIdempotencyKey    = errors.New("stale idempotency key")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// 调拨相关错误
var (
	ErrTransferNotFound          = errors.New("transfer not found")
	ErrTransferUpdateFailed      = errors.New("transfer update failed")
	ErrInvalidTransferTransition = errors.New("invalid transfer transition")
	ErrCarrierInfoRequired       = errors.New("carrier info required")
	ErrTransferActiveExists      = errors.New("active transfer already exists")
)

// 取件相关错误
var (
	ErrPickupNotFound        = errors.New("pickup not found")
	ErrPickupExists          = errors.New("pickup already booked")
	ErrPickupBookFailed      = errors.New("pickup book failed")
	ErrSlotUnavailable       = errors.New("pickup slot unavailable")
	ErrDateInvalid           = errors.New("pickup date invalid")
	ErrReferenceCodeInvalid  = errors.New("reference code invalid")
	ErrCodeNotFound          = errors.New("reference code not found")
	ErrReferenceCodeMismatch = errors.New("reference code mismatch")
	ErrAlreadyVerified       = errors.New("pickup already verified")
	ErrAlreadyCompleted      = errors.New("pickup already completed")
	ErrPickupNotVerified     = errors.New("pickup not verified")
)
