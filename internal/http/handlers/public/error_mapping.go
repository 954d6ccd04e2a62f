package public

import (
	"errors"

	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"
	"github.com/taniyakamboj15/lostandfound-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var claimCommonErrorRules = []mappedHandlerError{
	{target: service.ErrClaimNotFound, code: response.CodeNotFound, key: "error.claim_not_found"},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, key: "error.item_not_found"},
	{target: service.ErrConcurrentModification, code: response.CodeConflict, key: "error.concurrent_modification"},
	{target: service.ErrInvalidTransition, code: response.CodeBadRequest, key: "error.invalid_transition"},
}

var paymentIntentErrorRules = []mappedHandlerError{
	{target: service.ErrIdempotencyKeyRequired, code: response.CodeBadRequest, key: "error.idempotency_key_required"},
	{target: service.ErrStaleIdempotencyKey, code: response.CodeConflict, key: "error.stale_idempotency_key"},
	{target: service.ErrClaimNotVerified, code: response.CodeBadRequest, key: "error.claim_not_verified"},
	{target: service.ErrAlreadyPaid, code: response.CodeBadRequest, key: "error.already_paid"},
	{target: service.ErrGatewayConfigInvalid, code: response.CodeInternal, key: "error.gateway_config_invalid"},
	{target: service.ErrGatewayUnavailable, code: response.CodeInternal, key: "error.gateway_unavailable"},
}

var paymentVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentIntentNotFound, code: response.CodeNotFound, key: "error.payment_intent_not_found"},
	{target: service.ErrPaymentNotConfirmed, code: response.CodeBadRequest, key: "error.payment_not_confirmed"},
	{target: service.ErrClaimNotVerified, code: response.CodeBadRequest, key: "error.claim_not_verified"},
	{target: service.ErrGatewayUnavailable, code: response.CodeInternal, key: "error.gateway_unavailable"},
	{target: service.ErrGatewayConfigInvalid, code: response.CodeInternal, key: "error.gateway_config_invalid"},
}

var pickupBookErrorRules = []mappedHandlerError{
	{target: service.ErrDateInvalid, code: response.CodeBadRequest, key: "error.date_invalid"},
	{target: service.ErrClaimNotReady, code: response.CodeBadRequest, key: "error.claim_not_ready"},
	{target: service.ErrPickupExists, code: response.CodeBadRequest, key: "error.pickup_exists"},
	{target: service.ErrSlotUnavailable, code: response.CodeBadRequest, key: "error.slot_unavailable"},
}

func respondClaimError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, claimCommonErrorRules, response.CodeInternal, fallbackKey)
}

func respondPaymentIntentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(claimCommonErrorRules, paymentIntentErrorRules), response.CodeInternal, "error.payment_intent_failed")
}

func respondPaymentVerifyError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(claimCommonErrorRules, paymentVerifyErrorRules), response.CodeInternal, "error.payment_verify_failed")
}

func respondPickupBookError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(claimCommonErrorRules, pickupBookErrorRules), response.CodeInternal, "error.pickup_book_failed")
}
