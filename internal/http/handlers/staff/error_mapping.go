package staff

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

var claimTransitionErrorRules = []mappedHandlerError{
	{target: service.ErrClaimNotFound, code: response.CodeNotFound, key: "error.claim_not_found"},
	{target: service.ErrInvalidTransition, code: response.CodeBadRequest, key: "error.invalid_transition"},
	{target: service.ErrConcurrentModification, code: response.CodeConflict, key: "error.concurrent_modification"},
}

var prepareHandoverErrorRules = []mappedHandlerError{
	{target: service.ErrClaimNotVerified, code: response.CodeBadRequest, key: "error.claim_not_verified"},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, key: "error.item_not_found"},
	{target: service.ErrStorageLocationNotFound, code: response.CodeNotFound, key: "error.storage_location_not_found"},
	{target: service.ErrTransferActiveExists, code: response.CodeBadRequest, key: "error.transfer_active_exists"},
}

var transferUpdateErrorRules = []mappedHandlerError{
	{target: service.ErrTransferNotFound, code: response.CodeNotFound, key: "error.transfer_not_found"},
	{target: service.ErrInvalidTransferTransition, code: response.CodeBadRequest, key: "error.invalid_transfer_transition"},
	{target: service.ErrCarrierInfoRequired, code: response.CodeBadRequest, key: "error.carrier_info_required"},
	{target: service.ErrInvalidTransition, code: response.CodeBadRequest, key: "error.invalid_transition"},
	{target: service.ErrConcurrentModification, code: response.CodeConflict, key: "error.concurrent_modification"},
	{target: service.ErrClaimNotFound, code: response.CodeNotFound, key: "error.claim_not_found"},
}

var pickupVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrReferenceCodeInvalid, code: response.CodeBadRequest, key: "error.reference_code_invalid"},
	{target: service.ErrCodeNotFound, code: response.CodeNotFound, key: "error.code_not_found"},
	{target: service.ErrAlreadyVerified, code: response.CodeBadRequest, key: "error.already_verified"},
	{target: service.ErrAlreadyCompleted, code: response.CodeBadRequest, key: "error.already_completed"},
	{target: service.ErrConcurrentModification, code: response.CodeConflict, key: "error.concurrent_modification"},
}

var pickupCompleteErrorRules = []mappedHandlerError{
	{target: service.ErrPickupNotFound, code: response.CodeNotFound, key: "error.pickup_not_found"},
	{target: service.ErrReferenceCodeInvalid, code: response.CodeBadRequest, key: "error.reference_code_invalid"},
	{target: service.ErrReferenceCodeMismatch, code: response.CodeBadRequest, key: "error.reference_code_mismatch"},
	{target: service.ErrPickupNotVerified, code: response.CodeBadRequest, key: "error.pickup_not_verified"},
	{target: service.ErrAlreadyCompleted, code: response.CodeBadRequest, key: "error.already_completed"},
	{target: service.ErrInvalidTransition, code: response.CodeBadRequest, key: "error.invalid_transition"},
	{target: service.ErrConcurrentModification, code: response.CodeConflict, key: "error.concurrent_modification"},
}

func respondClaimTransitionError(c *gin.Context, err error, extra []mappedHandlerError, fallbackKey string) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(claimTransitionErrorRules, extra), response.CodeInternal, fallbackKey)
}

func respondTransferUpdateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, transferUpdateErrorRules, response.CodeInternal, "error.transfer_update_failed")
}

func respondPickupVerifyError(c *gin.Context, err error) {
	respondWithMappedError(c, err, pickupVerifyErrorRules, response.CodeInternal, "error.pickup_verify_failed")
}

func respondPickupCompleteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, pickupCompleteErrorRules, response.CodeInternal, "error.pickup_complete_failed")
}
