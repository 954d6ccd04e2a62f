package public

import (
	"strconv"
	"strings"

	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"
	"github.com/taniyakamboj15/lostandfound-api/internal/i18n"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntentRequest 创建支付意向请求
type CreatePaymentIntentRequest struct {
	ClaimID uint `json:"claim_id" binding:"required"`
}

// VerifyPaymentRequest 核验支付请求
type VerifyPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	ClaimID         uint   `json:"claim_id" binding:"required"`
}

// GetFeeBreakdown 获取认领费用明细
func (h *Handler) GetFeeBreakdown(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("claim_id"), 10, 64)
	if err != nil || claimID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	breakdown, err := h.PaymentService.GetFeeBreakdown(uint(claimID))
	if err != nil {
		respondClaimError(c, err, "error.claim_fetch_failed")
		return
	}

	response.Success(c, breakdown)
}

// CreatePaymentIntent 创建支付意向（以 Idempotency-Key 请求头保证幂等）
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	idempotencyKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	intent, err := h.PaymentService.CreatePaymentIntent(c.Request.Context(), req.ClaimID, idempotencyKey)
	if err != nil {
		respondPaymentIntentError(c, err)
		return
	}

	response.Success(c, gin.H{
		"payment_intent_id": intent.GatewayIntentID,
		"client_secret":     intent.ClientSecret,
		"breakdown": gin.H{
			"handling_fee": intent.HandlingFee,
			"storage_fee":  intent.StorageFee,
			"total_amount": intent.TotalAmount,
			"days_stored":  intent.DaysStored,
			"currency":     intent.Currency,
		},
	})
}

// VerifyPayment 核验支付结果
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	claim, err := h.PaymentService.VerifyPayment(c.Request.Context(), strings.TrimSpace(req.PaymentIntentID), req.ClaimID)
	if err != nil {
		respondPaymentVerifyError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.payment_confirmed"), gin.H{
		"success": true,
		"claim":   claim,
	})
}
