package staff

import (
	"strconv"
	"strings"

	"github.com/taniyakamboj15/lostandfound-api/internal/http/handlers/shared"
	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"
	"github.com/taniyakamboj15/lostandfound-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RejectClaimRequest 驳回认领请求
type RejectClaimRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PrepareHandoverRequest 准备交接请求
type PrepareHandoverRequest struct {
	PickupLocationID uint `json:"pickup_location_id" binding:"required"`
}

// ListClaims 认领列表（带状态过滤与分页）
func (h *Handler) ListClaims(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	var claimantID, itemID uint
	if raw := strings.TrimSpace(c.Query("claimant_id")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			claimantID = uint(id)
		}
	}
	if raw := strings.TrimSpace(c.Query("item_id")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			itemID = uint(id)
		}
	}

	claims, total, err := h.ClaimService.List(repository.ClaimListFilter{
		Page:          page,
		PageSize:      pageSize,
		ClaimantID:    claimantID,
		ItemID:        itemID,
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.claim_list_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, claims, pagination)
}

// RequestProof 要求认领人补充身份凭证
func (h *Handler) RequestProof(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}

	claim, err := h.ClaimService.RequestProof(claimID, actorName(c))
	if err != nil {
		respondClaimTransitionError(c, err, nil, "error.claim_update_failed")
		return
	}

	response.Success(c, claim)
}

// VerifyClaim 核验认领并固化费用
func (h *Handler) VerifyClaim(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}

	claim, err := h.ClaimService.Verify(claimID, actorName(c))
	if err != nil {
		respondClaimTransitionError(c, err, []mappedHandlerError{
			{target: service.ErrItemNotFound, code: response.CodeNotFound, key: "error.item_not_found"},
		}, "error.claim_update_failed")
		return
	}

	response.Success(c, claim)
}

// RejectClaim 驳回认领
func (h *Handler) RejectClaim(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}

	var req RejectClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.rejection_reason_required", err)
		return
	}

	claim, err := h.ClaimService.Reject(claimID, actorName(c), strings.TrimSpace(req.Reason))
	if err != nil {
		respondClaimTransitionError(c, err, []mappedHandlerError{
			{target: service.ErrRejectionReasonRequired, code: response.CodeBadRequest, key: "error.rejection_reason_required"},
		}, "error.claim_update_failed")
		return
	}

	response.Success(c, claim)
}

// PrepareHandover 支付后准备交接：就地到站或创建调拨
func (h *Handler) PrepareHandover(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}

	var req PrepareHandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	claim, transfer, err := h.ClaimService.PrepareHandover(claimID, req.PickupLocationID, actorName(c))
	if err != nil {
		respondClaimTransitionError(c, err, prepareHandoverErrorRules, "error.claim_update_failed")
		return
	}

	response.Success(c, gin.H{
		"claim":    claim,
		"transfer": transfer,
	})
}

func parseClaimID(c *gin.Context) (uint, bool) {
	claimID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || claimID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(claimID), true
}
