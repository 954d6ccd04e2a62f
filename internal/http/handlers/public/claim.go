package public

import (
	"strconv"

	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/service"

	"github.com/gin-gonic/gin"
)

// FileClaimRequest 提交认领请求
type FileClaimRequest struct {
	ItemID         uint             `json:"item_id" binding:"required"`
	ClaimantID     uint             `json:"claimant_id" binding:"required"`
	Description    string           `json:"description"`
	ProofDocuments models.JSONArray `json:"proof_documents"`
}

// FileClaim 提交认领
func (h *Handler) FileClaim(c *gin.Context) {
	var req FileClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	claim, err := h.ClaimService.File(service.FileClaimInput{
		ItemID:         req.ItemID,
		ClaimantID:     req.ClaimantID,
		Description:    req.Description,
		ProofDocuments: req.ProofDocuments,
	})
	if err != nil {
		respondClaimError(c, err, "error.claim_create_failed")
		return
	}

	response.Success(c, claim)
}

// GetClaim 获取认领详情（含时间线）
func (h *Handler) GetClaim(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || claimID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	claim, err := h.ClaimService.Get(uint(claimID))
	if err != nil {
		respondClaimError(c, err, "error.claim_fetch_failed")
		return
	}

	response.Success(c, claim)
}
