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

// VerifyPickupRequest 核销取件码请求
// reference_code 接受二维码载荷或人工录入的 8 位取件码。
type VerifyPickupRequest struct {
	ReferenceCode string `json:"reference_code" binding:"required"`
}

// CompletePickupRequest 完成取件交付请求
type CompletePickupRequest struct {
	ReferenceCode string `json:"reference_code" binding:"required"`
	Notes         string `json:"notes"`
}

// ListPickups 取件预约列表
func (h *Handler) ListPickups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	var locationID uint
	if raw := strings.TrimSpace(c.Query("location_id")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			locationID = uint(id)
		}
	}

	filter := repository.PickupListFilter{
		Page:       page,
		PageSize:   pageSize,
		LocationID: locationID,
		PickupDate: strings.TrimSpace(c.Query("date")),
	}
	if raw := strings.TrimSpace(c.Query("completed")); raw != "" {
		completed := raw == "true" || raw == "1"
		filter.Completed = &completed
	}

	pickups, total, err := h.PickupService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.pickup_list_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, pickups, pagination)
}

// VerifyPickup 核销取件码（扫码或人工录入）
func (h *Handler) VerifyPickup(c *gin.Context) {
	var req VerifyPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.reference_code_invalid", err)
		return
	}

	pickup, err := h.PickupService.Verify(strings.TrimSpace(req.ReferenceCode))
	if err != nil {
		respondPickupVerifyError(c, err)
		return
	}

	requestLog(c).Infow("pickup_code_verified",
		"pickup_id", pickup.ID,
		"claim_id", pickup.ClaimID,
	)
	response.Success(c, pickup)
}

// CompletePickup 完成取件交付，同时将认领置为已归还
func (h *Handler) CompletePickup(c *gin.Context) {
	pickupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || pickupID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req CompletePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.reference_code_invalid", err)
		return
	}

	pickup, err := h.PickupService.Complete(service.CompleteInput{
		PickupID:      uint(pickupID),
		ReferenceCode: strings.TrimSpace(req.ReferenceCode),
		Notes:         strings.TrimSpace(req.Notes),
		CompletedBy:   actorName(c),
	})
	if err != nil {
		respondPickupCompleteError(c, err)
		return
	}

	response.Success(c, pickup)
}
