package public

import (
	"strconv"
	"strings"

	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"
	"github.com/taniyakamboj15/lostandfound-api/internal/service"

	"github.com/gin-gonic/gin"
)

// BookPickupRequest 预约取件请求
type BookPickupRequest struct {
	ClaimID    uint   `json:"claim_id" binding:"required"`
	PickupDate string `json:"pickup_date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
}

// GetAvailableSlots 查询指定取件点与日期的可约时段
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	locationID, err := strconv.ParseUint(strings.TrimSpace(c.Query("location_id")), 10, 64)
	if err != nil || locationID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		respondError(c, response.CodeBadRequest, "error.date_invalid", nil)
		return
	}

	slots, err := h.PickupService.GetAvailableSlots(c.Request.Context(), uint(locationID), date)
	if err != nil {
		respondWithMappedError(c, err, pickupBookErrorRules, response.CodeInternal, "error.pickup_list_failed")
		return
	}

	response.Success(c, slots)
}

// BookPickup 预约取件
func (h *Handler) BookPickup(c *gin.Context) {
	var req BookPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	pickup, err := h.PickupService.Book(c.Request.Context(), service.BookInput{
		ClaimID:    req.ClaimID,
		PickupDate: strings.TrimSpace(req.PickupDate),
		StartTime:  strings.TrimSpace(req.StartTime),
		Actor:      "claimant",
	})
	if err != nil {
		respondPickupBookError(c, err)
		return
	}

	response.Success(c, pickup)
}

// GetPickup 获取取件预约详情
func (h *Handler) GetPickup(c *gin.Context) {
	pickupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || pickupID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	pickup, err := h.PickupService.Get(uint(pickupID))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrPickupNotFound, code: response.CodeNotFound, key: "error.pickup_not_found"},
		}, response.CodeInternal, "error.claim_fetch_failed")
		return
	}

	response.Success(c, pickup)
}
