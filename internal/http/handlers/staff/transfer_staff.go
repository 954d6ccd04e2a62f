package staff

import (
	"strconv"
	"strings"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/http/handlers/shared"
	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"
	"github.com/taniyakamboj15/lostandfound-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateTransferStatusRequest 调拨状态更新请求
type UpdateTransferStatusRequest struct {
	Status           string `json:"status" binding:"required"`
	CarrierInfo      string `json:"carrier_info"`
	EstimatedArrival string `json:"estimated_arrival"` // RFC3339
	Notes            string `json:"notes"`
}

// GetTransfer 获取调拨详情
func (h *Handler) GetTransfer(c *gin.Context) {
	transferID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || transferID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	transfer, err := h.TransferService.Get(uint(transferID))
	if err != nil {
		respondTransferUpdateError(c, err)
		return
	}

	response.Success(c, transfer)
}

// ListTransfers 调拨列表
func (h *Handler) ListTransfers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	var claimID uint
	if raw := strings.TrimSpace(c.Query("claim_id")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			claimID = uint(id)
		}
	}

	transfers, total, err := h.TransferService.List(repository.TransferListFilter{
		Page:     page,
		PageSize: pageSize,
		ClaimID:  claimID,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.transfer_update_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, transfers, pagination)
}

// UpdateTransferStatus 推进调拨状态
func (h *Handler) UpdateTransferStatus(c *gin.Context) {
	transferID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || transferID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req UpdateTransferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var estimatedArrival *time.Time
	if raw := strings.TrimSpace(req.EstimatedArrival); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		estimatedArrival = &parsed
	}

	transfer, err := h.TransferService.UpdateStatus(uint(transferID), service.UpdateStatusInput{
		Status:           req.Status,
		CarrierInfo:      strings.TrimSpace(req.CarrierInfo),
		EstimatedArrival: estimatedArrival,
		Notes:            strings.TrimSpace(req.Notes),
		Actor:            actorName(c),
	})
	if err != nil {
		respondTransferUpdateError(c, err)
		return
	}

	response.Success(c, transfer)
}
