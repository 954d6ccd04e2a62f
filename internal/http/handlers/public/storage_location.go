package public

import (
	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListPickupSites 列出可作为取件点的存储位置
func (h *Handler) ListPickupSites(c *gin.Context) {
	locations, err := h.StorageLocationRepo.ListPickupSites()
	if err != nil {
		respondError(c, response.CodeInternal, "error.storage_location_list_failed", err)
		return
	}

	response.Success(c, locations)
}
