package staff

import (
	"strconv"
	"strings"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/http/handlers/shared"
	"github.com/taniyakamboj15/lostandfound-api/internal/http/response"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// RegisterItemRequest 失物登记请求
type RegisterItemRequest struct {
	Name              string      `json:"name" binding:"required"`
	Description       string      `json:"description"`
	Category          string      `json:"category"`
	Size              string      `json:"size" binding:"required,oneof=small medium large"`
	DateFound         string      `json:"date_found" binding:"required"`
	FoundLocation     string      `json:"found_location"`
	StorageLocationID uint        `json:"storage_location_id" binding:"required"`
	Attributes        models.JSON `json:"attributes"`
}

// RegisterItem 登记拾获物品
func (h *Handler) RegisterItem(c *gin.Context) {
	var req RegisterItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	dateFound, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateFound))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	location, err := h.StorageLocationRepo.GetByID(req.StorageLocationID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.item_register_failed", err)
		return
	}
	if location == nil {
		respondError(c, response.CodeNotFound, "error.storage_location_not_found", nil)
		return
	}

	item := &models.Item{
		Name:              strings.TrimSpace(req.Name),
		Description:       strings.TrimSpace(req.Description),
		Category:          strings.TrimSpace(req.Category),
		Size:              req.Size,
		DateFound:         dateFound,
		FoundLocation:     strings.TrimSpace(req.FoundLocation),
		StorageLocationID: req.StorageLocationID,
		Attributes:        req.Attributes,
	}
	if err := h.ItemRepo.Create(item); err != nil {
		respondError(c, response.CodeInternal, "error.item_register_failed", err)
		return
	}
	response.Success(c, item)
}

// ListItems 失物列表（关键字同时检索文本字段与扩展属性）
func (h *Handler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	var locationID uint
	if raw := strings.TrimSpace(c.Query("location_id")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			locationID = uint(id)
		}
	}

	items, total, err := h.ItemRepo.List(repository.ItemListFilter{
		Page:              page,
		PageSize:          pageSize,
		StorageLocationID: locationID,
		Category:          strings.TrimSpace(c.Query("category")),
		Size:              strings.TrimSpace(c.Query("size")),
		Search:            strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.item_list_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, items, pagination)
}
