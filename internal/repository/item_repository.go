package repository

import (
	"errors"

	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// ItemRepository 失物数据访问接口
type ItemRepository interface {
	Create(item *models.Item) error
	GetByID(id uint) (*models.Item, error)
	List(filter ItemListFilter) ([]models.Item, int64, error)
	UpdateStorageLocation(id uint, locationID uint) error
	WithTx(tx *gorm.DB) *GormItemRepository
}

// GormItemRepository GORM 实现
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建失物仓库
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormItemRepository) WithTx(tx *gorm.DB) *GormItemRepository {
	if tx == nil {
		return r
	}
	return &GormItemRepository{db: tx}
}

// Create 创建失物记录
func (r *GormItemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// GetByID 根据 ID 获取失物记录
func (r *GormItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List 按条件分页查询失物，关键字同时匹配文本列与扩展属性
func (r *GormItemRepository) List(filter ItemListFilter) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{})
	if filter.StorageLocationID > 0 {
		query = query.Where("storage_location_id = ?", filter.StorageLocationID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Size != "" {
		query = query.Where("size = ?", filter.Size)
	}
	if search := filter.Search; search != "" {
		condition, argCount := buildItemSearchCondition(r.db,
			[]string{"name", "description", "found_location"},
			[]string{"attributes"},
		)
		like := "%" + search + "%"
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("date_found desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStorageLocation 更新失物当前所在存储点（调拨签收时调用）
func (r *GormItemRepository) UpdateStorageLocation(id uint, locationID uint) error {
	return r.db.Model(&models.Item{}).
		Where("id = ?", id).
		Update("storage_location_id", locationID).Error
}
