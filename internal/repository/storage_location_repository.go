package repository

import (
	"errors"

	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// StorageLocationRepository 存储点数据访问接口
type StorageLocationRepository interface {
	Create(location *models.StorageLocation) error
	GetByID(id uint) (*models.StorageLocation, error)
	ListPickupSites() ([]models.StorageLocation, error)
	ListAll() ([]models.StorageLocation, error)
	AdjustUsage(id uint, size string, delta int) error
	WithTx(tx *gorm.DB) *GormStorageLocationRepository
}

// GormStorageLocationRepository GORM 实现
type GormStorageLocationRepository struct {
	db *gorm.DB
}

// NewStorageLocationRepository 创建存储点仓库
func NewStorageLocationRepository(db *gorm.DB) *GormStorageLocationRepository {
	return &GormStorageLocationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStorageLocationRepository) WithTx(tx *gorm.DB) *GormStorageLocationRepository {
	if tx == nil {
		return r
	}
	return &GormStorageLocationRepository{db: tx}
}

// Create 创建存储点
func (r *GormStorageLocationRepository) Create(location *models.StorageLocation) error {
	return r.db.Create(location).Error
}

// GetByID 根据 ID 获取存储点
func (r *GormStorageLocationRepository) GetByID(id uint) (*models.StorageLocation, error) {
	var location models.StorageLocation
	if err := r.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// ListPickupSites 获取对外提供取件的站点列表
func (r *GormStorageLocationRepository) ListPickupSites() ([]models.StorageLocation, error) {
	var locations []models.StorageLocation
	if err := r.db.Where("is_pickup_site = ?", true).Order("id asc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// ListAll 获取全部存储点
func (r *GormStorageLocationRepository) ListAll() ([]models.StorageLocation, error) {
	var locations []models.StorageLocation
	if err := r.db.Order("id asc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// AdjustUsage 调整指定体积档位的占用计数
func (r *GormStorageLocationRepository) AdjustUsage(id uint, size string, delta int) error {
	var column string
	switch size {
	case "small":
		column = "used_small"
	case "medium":
		column = "used_medium"
	case "large":
		column = "used_large"
	default:
		return errors.New("unknown item size: " + size)
	}
	return r.db.Model(&models.StorageLocation{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}
