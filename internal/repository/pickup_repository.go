package repository

import (
	"errors"

	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// PickupRepository 取件预约数据访问接口
type PickupRepository interface {
	Create(pickup *models.Pickup) error
	GetByID(id uint) (*models.Pickup, error)
	GetByClaimID(claimID uint) (*models.Pickup, error)
	GetByReferenceCode(code string) (*models.Pickup, error)
	CountBySlot(locationID uint, pickupDate, startTime string) (int64, error)
	List(filter PickupListFilter) ([]models.Pickup, int64, error)
	ListByDate(pickupDate string) ([]models.Pickup, error)
	UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error)
	WithTx(tx *gorm.DB) *GormPickupRepository
}

// GormPickupRepository GORM 实现
type GormPickupRepository struct {
	db *gorm.DB
}

// NewPickupRepository 创建取件预约仓库
func NewPickupRepository(db *gorm.DB) *GormPickupRepository {
	return &GormPickupRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPickupRepository) WithTx(tx *gorm.DB) *GormPickupRepository {
	if tx == nil {
		return r
	}
	return &GormPickupRepository{db: tx}
}

// Create 创建取件预约
func (r *GormPickupRepository) Create(pickup *models.Pickup) error {
	return r.db.Create(pickup).Error
}

// GetByID 根据 ID 获取取件预约
func (r *GormPickupRepository) GetByID(id uint) (*models.Pickup, error) {
	var pickup models.Pickup
	if err := r.db.First(&pickup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pickup, nil
}

// GetByClaimID 根据认领 ID 获取取件预约
func (r *GormPickupRepository) GetByClaimID(claimID uint) (*models.Pickup, error) {
	var pickup models.Pickup
	if err := r.db.Where("claim_id = ?", claimID).Order("id desc").First(&pickup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pickup, nil
}

// GetByReferenceCode 根据取件码获取取件预约
func (r *GormPickupRepository) GetByReferenceCode(code string) (*models.Pickup, error) {
	var pickup models.Pickup
	if err := r.db.Where("reference_code = ?", code).First(&pickup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pickup, nil
}

// CountBySlot 统计某站点某日某时段已有预约数
func (r *GormPickupRepository) CountBySlot(locationID uint, pickupDate, startTime string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Pickup{}).
		Where("location_id = ? AND pickup_date = ? AND start_time = ?", locationID, pickupDate, startTime).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List 取件预约列表
func (r *GormPickupRepository) List(filter PickupListFilter) ([]models.Pickup, int64, error) {
	var pickups []models.Pickup
	query := r.db.Model(&models.Pickup{})

	if filter.ClaimID != 0 {
		query = query.Where("claim_id = ?", filter.ClaimID)
	}
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.PickupDate != "" {
		query = query.Where("pickup_date = ?", filter.PickupDate)
	}
	if filter.Completed != nil {
		query = query.Where("is_completed = ?", *filter.Completed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&pickups).Error; err != nil {
		return nil, 0, err
	}
	return pickups, total, nil
}

// ListByDate 按取件日期获取全部预约（用于时段占用统计与提醒任务）
func (r *GormPickupRepository) ListByDate(pickupDate string) ([]models.Pickup, error) {
	var pickups []models.Pickup
	if err := r.db.Where("pickup_date = ?", pickupDate).Order("start_time asc").Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}

// UpdateWithVersion 按版本号条件更新（乐观锁），返回是否命中。
func (r *GormPickupRepository) UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["version"] = gorm.Expr("version + 1")
	result := r.db.Model(&models.Pickup{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
