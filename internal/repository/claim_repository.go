package repository

import (
	"errors"

	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// ClaimRepository 认领数据访问接口
type ClaimRepository interface {
	Create(claim *models.Claim) error
	GetByID(id uint) (*models.Claim, error)
	GetByIDWithTimeline(id uint) (*models.Claim, error)
	List(filter ClaimListFilter) ([]models.Claim, int64, error)
	UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error)
	WithTx(tx *gorm.DB) *GormClaimRepository
}

// GormClaimRepository GORM 实现
type GormClaimRepository struct {
	db *gorm.DB
}

// NewClaimRepository 创建认领仓库
func NewClaimRepository(db *gorm.DB) *GormClaimRepository {
	return &GormClaimRepository{db: db}
}

// WithTx 绑定事务
func (r *GormClaimRepository) WithTx(tx *gorm.DB) *GormClaimRepository {
	if tx == nil {
		return r
	}
	return &GormClaimRepository{db: tx}
}

// Create 创建认领
func (r *GormClaimRepository) Create(claim *models.Claim) error {
	return r.db.Create(claim).Error
}

// GetByID 根据 ID 获取认领
func (r *GormClaimRepository) GetByID(id uint) (*models.Claim, error) {
	var claim models.Claim
	if err := r.db.First(&claim, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

// GetByIDWithTimeline 根据 ID 获取认领及其时间线
func (r *GormClaimRepository) GetByIDWithTimeline(id uint) (*models.Claim, error) {
	var claim models.Claim
	query := r.db.Preload("Timeline", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
	if err := query.First(&claim, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

// List 认领列表
func (r *GormClaimRepository) List(filter ClaimListFilter) ([]models.Claim, int64, error) {
	var claims []models.Claim
	query := r.db.Model(&models.Claim{})

	if filter.ClaimantID != 0 {
		query = query.Where("claimant_id = ?", filter.ClaimantID)
	}
	if filter.ItemID != 0 {
		query = query.Where("item_id = ?", filter.ItemID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&claims).Error; err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

// UpdateWithVersion 按版本号条件更新（乐观锁），返回是否命中。
func (r *GormClaimRepository) UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["version"] = gorm.Expr("version + 1")
	result := r.db.Model(&models.Claim{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
