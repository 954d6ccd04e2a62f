package repository

import (
	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// ClaimTimelineRepository 认领时间线数据访问接口（仅追加）
type ClaimTimelineRepository interface {
	Append(entry *models.ClaimTimelineEntry) error
	ListByClaim(claimID uint) ([]models.ClaimTimelineEntry, error)
	WithTx(tx *gorm.DB) *GormClaimTimelineRepository
}

// GormClaimTimelineRepository GORM 实现
type GormClaimTimelineRepository struct {
	db *gorm.DB
}

// NewClaimTimelineRepository 创建认领时间线仓库
func NewClaimTimelineRepository(db *gorm.DB) *GormClaimTimelineRepository {
	return &GormClaimTimelineRepository{db: db}
}

// WithTx 绑定事务
func (r *GormClaimTimelineRepository) WithTx(tx *gorm.DB) *GormClaimTimelineRepository {
	if tx == nil {
		return r
	}
	return &GormClaimTimelineRepository{db: tx}
}

// Append 追加时间线记录
func (r *GormClaimTimelineRepository) Append(entry *models.ClaimTimelineEntry) error {
	return r.db.Create(entry).Error
}

// ListByClaim 按认领 ID 获取时间线（按写入顺序）
func (r *GormClaimTimelineRepository) ListByClaim(claimID uint) ([]models.ClaimTimelineEntry, error) {
	var entries []models.ClaimTimelineEntry
	if err := r.db.Where("claim_id = ?", claimID).Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
