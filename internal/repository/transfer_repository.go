package repository

import (
	"errors"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// TransferRepository 调拨数据访问接口
type TransferRepository interface {
	Create(transfer *models.Transfer) error
	GetByID(id uint) (*models.Transfer, error)
	GetActiveByClaim(claimID uint) (*models.Transfer, error)
	List(filter TransferListFilter) ([]models.Transfer, int64, error)
	UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error)
	WithTx(tx *gorm.DB) *GormTransferRepository
}

// GormTransferRepository GORM 实现
type GormTransferRepository struct {
	db *gorm.DB
}

// NewTransferRepository 创建调拨仓库
func NewTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTransferRepository) WithTx(tx *gorm.DB) *GormTransferRepository {
	if tx == nil {
		return r
	}
	return &GormTransferRepository{db: tx}
}

// Create 创建调拨记录
func (r *GormTransferRepository) Create(transfer *models.Transfer) error {
	return r.db.Create(transfer).Error
}

// GetByID 根据 ID 获取调拨记录
func (r *GormTransferRepository) GetByID(id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := r.db.First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transfer, nil
}

// GetActiveByClaim 获取认领当前未终态的调拨记录（同一认领至多一条）
func (r *GormTransferRepository) GetActiveByClaim(claimID uint) (*models.Transfer, error) {
	var transfer models.Transfer
	err := r.db.
		Where("claim_id = ? AND status NOT IN ?", claimID, []string{
			constants.TransferStatusArrived,
			constants.TransferStatusCancelled,
		}).
		Order("id desc").
		First(&transfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transfer, nil
}

// List 调拨列表
func (r *GormTransferRepository) List(filter TransferListFilter) ([]models.Transfer, int64, error) {
	var transfers []models.Transfer
	query := r.db.Model(&models.Transfer{})

	if filter.ClaimID != 0 {
		query = query.Where("claim_id = ?", filter.ClaimID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FromLocationID != 0 {
		query = query.Where("from_location_id = ?", filter.FromLocationID)
	}
	if filter.ToLocationID != 0 {
		query = query.Where("to_location_id = ?", filter.ToLocationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&transfers).Error; err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}

// UpdateWithVersion 按版本号条件更新（乐观锁），返回是否命中。
func (r *GormTransferRepository) UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["version"] = gorm.Expr("version + 1")
	result := r.db.Model(&models.Transfer{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
