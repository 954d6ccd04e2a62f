package repository

import (
	"errors"

	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// PaymentIntentRepository 支付意向数据访问接口
type PaymentIntentRepository interface {
	Create(intent *models.PaymentIntent) error
	GetByID(id uint) (*models.PaymentIntent, error)
	GetByIdempotencyKey(key string) (*models.PaymentIntent, error)
	GetByGatewayIntentID(gatewayIntentID string) (*models.PaymentIntent, error)
	Delete(id uint) error
	UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error)
	WithTx(tx *gorm.DB) *GormPaymentIntentRepository
}

// GormPaymentIntentRepository GORM 实现
type GormPaymentIntentRepository struct {
	db *gorm.DB
}

// NewPaymentIntentRepository 创建支付意向仓库
func NewPaymentIntentRepository(db *gorm.DB) *GormPaymentIntentRepository {
	return &GormPaymentIntentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentIntentRepository) WithTx(tx *gorm.DB) *GormPaymentIntentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentIntentRepository{db: tx}
}

// Create 创建支付意向（幂等键唯一约束在此生效）
func (r *GormPaymentIntentRepository) Create(intent *models.PaymentIntent) error {
	return r.db.Create(intent).Error
}

// GetByID 根据 ID 获取支付意向
func (r *GormPaymentIntentRepository) GetByID(id uint) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := r.db.First(&intent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

// GetByIdempotencyKey 根据幂等键获取支付意向
func (r *GormPaymentIntentRepository) GetByIdempotencyKey(key string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := r.db.Where("idempotency_key = ?", key).First(&intent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

// GetByGatewayIntentID 根据网关意向 ID 获取支付意向
func (r *GormPaymentIntentRepository) GetByGatewayIntentID(gatewayIntentID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := r.db.Where("gateway_intent_id = ?", gatewayIntentID).First(&intent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

// Delete 删除支付意向（网关调用失败时释放幂等键占位）
func (r *GormPaymentIntentRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.PaymentIntent{}, id).Error
}

// UpdateWithVersion 按版本号条件更新（乐观锁），返回是否命中。
func (r *GormPaymentIntentRepository) UpdateWithVersion(id uint, version uint, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["version"] = gorm.Expr("version + 1")
	result := r.db.Model(&models.PaymentIntent{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
