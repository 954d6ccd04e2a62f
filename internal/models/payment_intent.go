package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentIntent 支付意向记录（幂等键占位与网关意向映射）
type PaymentIntent struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	IdempotencyKey  string         `gorm:"type:varchar(128);uniqueIndex;not null" json:"idempotency_key"` // 幂等键（唯一约束即互斥闸门）
	ClaimID         uint           `gorm:"index;not null" json:"claim_id"`                                // 认领ID
	Status          string         `gorm:"index;not null" json:"status"`                                  // 意向状态（reserved/created/succeeded）
	HandlingFee     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"handling_fee"`     // 固定手续费
	StorageFee      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"storage_fee"`      // 仓储费
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 应付总额
	DaysStored      int            `gorm:"not null;default:0" json:"days_stored"`                         // 计费仓储天数
	Currency        string         `gorm:"type:varchar(8)" json:"currency"`                               // 币种
	GatewayIntentID string         `gorm:"type:varchar(128);index" json:"gateway_intent_id,omitempty"`    // 网关意向ID
	ClientSecret    string         `gorm:"type:varchar(255)" json:"client_secret,omitempty"`              // 客户端支付凭据
	Version         uint           `gorm:"not null;default:0" json:"version"`                             // 乐观锁版本号
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (PaymentIntent) TableName() string {
	return "payment_intents"
}
