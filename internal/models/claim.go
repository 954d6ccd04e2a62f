package models

import (
	"time"

	"gorm.io/gorm"
)

// Claim 认领表
type Claim struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ItemID           uint           `gorm:"index;not null" json:"item_id"`                             // 物品ID
	ClaimantID       uint           `gorm:"index;not null" json:"claimant_id"`                         // 认领人ID
	Status           string         `gorm:"index;not null" json:"status"`                              // 认领状态
	Description      string         `gorm:"type:text" json:"description"`                              // 认领说明
	ProofDocuments   JSONArray      `gorm:"type:json" json:"proof_documents,omitempty"`                // 凭证附件元信息
	RejectionReason  string         `gorm:"type:text" json:"rejection_reason,omitempty"`               // 驳回原因（仅驳回时有值）
	PaymentStatus    string         `gorm:"index;not null" json:"payment_status"`                      // 支付状态（pending/paid/failed）
	HandlingFee      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"handling_fee"` // 固定手续费
	StorageFee       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"storage_fee"`  // 仓储费
	TotalAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 应付总额
	DaysStored       int            `gorm:"not null;default:0" json:"days_stored"`                     // 计费仓储天数
	Currency         string         `gorm:"type:varchar(8)" json:"currency,omitempty"`                 // 币种
	PaidAt           *time.Time     `gorm:"index" json:"paid_at,omitempty"`                            // 支付时间
	TransactionID    string         `gorm:"type:varchar(128);index" json:"transaction_id,omitempty"`   // 网关交易号
	PickupLocationID *uint          `gorm:"index" json:"pickup_location_id,omitempty"`                 // 选定取件点ID
	VerifiedBy       string         `gorm:"type:varchar(64)" json:"verified_by,omitempty"`             // 核验操作者
	VerifiedAt       *time.Time     `gorm:"index" json:"verified_at,omitempty"`                        // 核验时间
	Version          uint           `gorm:"not null;default:0" json:"version"`                         // 乐观锁版本号
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Timeline []ClaimTimelineEntry `gorm:"foreignKey:ClaimID" json:"timeline,omitempty"` // 状态时间线
}

// TableName 指定表名
func (Claim) TableName() string {
	return "claims"
}
