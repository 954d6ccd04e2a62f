package models

import (
	"time"

	"gorm.io/gorm"
)

// Pickup 取件预约记录
type Pickup struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                     // 主键
	ClaimID       uint           `gorm:"index;not null" json:"claim_id"`                           // 认领ID
	ItemID        uint           `gorm:"index;not null" json:"item_id"`                            // 物品ID
	ClaimantID    uint           `gorm:"index;not null" json:"claimant_id"`                        // 认领人ID
	LocationID    uint           `gorm:"index;not null" json:"location_id"`                        // 取件点ID
	PickupDate    string         `gorm:"type:varchar(10);index" json:"pickup_date"`                // 取件日期 YYYY-MM-DD
	StartTime     string         `gorm:"type:varchar(5)" json:"start_time"`                        // 时段开始 HH:MM
	EndTime       string         `gorm:"type:varchar(5)" json:"end_time"`                          // 时段结束 HH:MM
	ReferenceCode string         `gorm:"type:varchar(8);uniqueIndex;not null" json:"reference_code"` // 取件码（8位大写字母数字）
	QRCode        string         `gorm:"type:text" json:"qr_code"`                                 // 二维码载荷（base64 JSON）
	IsVerified    bool           `gorm:"not null;default:false" json:"is_verified"`                // 是否已核销
	VerifiedAt    *time.Time     `json:"verified_at,omitempty"`                                    // 核销时间
	IsCompleted   bool           `gorm:"not null;default:false" json:"is_completed"`               // 是否已交付
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`                                   // 交付时间
	CompletedBy   string         `gorm:"type:varchar(64)" json:"completed_by,omitempty"`           // 交付经办人
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`                         // 备注
	Version       uint           `gorm:"not null;default:0" json:"version"`                        // 乐观锁版本号
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (Pickup) TableName() string {
	return "pickups"
}
