package models

import (
	"time"

	"gorm.io/gorm"
)

// Transfer 物品站点间调拨记录
type Transfer struct {
	ID               uint           `gorm:"primarykey" json:"id"`                          // 主键
	ClaimID          uint           `gorm:"index;not null" json:"claim_id"`                // 认领ID
	ItemID           uint           `gorm:"index;not null" json:"item_id"`                 // 物品ID
	FromLocationID   uint           `gorm:"index;not null" json:"from_location_id"`        // 起运存储点ID
	ToLocationID     uint           `gorm:"index;not null" json:"to_location_id"`          // 目的取件点ID
	Status           string         `gorm:"index;not null" json:"status"`                  // 调拨状态
	CarrierInfo      string         `gorm:"type:varchar(255)" json:"carrier_info"`         // 承运信息
	EstimatedArrival *time.Time     `json:"estimated_arrival,omitempty"`                   // 预计到达时间
	ShippedAt        *time.Time     `json:"shipped_at,omitempty"`                          // 发运时间
	ReceivedAt       *time.Time     `json:"received_at,omitempty"`                         // 签收时间
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`              // 备注
	Version          uint           `gorm:"not null;default:0" json:"version"`             // 乐观锁版本号
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Transfer) TableName() string {
	return "transfers"
}
