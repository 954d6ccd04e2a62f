package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 通知记录（由异步任务写入，实际投递由外部渠道完成）
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	ClaimID   uint           `gorm:"index;not null" json:"claim_id"`          // 认领ID
	Recipient uint           `gorm:"index;not null" json:"recipient"`         // 接收人ID
	Event     string         `gorm:"type:varchar(64);index" json:"event"`     // 事件标识
	Payload   JSON           `gorm:"type:json" json:"payload,omitempty"`      // 事件载荷
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                 // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
