package models

import "time"

// ClaimTimelineEntry 认领状态时间线记录（仅追加，不可修改）
type ClaimTimelineEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	ClaimID   uint      `gorm:"index;not null" json:"claim_id"`    // 认领ID
	Action    string    `gorm:"type:varchar(64)" json:"action"`    // 动作标识
	Actor     string    `gorm:"type:varchar(64)" json:"actor"`     // 操作者
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`  // 附加说明
	CreatedAt time.Time `gorm:"index" json:"created_at"`           // 记录时间
}

// TableName 指定表名
func (ClaimTimelineEntry) TableName() string {
	return "claim_timeline_entries"
}
