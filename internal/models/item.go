package models

import (
	"time"

	"gorm.io/gorm"
)

// Item 失物登记记录
type Item struct {
	ID                uint           `gorm:"primarykey" json:"id"`                       // 主键
	Name              string         `gorm:"type:varchar(128);not null" json:"name"`     // 物品名称
	Description       string         `gorm:"type:text" json:"description,omitempty"`     // 物品描述
	Category          string         `gorm:"type:varchar(64);index" json:"category"`     // 物品类别
	Size              string         `gorm:"type:varchar(16);not null" json:"size"`      // 体积档位（small/medium/large）
	DateFound         time.Time      `gorm:"index;not null" json:"date_found"`           // 拾获日期（仓储计费起点）
	FoundLocation     string         `gorm:"type:varchar(255)" json:"found_location"`    // 拾获地点描述
	StorageLocationID uint           `gorm:"index;not null" json:"storage_location_id"`  // 当前存储点ID
	Attributes        JSON           `gorm:"type:json" json:"attributes,omitempty"`      // 扩展属性
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                    // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}
