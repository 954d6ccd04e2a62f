package models

import (
	"time"

	"gorm.io/gorm"
)

// StorageLocation 存储/取件站点（按体积档位分段容量）
type StorageLocation struct {
	ID             uint           `gorm:"primarykey" json:"id"`                        // 主键
	Name           string         `gorm:"type:varchar(128);not null" json:"name"`      // 站点名称
	Address        string         `gorm:"type:varchar(255)" json:"address"`            // 站点地址
	IsPickupSite   bool           `gorm:"not null;default:false" json:"is_pickup_site"` // 是否对外提供取件
	CapacitySmall  int            `gorm:"not null;default:0" json:"capacity_small"`    // 小件容量上限
	CapacityMedium int            `gorm:"not null;default:0" json:"capacity_medium"`   // 中件容量上限
	CapacityLarge  int            `gorm:"not null;default:0" json:"capacity_large"`    // 大件容量上限
	UsedSmall      int            `gorm:"not null;default:0" json:"used_small"`        // 小件已占用
	UsedMedium     int            `gorm:"not null;default:0" json:"used_medium"`       // 中件已占用
	UsedLarge      int            `gorm:"not null;default:0" json:"used_large"`        // 大件已占用
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (StorageLocation) TableName() string {
	return "storage_locations"
}

// HasCapacity 判断指定体积档位是否仍有剩余容量
func (l *StorageLocation) HasCapacity(size string) bool {
	switch size {
	case "small":
		return l.UsedSmall < l.CapacitySmall
	case "medium":
		return l.UsedMedium < l.CapacityMedium
	case "large":
		return l.UsedLarge < l.CapacityLarge
	default:
		return false
	}
}
