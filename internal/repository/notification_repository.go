package repository

import (
	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository 通知记录数据访问接口
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByClaim(claimID uint) ([]models.Notification, error)
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create 写入通知记录
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListByClaim 按认领 ID 获取通知记录
func (r *GormNotificationRepository) ListByClaim(claimID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Where("claim_id = ?", claimID).Order("id desc").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
