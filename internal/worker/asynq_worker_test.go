package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/provider"
	"github.com/taniyakamboj15/lostandfound-api/internal/queue"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Claim{},
		&models.Pickup{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	container := &provider.Container{
		ClaimRepo:        repository.NewClaimRepository(db),
		PickupRepo:       repository.NewPickupRepository(db),
		NotificationRepo: repository.NewNotificationRepository(db),
	}
	return NewConsumer(container), db
}

func mustTask(t *testing.T, taskType string, payload interface{}) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(taskType, body)
}

func TestHandleClaimStatusNotifyStoresNotification(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	claim := models.Claim{
		ID:            1,
		ItemID:        1,
		ClaimantID:    7,
		Status:        constants.ClaimStatusVerified,
		PaymentStatus: constants.ClaimPaymentStatusPending,
	}
	if err := db.Create(&claim).Error; err != nil {
		t.Fatalf("create claim failed: %v", err)
	}

	task := mustTask(t, queue.TaskClaimStatusNotify, queue.ClaimStatusNotifyPayload{
		ClaimID:    claim.ID,
		ClaimantID: claim.ClaimantID,
		Status:     constants.ClaimStatusVerified,
	})
	if err := consumer.handleClaimStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("handle claim status notify failed: %v", err)
	}

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("notifications want 1 got %d", len(notifications))
	}
	if notifications[0].Recipient != claim.ClaimantID {
		t.Fatalf("recipient want %d got %d", claim.ClaimantID, notifications[0].Recipient)
	}
	if notifications[0].Event != constants.NotificationEventClaimStatusChanged {
		t.Fatalf("event want %s got %s", constants.NotificationEventClaimStatusChanged, notifications[0].Event)
	}
}

func TestHandleClaimStatusNotifySkipsUnknownClaim(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	task := mustTask(t, queue.TaskClaimStatusNotify, queue.ClaimStatusNotifyPayload{
		ClaimID: 99,
		Status:  constants.ClaimStatusVerified,
	})
	if err := consumer.handleClaimStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("unknown claim should be skipped, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count notifications failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("notifications want 0 got %d", count)
	}
}

func TestHandlePickupReminder(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	pickup := models.Pickup{
		ID:            1,
		ClaimID:       1,
		ItemID:        1,
		ClaimantID:    7,
		LocationID:    2,
		PickupDate:    "2026-09-01",
		StartTime:     "10:00",
		EndTime:       "11:00",
		ReferenceCode: "AB12CD34",
	}
	if err := db.Create(&pickup).Error; err != nil {
		t.Fatalf("create pickup failed: %v", err)
	}

	task := mustTask(t, queue.TaskPickupReminder, queue.PickupReminderPayload{
		PickupID:   pickup.ID,
		ClaimID:    pickup.ClaimID,
		ClaimantID: pickup.ClaimantID,
		PickupDate: pickup.PickupDate,
		StartTime:  pickup.StartTime,
	})
	if err := consumer.handlePickupReminder(context.Background(), task); err != nil {
		t.Fatalf("handle pickup reminder failed: %v", err)
	}

	var notifications []models.Notification
	if err := db.Where("event = ?", constants.NotificationEventPickupReminder).Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("reminder notifications want 1 got %d", len(notifications))
	}
}

func TestHandlePickupReminderSkipsCompleted(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	now := time.Now()
	pickup := models.Pickup{
		ID:            1,
		ClaimID:       1,
		ItemID:        1,
		ClaimantID:    7,
		LocationID:    2,
		PickupDate:    "2026-09-01",
		StartTime:     "10:00",
		EndTime:       "11:00",
		ReferenceCode: "AB12CD34",
		IsVerified:    true,
		VerifiedAt:    &now,
		IsCompleted:   true,
		CompletedAt:   &now,
	}
	if err := db.Create(&pickup).Error; err != nil {
		t.Fatalf("create pickup failed: %v", err)
	}

	task := mustTask(t, queue.TaskPickupReminder, queue.PickupReminderPayload{PickupID: pickup.ID})
	if err := consumer.handlePickupReminder(context.Background(), task); err != nil {
		t.Fatalf("completed pickup should be skipped, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count notifications failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("notifications want 0 got %d", count)
	}
}
