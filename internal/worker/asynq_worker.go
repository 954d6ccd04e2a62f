package worker

import (
	"context"
	"encoding/json"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/provider"
	"github.com/taniyakamboj15/lostandfound-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskClaimStatusNotify, c.handleClaimStatusNotify)
	mux.HandleFunc(queue.TaskPickupReminder, c.handlePickupReminder)
}

// handleClaimStatusNotify 落地认领状态通知记录，实际投递由外部渠道轮询完成。
func (c *Consumer) handleClaimStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_claim_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ClaimStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_claim_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.ClaimID == 0 {
		logger.Debugw("worker_claim_status_notify_skip_invalid_payload", "claim_id", payload.ClaimID)
		return nil
	}
	claim, err := c.ClaimRepo.GetByID(payload.ClaimID)
	if err != nil {
		logger.Warnw("worker_claim_status_notify_fetch_failed", "claim_id", payload.ClaimID, "error", err)
		return err
	}
	if claim == nil {
		logger.Debugw("worker_claim_status_notify_skip_claim_not_found", "claim_id", payload.ClaimID)
		return nil
	}
	event := payload.Event
	if event == "" {
		event = constants.NotificationEventClaimStatusChanged
	}
	notification := &models.Notification{
		ClaimID:   claim.ID,
		Recipient: claim.ClaimantID,
		Event:     event,
		Payload: models.JSON{
			"status":         payload.Status,
			"payment_status": claim.PaymentStatus,
		},
	}
	if err := c.NotificationRepo.Create(notification); err != nil {
		logger.Warnw("worker_claim_status_notify_store_failed", "claim_id", claim.ID, "error", err)
		return err
	}
	logger.Infow("worker_claim_status_notified",
		"claim_id", claim.ID,
		"recipient", claim.ClaimantID,
		"status", payload.Status,
	)
	return nil
}

// handlePickupReminder 取件前落地提醒通知记录。
func (c *Consumer) handlePickupReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_pickup_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PickupReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_pickup_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.PickupID == 0 {
		logger.Debugw("worker_pickup_reminder_skip_invalid_payload", "pickup_id", payload.PickupID)
		return nil
	}
	pickup, err := c.PickupRepo.GetByID(payload.PickupID)
	if err != nil {
		logger.Warnw("worker_pickup_reminder_fetch_failed", "pickup_id", payload.PickupID, "error", err)
		return err
	}
	if pickup == nil {
		logger.Debugw("worker_pickup_reminder_skip_pickup_not_found", "pickup_id", payload.PickupID)
		return nil
	}
	if pickup.IsCompleted {
		logger.Debugw("worker_pickup_reminder_skip_completed", "pickup_id", pickup.ID)
		return nil
	}
	notification := &models.Notification{
		ClaimID:   pickup.ClaimID,
		Recipient: pickup.ClaimantID,
		Event:     constants.NotificationEventPickupReminder,
		Payload: models.JSON{
			"pickup_id":   pickup.ID,
			"pickup_date": pickup.PickupDate,
			"start_time":  pickup.StartTime,
		},
	}
	if err := c.NotificationRepo.Create(notification); err != nil {
		logger.Warnw("worker_pickup_reminder_store_failed", "pickup_id", pickup.ID, "error", err)
		return err
	}
	logger.Infow("worker_pickup_reminder_sent",
		"pickup_id", pickup.ID,
		"claim_id", pickup.ClaimID,
		"pickup_date", pickup.PickupDate,
	)
	return nil
}
