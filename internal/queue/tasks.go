package queue

import (
	"encoding/json"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskClaimStatusNotify 认领状态通知任务
	TaskClaimStatusNotify = constants.TaskClaimStatusNotify
	// TaskPickupReminder 取件提醒任务
	TaskPickupReminder = constants.TaskPickupReminder
)

// ClaimStatusNotifyPayload 认领状态通知任务载荷
type ClaimStatusNotifyPayload struct {
	ClaimID    uint   `json:"claim_id"`
	ClaimantID uint   `json:"claimant_id"`
	Status     string `json:"status"`
	Event      string `json:"event,omitempty"`
}

// PickupReminderPayload 取件提醒任务载荷
type PickupReminderPayload struct {
	PickupID   uint   `json:"pickup_id"`
	ClaimID    uint   `json:"claim_id"`
	ClaimantID uint   `json:"claimant_id"`
	PickupDate string `json:"pickup_date"`
	StartTime  string `json:"start_time"`
}

// NewClaimStatusNotifyTask 创建认领状态通知任务
func NewClaimStatusNotifyTask(payload ClaimStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskClaimStatusNotify, body), nil
}

// NewPickupReminderTask 创建取件提醒任务
func NewPickupReminderTask(payload PickupReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPickupReminder, body), nil
}
