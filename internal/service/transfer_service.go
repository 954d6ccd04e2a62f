package service

import (
	"errors"
	"strings"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"gorm.io/gorm"
)

// TransferService 调拨服务
type TransferService struct {
	transferRepo repository.TransferRepository
	itemRepo     repository.ItemRepository
	claims       *ClaimService
}

// NewTransferService 创建调拨服务
func NewTransferService(transferRepo repository.TransferRepository, itemRepo repository.ItemRepository, claims *ClaimService) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		itemRepo:     itemRepo,
		claims:       claims,
	}
}

// Get 获取调拨详情
func (s *TransferService) Get(id uint) (*models.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(id)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if transfer == nil {
		return nil, ErrTransferNotFound
	}
	return transfer, nil
}

// List 调拨列表
func (s *TransferService) List(filter repository.TransferListFilter) ([]models.Transfer, int64, error) {
	transfers, total, err := s.transferRepo.List(filter)
	if err != nil {
		return nil, 0, ErrClaimFetchFailed
	}
	return transfers, total, nil
}

// UpdateStatusInput 调拨状态更新输入
type UpdateStatusInput struct {
	Status           string
	CarrierInfo      string
	EstimatedArrival *time.Time
	Notes            string
	Actor            string
}

// UpdateStatus 推进调拨状态，并在同一事务内联动认领状态。
func (s *TransferService) UpdateStatus(transferID uint, input UpdateStatusInput) (*models.Transfer, error) {
	target := strings.TrimSpace(input.Status)
	transfer, err := s.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if transfer == nil {
		return nil, ErrTransferNotFound
	}
	if !validateTransferTransition(transfer.Status, target) {
		return nil, ErrInvalidTransferTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		updates["notes"] = notes
	}

	switch target {
	case constants.TransferStatusInTransit:
		carrier := strings.TrimSpace(input.CarrierInfo)
		if carrier == "" {
			carrier = strings.TrimSpace(transfer.CarrierInfo)
		}
		if carrier == "" {
			return nil, ErrCarrierInfoRequired
		}
		updates["carrier_info"] = carrier
		updates["shipped_at"] = now
		if input.EstimatedArrival != nil {
			updates["estimated_arrival"] = *input.EstimatedArrival
		}
	case constants.TransferStatusArrived:
		updates["received_at"] = now
	}

	actor := actorOrStaff(input.Actor)
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.transferRepo.WithTx(tx).UpdateWithVersion(transfer.ID, transfer.Version, updates)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		switch target {
		case constants.TransferStatusArrived:
			// 签收后物品随之转移到目的站点
			if err := s.itemRepo.WithTx(tx).UpdateStorageLocation(transfer.ItemID, transfer.ToLocationID); err != nil {
				return err
			}
			if _, err := s.claims.applyTransferStatus(tx, transfer.ClaimID, target, actor); err != nil {
				return err
			}
		case constants.TransferStatusRecoveryRequired, constants.TransferStatusInTransit:
			if _, err := s.claims.applyTransferStatus(tx, transfer.ClaimID, target, actor); err != nil {
				return err
			}
		case constants.TransferStatusCancelled:
			// 取消不回退认领状态，记录时间线留待人工重排
			if err := s.claims.timelineRepo.WithTx(tx).Append(&models.ClaimTimelineEntry{
				ClaimID:   transfer.ClaimID,
				Action:    constants.TimelineActionTransferCancelled,
				Actor:     actor,
				Notes:     strings.TrimSpace(input.Notes),
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrConcurrentModification),
			errors.Is(err, ErrClaimNotFound):
			return nil, err
		default:
			logger.Errorw("transfer_update_failed",
				"transfer_id", transfer.ID,
				"from", transfer.Status,
				"to", target,
				"error", err,
			)
			return nil, ErrTransferUpdateFailed
		}
	}

	if target == constants.TransferStatusCancelled {
		logger.Warnw("transfer_cancelled",
			"transfer_id", transfer.ID,
			"claim_id", transfer.ClaimID,
			"notes", strings.TrimSpace(input.Notes),
		)
	} else {
		logger.Infow("transfer_status_changed",
			"transfer_id", transfer.ID,
			"claim_id", transfer.ClaimID,
			"from", transfer.Status,
			"to", target,
		)
	}
	return s.transferRepo.GetByID(transfer.ID)
}
