package service

import (
	"errors"
	"strings"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/queue"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"gorm.io/gorm"
)

// ClaimService 认领服务
type ClaimService struct {
	claimRepo    repository.ClaimRepository
	timelineRepo repository.ClaimTimelineRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.StorageLocationRepository
	transferRepo repository.TransferRepository
	feeCalc      *FeeCalculator
	queueClient  *queue.Client
}

// NewClaimService 创建认领服务
func NewClaimService(
	claimRepo repository.ClaimRepository,
	timelineRepo repository.ClaimTimelineRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.StorageLocationRepository,
	transferRepo repository.TransferRepository,
	feeCalc *FeeCalculator,
	queueClient *queue.Client,
) *ClaimService {
	return &ClaimService{
		claimRepo:    claimRepo,
		timelineRepo: timelineRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		transferRepo: transferRepo,
		feeCalc:      feeCalc,
		queueClient:  queueClient,
	}
}

// FileClaimInput 提交认领输入
type FileClaimInput struct {
	ItemID         uint
	ClaimantID     uint
	Description    string
	ProofDocuments models.JSONArray
}

// File 提交认领
func (s *ClaimService) File(input FileClaimInput) (*models.Claim, error) {
	if input.ItemID == 0 || input.ClaimantID == 0 {
		return nil, ErrClaimCreateFailed
	}
	item, err := s.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	now := time.Now()
	claim := &models.Claim{
		ItemID:         input.ItemID,
		ClaimantID:     input.ClaimantID,
		Status:         constants.ClaimStatusFiled,
		Description:    strings.TrimSpace(input.Description),
		ProofDocuments: input.ProofDocuments,
		PaymentStatus:  constants.ClaimPaymentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.claimRepo.WithTx(tx).Create(claim); err != nil {
			return err
		}
		return s.timelineRepo.WithTx(tx).Append(&models.ClaimTimelineEntry{
			ClaimID:   claim.ID,
			Action:    constants.TimelineActionClaimFiled,
			Actor:     constants.TimelineActorClaimant,
			CreatedAt: now,
		})
	})
	if err != nil {
		logger.Errorw("claim_file_failed",
			"item_id", input.ItemID,
			"claimant_id", input.ClaimantID,
			"error", err,
		)
		return nil, ErrClaimCreateFailed
	}
	logger.Infow("claim_filed",
		"claim_id", claim.ID,
		"item_id", claim.ItemID,
		"claimant_id", claim.ClaimantID,
	)
	s.notifyStatus(claim.ID, claim.ClaimantID, constants.ClaimStatusFiled)
	return claim, nil
}

// Get 获取认领详情（含时间线）
func (s *ClaimService) Get(id uint) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByIDWithTimeline(id)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	return claim, nil
}

// List 认领列表
func (s *ClaimService) List(filter repository.ClaimListFilter) ([]models.Claim, int64, error) {
	claims, total, err := s.claimRepo.List(filter)
	if err != nil {
		return nil, 0, ErrClaimFetchFailed
	}
	return claims, total, nil
}

// RequestProof 要求补充身份凭证（仅 filed 状态允许）
func (s *ClaimService) RequestProof(claimID uint, actor string) (*models.Claim, error) {
	claim, err := s.loadClaim(claimID)
	if err != nil {
		return nil, err
	}
	return s.transition(claim, constants.ClaimStatusIdentityProofRequested,
		nil, constants.TimelineActionProofRequested, actorOrStaff(actor), "")
}

// Verify 核验通过认领，并立即按当前仓储天数固化费用明细。
func (s *ClaimService) Verify(claimID uint, actor string) (*models.Claim, error) {
	claim, err := s.loadClaim(claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != constants.ClaimStatusFiled &&
		claim.Status != constants.ClaimStatusIdentityProofRequested {
		return nil, ErrInvalidTransition
	}
	item, err := s.itemRepo.GetByID(claim.ItemID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	now := time.Now()
	breakdown := s.feeCalc.Calculate(item.DateFound, now)
	updates := map[string]interface{}{
		"handling_fee": breakdown.HandlingFee,
		"storage_fee":  breakdown.StorageFee,
		"total_amount": breakdown.TotalAmount,
		"days_stored":  breakdown.DaysStored,
		"currency":     breakdown.Currency,
		"verified_by":  actorOrStaff(actor),
		"verified_at":  now,
	}
	return s.transition(claim, constants.ClaimStatusVerified,
		updates, constants.TimelineActionClaimVerified, actorOrStaff(actor), "")
}

// Reject 驳回认领，任何非终态均可驳回，驳回原因必填。
// 已支付的认领驳回时不自动退款，只记录告警留待人工处理。
func (s *ClaimService) Reject(claimID uint, actor, reason string) (*models.Claim, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}
	claim, err := s.loadClaim(claimID)
	if err != nil {
		return nil, err
	}
	if claim.PaymentStatus == constants.ClaimPaymentStatusPaid {
		logger.Warnw("claim_rejected_after_payment",
			"claim_id", claim.ID,
			"total_amount", claim.TotalAmount.String(),
			"transaction_id", claim.TransactionID,
		)
	}
	updates := map[string]interface{}{
		"rejection_reason": reason,
	}
	return s.transition(claim, constants.ClaimStatusRejected,
		updates, constants.TimelineActionClaimRejected, actorOrStaff(actor), reason)
}

// PrepareHandover 为已核验认领安排交接：物品已在目标取件点则直接置为到达，
// 否则创建调拨单并进入待调拨状态。
func (s *ClaimService) PrepareHandover(claimID, pickupLocationID uint, actor string) (*models.Claim, *models.Transfer, error) {
	claim, err := s.loadClaim(claimID)
	if err != nil {
		return nil, nil, err
	}
	if claim.Status != constants.ClaimStatusVerified {
		return nil, nil, ErrInvalidTransition
	}
	item, err := s.itemRepo.GetByID(claim.ItemID)
	if err != nil {
		return nil, nil, ErrClaimFetchFailed
	}
	if item == nil {
		return nil, nil, ErrItemNotFound
	}
	location, err := s.locationRepo.GetByID(pickupLocationID)
	if err != nil {
		return nil, nil, ErrClaimFetchFailed
	}
	if location == nil || !location.IsPickupSite {
		return nil, nil, ErrStorageLocationNotFound
	}

	if item.StorageLocationID == pickupLocationID {
		// 物品已在取件点，无需调拨
		updates := map[string]interface{}{
			"pickup_location_id": pickupLocationID,
		}
		updated, err := s.transition(claim, constants.ClaimStatusArrived,
			updates, constants.TimelineActionItemArrived, actorOrStaff(actor), "item already on site")
		if err != nil {
			return nil, nil, err
		}
		return updated, nil, nil
	}

	active, err := s.transferRepo.GetActiveByClaim(claim.ID)
	if err != nil {
		return nil, nil, ErrClaimFetchFailed
	}
	if active != nil {
		return nil, nil, ErrTransferActiveExists
	}

	now := time.Now()
	transfer := &models.Transfer{
		ClaimID:        claim.ID,
		ItemID:         item.ID,
		FromLocationID: item.StorageLocationID,
		ToLocationID:   pickupLocationID,
		Status:         constants.TransferStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var updated *models.Claim
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.transferRepo.WithTx(tx).Create(transfer); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"pickup_location_id": pickupLocationID,
		}
		claimTx, err := s.transitionTx(tx, claim, constants.ClaimStatusAwaitingTransfer,
			updates, constants.TimelineActionTransferCreated, actorOrStaff(actor), "")
		if err != nil {
			return err
		}
		updated = claimTx
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConcurrentModification) {
			return nil, nil, ErrConcurrentModification
		}
		logger.Errorw("claim_prepare_handover_failed",
			"claim_id", claim.ID,
			"pickup_location_id", pickupLocationID,
			"error", err,
		)
		return nil, nil, ErrClaimUpdateFailed
	}
	s.notifyStatus(claim.ID, claim.ClaimantID, updated.Status)
	return updated, transfer, nil
}

// applyTransferStatus 根据调拨状态推进认领状态（同事务内执行）
func (s *ClaimService) applyTransferStatus(tx *gorm.DB, claimID uint, transferStatus, actor string) (*models.Claim, error) {
	var target, action string
	switch transferStatus {
	case constants.TransferStatusRecoveryRequired:
		target = constants.ClaimStatusAwaitingRecovery
		action = constants.TimelineActionTransferRecovery
	case constants.TransferStatusInTransit:
		target = constants.ClaimStatusInTransit
		action = constants.TimelineActionTransferShipped
	case constants.TransferStatusArrived:
		target = constants.ClaimStatusArrived
		action = constants.TimelineActionItemArrived
	default:
		return nil, nil
	}

	claim, err := s.claimRepo.WithTx(tx).GetByID(claimID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	return s.transitionTx(tx, claim, target, nil, action, actor, "")
}

// markReturned 取件完成后将认领置为已归还（同事务内执行）
func (s *ClaimService) markReturned(tx *gorm.DB, claimID uint, actor string) (*models.Claim, error) {
	claim, err := s.claimRepo.WithTx(tx).GetByID(claimID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	return s.transitionTx(tx, claim, constants.ClaimStatusReturned,
		nil, constants.TimelineActionClaimReturned, actor, "")
}

// transition 单独事务执行一次状态流转
func (s *ClaimService) transition(claim *models.Claim, target string, updates map[string]interface{}, action, actor, notes string) (*models.Claim, error) {
	var updated *models.Claim
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		claimTx, err := s.transitionTx(tx, claim, target, updates, action, actor, notes)
		if err != nil {
			return err
		}
		updated = claimTx
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrConcurrentModification):
			return nil, err
		default:
			logger.Errorw("claim_transition_failed",
				"claim_id", claim.ID,
				"from", claim.Status,
				"to", target,
				"error", err,
			)
			return nil, ErrClaimUpdateFailed
		}
	}
	logger.Infow("claim_status_changed",
		"claim_id", claim.ID,
		"from", claim.Status,
		"to", target,
		"actor", actor,
	)
	s.notifyStatus(claim.ID, claim.ClaimantID, target)
	return updated, nil
}

// transitionTx 校验并落库一次状态流转：乐观锁更新 + 追加时间线。
func (s *ClaimService) transitionTx(tx *gorm.DB, claim *models.Claim, target string, updates map[string]interface{}, action, actor, notes string) (*models.Claim, error) {
	if !validateClaimTransition(claim.Status, target) {
		return nil, ErrInvalidTransition
	}
	now := time.Now()
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = target
	updates["updated_at"] = now

	ok, err := s.claimRepo.WithTx(tx).UpdateWithVersion(claim.ID, claim.Version, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConcurrentModification
	}
	if err := s.timelineRepo.WithTx(tx).Append(&models.ClaimTimelineEntry{
		ClaimID:   claim.ID,
		Action:    action,
		Actor:     actor,
		Notes:     notes,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return s.claimRepo.WithTx(tx).GetByID(claim.ID)
}

func (s *ClaimService) loadClaim(claimID uint) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByID(claimID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	return claim, nil
}

func (s *ClaimService) notifyStatus(claimID, claimantID uint, status string) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueClaimStatusNotify(queue.ClaimStatusNotifyPayload{
		ClaimID:    claimID,
		ClaimantID: claimantID,
		Status:     status,
	}); err != nil {
		logger.Warnw("claim_enqueue_status_notify_failed",
			"claim_id", claimID,
			"status", status,
			"error", err,
		)
	}
}

func actorOrStaff(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return constants.TimelineActorStaff
	}
	return actor
}
