package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/payment/gateway"
	"github.com/taniyakamboj15/lostandfound-api/internal/queue"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"gorm.io/gorm"
)

// reservationTTL 幂等键占位的接管时限：超过后视原持有方已放弃，可被接管。
const reservationTTL = 2 * time.Minute

// PaymentService 支付编排服务
type PaymentService struct {
	claimRepo    repository.ClaimRepository
	timelineRepo repository.ClaimTimelineRepository
	itemRepo     repository.ItemRepository
	intentRepo   repository.PaymentIntentRepository
	feeCalc      *FeeCalculator
	gatewayCfg   *gateway.Config
	queueClient  *queue.Client
}

// NewPaymentService 创建支付编排服务
func NewPaymentService(
	claimRepo repository.ClaimRepository,
	timelineRepo repository.ClaimTimelineRepository,
	itemRepo repository.ItemRepository,
	intentRepo repository.PaymentIntentRepository,
	feeCalc *FeeCalculator,
	gatewayCfg *gateway.Config,
	queueClient *queue.Client,
) *PaymentService {
	return &PaymentService{
		claimRepo:    claimRepo,
		timelineRepo: timelineRepo,
		itemRepo:     itemRepo,
		intentRepo:   intentRepo,
		feeCalc:      feeCalc,
		gatewayCfg:   gatewayCfg,
		queueClient:  queueClient,
	}
}

// GetFeeBreakdown 获取认领费用明细。
// 已核验的认领返回核验时固化的明细，未核验的按当前时间试算。
func (s *PaymentService) GetFeeBreakdown(claimID uint) (*FeeBreakdown, error) {
	claim, err := s.claimRepo.GetByID(claimID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	if claim.VerifiedAt != nil {
		return &FeeBreakdown{
			HandlingFee: claim.HandlingFee,
			StorageFee:  claim.StorageFee,
			TotalAmount: claim.TotalAmount,
			DaysStored:  claim.DaysStored,
			PerDiemRate: s.feeCalc.perDiemRate,
			Currency:    claim.Currency,
		}, nil
	}
	item, err := s.itemRepo.GetByID(claim.ItemID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	breakdown := s.feeCalc.Calculate(item.DateFound, time.Now())
	return &breakdown, nil
}

// CreatePaymentIntent 创建支付意向。
// 幂等键的唯一索引插入即互斥闸门：同一键并发到达时只有一方真正调用网关，
// 其余请求复用已创建的意向或按占位状态返回冲突。
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, claimID uint, idempotencyKey string) (*models.PaymentIntent, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return nil, ErrIdempotencyKeyRequired
	}
	claim, err := s.claimRepo.GetByID(claimID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	if claim.PaymentStatus == constants.ClaimPaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}
	if claim.Status != constants.ClaimStatusVerified {
		return nil, ErrClaimNotVerified
	}

	reservation, err := s.reserveIdempotencyKey(claim, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if reservation.Status == constants.PaymentIntentStatusCreated {
		// 同键重放，直接复用已创建的意向
		logger.Infow("payment_intent_reused",
			"claim_id", claim.ID,
			"idempotency_key", idempotencyKey,
			"gateway_intent_id", reservation.GatewayIntentID,
		)
		return reservation, nil
	}

	// 网关调用在任何数据库事务之外执行
	result, err := gateway.CreateIntent(ctx, s.gatewayCfg, gateway.CreateIntentInput{
		ClaimID:        claim.ID,
		IdempotencyKey: idempotencyKey,
		Amount:         claim.TotalAmount.String(),
		Currency:       claim.Currency,
		Description:    fmt.Sprintf("lost and found claim #%d", claim.ID),
	})
	if err != nil {
		s.releaseReservation(reservation)
		if errors.Is(err, gateway.ErrConfigInvalid) {
			logger.Errorw("payment_gateway_config_invalid", "claim_id", claim.ID, "error", err)
			return nil, ErrGatewayConfigInvalid
		}
		logger.Warnw("payment_gateway_create_failed",
			"claim_id", claim.ID,
			"idempotency_key", idempotencyKey,
			"error", err,
		)
		return nil, ErrGatewayUnavailable
	}

	ok, err := s.intentRepo.UpdateWithVersion(reservation.ID, reservation.Version, map[string]interface{}{
		"status":            constants.PaymentIntentStatusCreated,
		"gateway_intent_id": result.IntentID,
		"client_secret":     result.ClientSecret,
		"updated_at":        time.Now(),
	})
	if err != nil {
		return nil, ErrPaymentIntentFailed
	}
	if !ok {
		return nil, ErrConcurrentModification
	}

	created, err := s.intentRepo.GetByID(reservation.ID)
	if err != nil || created == nil {
		return nil, ErrPaymentIntentFailed
	}
	logger.Infow("payment_intent_created",
		"claim_id", claim.ID,
		"intent_id", created.ID,
		"gateway_intent_id", created.GatewayIntentID,
		"total_amount", created.TotalAmount.String(),
	)
	return created, nil
}

// VerifyPayment 向网关核实支付结果，确认成功后标记认领为已支付并作废幂等键。
func (s *PaymentService) VerifyPayment(ctx context.Context, gatewayIntentID string, claimID uint) (*models.Claim, error) {
	gatewayIntentID = strings.TrimSpace(gatewayIntentID)
	if gatewayIntentID == "" {
		return nil, ErrPaymentIntentNotFound
	}
	claim, err := s.claimRepo.GetByID(claimID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	if claim.PaymentStatus == constants.ClaimPaymentStatusPaid {
		return claim, nil
	}
	if claim.Status != constants.ClaimStatusVerified {
		return nil, ErrClaimNotVerified
	}
	intent, err := s.intentRepo.GetByGatewayIntentID(gatewayIntentID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if intent == nil || intent.ClaimID != claim.ID {
		return nil, ErrPaymentIntentNotFound
	}

	// 网关查询在事务之外，超时不改动支付状态
	result, err := gateway.QueryIntent(ctx, s.gatewayCfg, gatewayIntentID)
	if err != nil {
		if errors.Is(err, gateway.ErrConfigInvalid) {
			return nil, ErrGatewayConfigInvalid
		}
		logger.Warnw("payment_gateway_query_failed",
			"claim_id", claim.ID,
			"gateway_intent_id", gatewayIntentID,
			"error", err,
		)
		return nil, ErrGatewayUnavailable
	}
	if result.Status != "success" {
		logger.Infow("payment_not_confirmed",
			"claim_id", claim.ID,
			"gateway_intent_id", gatewayIntentID,
			"gateway_status", result.Status,
		)
		return nil, ErrPaymentNotConfirmed
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.claimRepo.WithTx(tx).UpdateWithVersion(claim.ID, claim.Version, map[string]interface{}{
			"payment_status": constants.ClaimPaymentStatusPaid,
			"paid_at":        now,
			"transaction_id": gatewayIntentID,
			"updated_at":     now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		// 支付成功后作废幂等键占位，后续重放将拒绝
		ok, err = s.intentRepo.WithTx(tx).UpdateWithVersion(intent.ID, intent.Version, map[string]interface{}{
			"status":     constants.PaymentIntentStatusSucceeded,
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		return s.timelineRepo.WithTx(tx).Append(&models.ClaimTimelineEntry{
			ClaimID:   claim.ID,
			Action:    constants.TimelineActionPaymentConfirmed,
			Actor:     constants.TimelineActorSystem,
			Notes:     gatewayIntentID,
			CreatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrConcurrentModification) {
			return nil, ErrConcurrentModification
		}
		logger.Errorw("payment_confirm_failed",
			"claim_id", claim.ID,
			"gateway_intent_id", gatewayIntentID,
			"error", err,
		)
		return nil, ErrClaimUpdateFailed
	}
	logger.Infow("payment_confirmed",
		"claim_id", claim.ID,
		"gateway_intent_id", gatewayIntentID,
		"total_amount", claim.TotalAmount.String(),
	)
	if s.queueClient != nil {
		if err := s.queueClient.EnqueueClaimStatusNotify(queue.ClaimStatusNotifyPayload{
			ClaimID:    claim.ID,
			ClaimantID: claim.ClaimantID,
			Status:     claim.Status,
			Event:      constants.NotificationEventClaimStatusChanged,
		}); err != nil {
			logger.Warnw("payment_enqueue_notify_failed", "claim_id", claim.ID, "error", err)
		}
	}
	return s.claimRepo.GetByID(claim.ID)
}

// reserveIdempotencyKey 以插入唯一键占位的方式竞争网关调用权。
// 返回的记录若为 created 状态表示复用，reserved 状态表示本方胜出。
func (s *PaymentService) reserveIdempotencyKey(claim *models.Claim, idempotencyKey string) (*models.PaymentIntent, error) {
	now := time.Now()
	reservation := &models.PaymentIntent{
		IdempotencyKey: idempotencyKey,
		ClaimID:        claim.ID,
		Status:         constants.PaymentIntentStatusReserved,
		HandlingFee:    claim.HandlingFee,
		StorageFee:     claim.StorageFee,
		TotalAmount:    claim.TotalAmount,
		DaysStored:     claim.DaysStored,
		Currency:       claim.Currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.intentRepo.Create(reservation); err == nil {
		return reservation, nil
	}

	// 插入失败视为键已存在，按既有记录状态分流
	existing, err := s.intentRepo.GetByIdempotencyKey(idempotencyKey)
	if err != nil {
		return nil, ErrPaymentIntentFailed
	}
	if existing == nil {
		return nil, ErrPaymentIntentFailed
	}
	if existing.ClaimID != claim.ID {
		return nil, ErrStaleIdempotencyKey
	}
	switch existing.Status {
	case constants.PaymentIntentStatusSucceeded:
		return nil, ErrStaleIdempotencyKey
	case constants.PaymentIntentStatusCreated:
		return existing, nil
	case constants.PaymentIntentStatusReserved:
		if time.Since(existing.UpdatedAt) < reservationTTL {
			// 另一请求正持有占位
			return nil, ErrConcurrentModification
		}
		// 占位过期，接管后重新调用网关
		ok, err := s.intentRepo.UpdateWithVersion(existing.ID, existing.Version, map[string]interface{}{
			"updated_at": now,
		})
		if err != nil || !ok {
			return nil, ErrConcurrentModification
		}
		takenOver, err := s.intentRepo.GetByID(existing.ID)
		if err != nil || takenOver == nil {
			return nil, ErrPaymentIntentFailed
		}
		logger.Warnw("payment_reservation_taken_over",
			"claim_id", claim.ID,
			"idempotency_key", idempotencyKey,
			"intent_id", takenOver.ID,
		)
		return takenOver, nil
	default:
		return nil, ErrPaymentIntentFailed
	}
}

// releaseReservation 网关调用失败后释放幂等键占位，允许同键重试。
func (s *PaymentService) releaseReservation(reservation *models.PaymentIntent) {
	if reservation == nil || reservation.Status != constants.PaymentIntentStatusReserved {
		return
	}
	if err := s.intentRepo.Delete(reservation.ID); err != nil {
		logger.Warnw("payment_reservation_release_failed",
			"intent_id", reservation.ID,
			"error", err,
		)
	}
}
