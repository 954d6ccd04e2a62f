package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/cache"
	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/queue"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"gorm.io/gorm"
)

const (
	pickupDateLayout  = "2006-01-02"
	pickupTimeLayout  = "15:04"
	slotCacheTTL      = 30 * time.Second
	referenceCodeTrys = 5
)

// PickupSlotConfig 取件时段配置
type PickupSlotConfig struct {
	DayStart         string
	DayEnd           string
	SlotMinutes      int
	SlotCapacity     int
	ReminderLeadHour int
}

// PickupSlot 可预约时段
type PickupSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}

// PickupService 取件服务
type PickupService struct {
	pickupRepo   repository.PickupRepository
	locationRepo repository.StorageLocationRepository
	claims       *ClaimService
	slotCfg      PickupSlotConfig
	queueClient  *queue.Client
}

// NewPickupService 创建取件服务
func NewPickupService(
	pickupRepo repository.PickupRepository,
	locationRepo repository.StorageLocationRepository,
	claims *ClaimService,
	slotCfg PickupSlotConfig,
	queueClient *queue.Client,
) *PickupService {
	return &PickupService{
		pickupRepo:   pickupRepo,
		locationRepo: locationRepo,
		claims:       claims,
		slotCfg:      slotCfg,
		queueClient:  queueClient,
	}
}

// Get 获取取件预约详情
func (s *PickupService) Get(id uint) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	return pickup, nil
}

// List 取件预约列表
func (s *PickupService) List(filter repository.PickupListFilter) ([]models.Pickup, int64, error) {
	pickups, total, err := s.pickupRepo.List(filter)
	if err != nil {
		return nil, 0, ErrClaimFetchFailed
	}
	return pickups, total, nil
}

// GetAvailableSlots 获取某站点某日的可预约时段（短 TTL 缓存）
func (s *PickupService) GetAvailableSlots(ctx context.Context, locationID uint, date string) ([]PickupSlot, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(pickupDateLayout, date); err != nil {
		return nil, ErrDateInvalid
	}
	location, err := s.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if location == nil || !location.IsPickupSite {
		return nil, ErrStorageLocationNotFound
	}

	cacheKey := slotCacheKey(locationID, date)
	var cached []PickupSlot
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	slots, err := s.buildSlots(locationID, date)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKey, slots, slotCacheTTL); err != nil {
		logger.Warnw("pickup_slot_cache_set_failed", "key", cacheKey, "error", err)
	}
	return slots, nil
}

// BookInput 预约取件输入
type BookInput struct {
	ClaimID    uint
	PickupDate string
	StartTime  string
	Actor      string
}

// Book 预约取件：要求认领已到达且已支付，占用时段并生成取件码与二维码。
func (s *PickupService) Book(ctx context.Context, input BookInput) (*models.Pickup, error) {
	date := strings.TrimSpace(input.PickupDate)
	if _, err := time.Parse(pickupDateLayout, date); err != nil {
		return nil, ErrDateInvalid
	}
	claim, err := s.claims.loadClaim(input.ClaimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != constants.ClaimStatusArrived ||
		claim.PaymentStatus != constants.ClaimPaymentStatusPaid {
		return nil, ErrClaimNotReady
	}
	if claim.PickupLocationID == nil {
		return nil, ErrClaimNotReady
	}
	locationID := *claim.PickupLocationID

	existing, err := s.pickupRepo.GetByClaimID(claim.ID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if existing != nil {
		return nil, ErrPickupExists
	}

	startTime, endTime, err := s.resolveSlot(input.StartTime)
	if err != nil {
		return nil, err
	}

	code, qrCode, err := s.generateUniqueCode()
	if err != nil {
		return nil, ErrPickupBookFailed
	}

	now := time.Now()
	pickup := &models.Pickup{
		ClaimID:       claim.ID,
		ItemID:        claim.ItemID,
		ClaimantID:    claim.ClaimantID,
		LocationID:    locationID,
		PickupDate:    date,
		StartTime:     startTime,
		EndTime:       endTime,
		ReferenceCode: code,
		QRCode:        qrCode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		booked, err := s.pickupRepo.WithTx(tx).CountBySlot(locationID, date, startTime)
		if err != nil {
			return err
		}
		if int(booked) >= s.slotCfg.SlotCapacity {
			return ErrSlotUnavailable
		}
		if err := s.pickupRepo.WithTx(tx).Create(pickup); err != nil {
			return err
		}
		_, err = s.claims.transitionTx(tx, claim, constants.ClaimStatusPickupBooked,
			nil, constants.TimelineActionPickupBooked, actorOrStaff(input.Actor), code)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable),
			errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrConcurrentModification):
			return nil, err
		default:
			logger.Errorw("pickup_book_failed",
				"claim_id", claim.ID,
				"pickup_date", date,
				"start_time", startTime,
				"error", err,
			)
			return nil, ErrPickupBookFailed
		}
	}

	if err := cache.Del(ctx, slotCacheKey(locationID, date)); err != nil {
		logger.Warnw("pickup_slot_cache_del_failed", "location_id", locationID, "date", date, "error", err)
	}
	logger.Infow("pickup_booked",
		"pickup_id", pickup.ID,
		"claim_id", claim.ID,
		"pickup_date", date,
		"start_time", startTime,
	)
	s.enqueueReminder(pickup)
	return pickup, nil
}

// Verify 核销取件凭证：接受二维码载荷或手工输入的取件码。
func (s *PickupService) Verify(rawInput string) (*models.Pickup, error) {
	code, err := ParseVerificationInput(rawInput)
	if err != nil {
		return nil, err
	}
	pickup, err := s.pickupRepo.GetByReferenceCode(code)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if pickup == nil {
		return nil, ErrCodeNotFound
	}
	if pickup.IsCompleted {
		return nil, ErrAlreadyCompleted
	}
	if pickup.IsVerified {
		return nil, ErrAlreadyVerified
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.pickupRepo.WithTx(tx).UpdateWithVersion(pickup.ID, pickup.Version, map[string]interface{}{
			"is_verified": true,
			"verified_at": now,
			"updated_at":  now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		return s.claims.timelineRepo.WithTx(tx).Append(&models.ClaimTimelineEntry{
			ClaimID:   pickup.ClaimID,
			Action:    constants.TimelineActionPickupVerified,
			Actor:     constants.TimelineActorStaff,
			Notes:     code,
			CreatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrConcurrentModification) {
			return nil, ErrConcurrentModification
		}
		logger.Errorw("pickup_verify_failed", "pickup_id", pickup.ID, "error", err)
		return nil, ErrClaimUpdateFailed
	}
	logger.Infow("pickup_verified", "pickup_id", pickup.ID, "claim_id", pickup.ClaimID)
	return s.pickupRepo.GetByID(pickup.ID)
}

// CompleteInput 完成取件输入
type CompleteInput struct {
	PickupID      uint
	ReferenceCode string
	Notes         string
	CompletedBy   string
}

// Complete 完成取件交付：要求已核销且取件码复核一致，同时将认领置为已归还。
func (s *PickupService) Complete(input CompleteInput) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(input.PickupID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if pickup.IsCompleted {
		return nil, ErrAlreadyCompleted
	}
	if !pickup.IsVerified {
		return nil, ErrPickupNotVerified
	}
	code, err := normalizeReferenceCode(input.ReferenceCode)
	if err != nil {
		return nil, err
	}
	if code != pickup.ReferenceCode {
		return nil, ErrReferenceCodeMismatch
	}

	completedBy := actorOrStaff(input.CompletedBy)
	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.pickupRepo.WithTx(tx).UpdateWithVersion(pickup.ID, pickup.Version, map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
			"completed_by": completedBy,
			"notes":        strings.TrimSpace(input.Notes),
			"updated_at":   now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		_, err = s.claims.markReturned(tx, pickup.ClaimID, completedBy)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConcurrentModification),
			errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrClaimNotFound):
			return nil, err
		default:
			logger.Errorw("pickup_complete_failed", "pickup_id", pickup.ID, "error", err)
			return nil, ErrClaimUpdateFailed
		}
	}
	logger.Infow("pickup_completed",
		"pickup_id", pickup.ID,
		"claim_id", pickup.ClaimID,
		"completed_by", completedBy,
	)
	return s.pickupRepo.GetByID(pickup.ID)
}

// buildSlots 按配置切分工作时段并统计占用
func (s *PickupService) buildSlots(locationID uint, date string) ([]PickupSlot, error) {
	dayStart, err := time.Parse(pickupTimeLayout, s.slotCfg.DayStart)
	if err != nil {
		return nil, ErrDateInvalid
	}
	dayEnd, err := time.Parse(pickupTimeLayout, s.slotCfg.DayEnd)
	if err != nil {
		return nil, ErrDateInvalid
	}
	step := time.Duration(s.slotCfg.SlotMinutes) * time.Minute
	if step <= 0 {
		step = time.Hour
	}

	pickups, err := s.pickupRepo.ListByDate(date)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	bookedBySlot := make(map[string]int)
	for _, pickup := range pickups {
		if pickup.LocationID != locationID {
			continue
		}
		bookedBySlot[pickup.StartTime]++
	}

	slots := make([]PickupSlot, 0, 16)
	for cursor := dayStart; cursor.Add(step).Before(dayEnd) || cursor.Add(step).Equal(dayEnd); cursor = cursor.Add(step) {
		start := cursor.Format(pickupTimeLayout)
		booked := bookedBySlot[start]
		available := s.slotCfg.SlotCapacity - booked
		if available < 0 {
			available = 0
		}
		slots = append(slots, PickupSlot{
			Date:      date,
			StartTime: start,
			EndTime:   cursor.Add(step).Format(pickupTimeLayout),
			Capacity:  s.slotCfg.SlotCapacity,
			Booked:    booked,
			Available: available,
		})
	}
	return slots, nil
}

// resolveSlot 校验预约时段是否落在配置的切分点上
func (s *PickupService) resolveSlot(startTime string) (string, string, error) {
	startTime = strings.TrimSpace(startTime)
	parsed, err := time.Parse(pickupTimeLayout, startTime)
	if err != nil {
		return "", "", ErrSlotUnavailable
	}
	dayStart, err := time.Parse(pickupTimeLayout, s.slotCfg.DayStart)
	if err != nil {
		return "", "", ErrSlotUnavailable
	}
	dayEnd, err := time.Parse(pickupTimeLayout, s.slotCfg.DayEnd)
	if err != nil {
		return "", "", ErrSlotUnavailable
	}
	step := time.Duration(s.slotCfg.SlotMinutes) * time.Minute
	if step <= 0 {
		step = time.Hour
	}
	if parsed.Before(dayStart) || parsed.Add(step).After(dayEnd) {
		return "", "", ErrSlotUnavailable
	}
	offset := parsed.Sub(dayStart)
	if offset%step != 0 {
		return "", "", ErrSlotUnavailable
	}
	return parsed.Format(pickupTimeLayout), parsed.Add(step).Format(pickupTimeLayout), nil
}

// generateUniqueCode 生成未被占用的取件码及其二维码载荷
func (s *PickupService) generateUniqueCode() (string, string, error) {
	for i := 0; i < referenceCodeTrys; i++ {
		code, err := generateReferenceCode()
		if err != nil {
			return "", "", err
		}
		existing, err := s.pickupRepo.GetByReferenceCode(code)
		if err != nil {
			return "", "", err
		}
		if existing != nil {
			continue
		}
		qrCode, err := BuildQRPayload(code)
		if err != nil {
			return "", "", err
		}
		return code, qrCode, nil
	}
	return "", "", errors.New("reference code space exhausted")
}

func (s *PickupService) enqueueReminder(pickup *models.Pickup) {
	if s.queueClient == nil || pickup == nil {
		return
	}
	slotStart, err := time.ParseInLocation(
		pickupDateLayout+" "+pickupTimeLayout,
		pickup.PickupDate+" "+pickup.StartTime,
		time.Local,
	)
	if err != nil {
		return
	}
	lead := time.Duration(s.slotCfg.ReminderLeadHour) * time.Hour
	delay := time.Until(slotStart.Add(-lead))
	if delay < 0 {
		delay = 0
	}
	if err := s.queueClient.EnqueuePickupReminder(queue.PickupReminderPayload{
		PickupID:   pickup.ID,
		ClaimID:    pickup.ClaimID,
		ClaimantID: pickup.ClaimantID,
		PickupDate: pickup.PickupDate,
		StartTime:  pickup.StartTime,
	}, delay); err != nil {
		logger.Warnw("pickup_enqueue_reminder_failed", "pickup_id", pickup.ID, "error", err)
	}
}

func slotCacheKey(locationID uint, date string) string {
	return fmt.Sprintf("pickup:slots:%d:%s", locationID, date)
}
