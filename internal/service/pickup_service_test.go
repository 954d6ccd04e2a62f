package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPickupServiceTest(t *testing.T) (*PickupService, *ClaimService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:pickup_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.StorageLocation{},
		&models.Item{},
		&models.Claim{},
		&models.ClaimTimelineEntry{},
		&models.Transfer{},
		&models.Pickup{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	claimSvc := NewClaimService(
		repository.NewClaimRepository(db),
		repository.NewClaimTimelineRepository(db),
		repository.NewItemRepository(db),
		repository.NewStorageLocationRepository(db),
		repository.NewTransferRepository(db),
		testFeeCalculator(t),
		nil,
	)
	svc := NewPickupService(
		repository.NewPickupRepository(db),
		repository.NewStorageLocationRepository(db),
		claimSvc,
		PickupSlotConfig{
			DayStart:         "09:00",
			DayEnd:           "17:00",
			SlotMinutes:      60,
			SlotCapacity:     2,
			ReminderLeadHour: 24,
		},
		nil,
	)
	return svc, claimSvc, db
}

// seedArrivedPaidClaim 把一张认领推进到 已到达 + 已支付，可直接预约取件。
func seedArrivedPaidClaim(t *testing.T, claimSvc *ClaimService, db *gorm.DB, itemID uint) *models.Claim {
	t.Helper()
	seedItem(t, db, itemID, 2, time.Now().Add(-24*time.Hour))
	claim, err := claimSvc.File(FileClaimInput{ItemID: itemID, ClaimantID: 7})
	if err != nil {
		t.Fatalf("file claim failed: %v", err)
	}
	if _, err := claimSvc.Verify(claim.ID, "alice"); err != nil {
		t.Fatalf("verify claim failed: %v", err)
	}
	updated, _, err := claimSvc.PrepareHandover(claim.ID, 2, "alice")
	if err != nil {
		t.Fatalf("prepare handover failed: %v", err)
	}
	if err := db.Model(&models.Claim{}).Where("id = ?", claim.ID).Updates(map[string]interface{}{
		"payment_status": constants.ClaimPaymentStatusPaid,
		"paid_at":        time.Now(),
	}).Error; err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	updated.PaymentStatus = constants.ClaimPaymentStatusPaid
	return updated
}

func testPickupDate() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestPickupBookGeneratesCode(t *testing.T) {
	svc, claimSvc, db := setupPickupServiceTest(t)
	seedStorageLocation(t, db, 2, true)
	claim := seedArrivedPaidClaim(t, claimSvc, db, 10)

	pickup, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: testPickupDate(),
		StartTime:  "10:00",
		Actor:      "claimant",
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if !referenceCodePattern.MatchString(pickup.ReferenceCode) {
		t.Fatalf("reference code %q has wrong shape", pickup.ReferenceCode)
	}
	if pickup.StartTime != "10:00" || pickup.EndTime != "11:00" {
		t.Fatalf("slot want 10:00-11:00 got %s-%s", pickup.StartTime, pickup.EndTime)
	}

	code, err := ParseVerificationInput(pickup.QRCode)
	if err != nil {
		t.Fatalf("qr payload must decode: %v", err)
	}
	if code != pickup.ReferenceCode {
		t.Fatalf("qr code want %s got %s", pickup.ReferenceCode, code)
	}

	reloaded, err := claimSvc.Get(claim.ID)
	if err != nil {
		t.Fatalf("get claim failed: %v", err)
	}
	if reloaded.Status != constants.ClaimStatusPickupBooked {
		t.Fatalf("claim status want pickup_booked got %s", reloaded.Status)
	}
}

func TestPickupBookRequiresArrivedAndPaid(t *testing.T) {
	svc, claimSvc, db := setupPickupServiceTest(t)
	seedStorageLocation(t, db, 2, true)
	seedItem(t, db, 10, 2, time.Now().Add(-24*time.Hour))

	claim, err := claimSvc.File(FileClaimInput{ItemID: 10, ClaimantID: 7})
	if err != nil {
		t.Fatalf("file claim failed: %v", err)
	}
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: testPickupDate(),
		StartTime:  "10:00",
	}); !errors.Is(err, ErrClaimNotReady) {
		t.Fatalf("unarrived claim want ErrClaimNotReady got %v", err)
	}

	// 已到达但未支付同样拒绝
	if _, err := claimSvc.Verify(claim.ID, "alice"); err != nil {
		t.Fatalf("verify claim failed: %v", err)
	}
	if _, _, err := claimSvc.PrepareHandover(claim.ID, 2, "alice"); err != nil {
		t.Fatalf("prepare handover failed: %v", err)
	}
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: testPickupDate(),
		StartTime:  "10:00",
	}); !errors.Is(err, ErrClaimNotReady) {
		t.Fatalf("unpaid claim want ErrClaimNotReady got %v", err)
	}
}

func TestPickupBookRejectsDuplicateAndBadSlot(t *testing.T) {
	svc, claimSvc, db := setupPickupServiceTest(t)
	seedStorageLocation(t, db, 2, true)
	claim := seedArrivedPaidClaim(t, claimSvc, db, 10)
	date := testPickupDate()

	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: "not-a-date",
		StartTime:  "10:00",
	}); !errors.Is(err, ErrDateInvalid) {
		t.Fatalf("bad date want ErrDateInvalid got %v", err)
	}
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: date,
		StartTime:  "10:30",
	}); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("off-grid slot want ErrSlotUnavailable got %v", err)
	}
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: date,
		StartTime:  "17:00",
	}); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("slot past closing want ErrSlotUnavailable got %v", err)
	}

	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: date,
		StartTime:  "10:00",
	}); err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: date,
		StartTime:  "11:00",
	}); !errors.Is(err, ErrPickupExists) {
		t.Fatalf("double book want ErrPickupExists got %v", err)
	}
}

func TestPickupBookSlotCapacity(t *testing.T) {
	svc, claimSvc, db := setupPickupServiceTest(t)
	seedStorageLocation(t, db, 2, true)
	date := testPickupDate()

	for i := uint(0); i < 2; i++ {
		claim := seedArrivedPaidClaim(t, claimSvc, db, 10+i)
		if _, err := svc.Book(context.Background(), BookInput{
			ClaimID:    claim.ID,
			PickupDate: date,
			StartTime:  "09:00",
		}); err != nil {
			t.Fatalf("book %d failed: %v", i, err)
		}
	}

	claim := seedArrivedPaidClaim(t, claimSvc, db, 20)
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: date,
		StartTime:  "09:00",
	}); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("full slot want ErrSlotUnavailable got %v", err)
	}

	// 换一个时段仍可预约
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: date,
		StartTime:  "10:00",
	}); err != nil {
		t.Fatalf("book alternate slot failed: %v", err)
	}
}

func TestPickupGetAvailableSlots(t *testing.T) {
	svc, claimSvc, db := setupPickupServiceTest(t)
	seedStorageLocation(t, db, 2, true)
	seedStorageLocation(t, db, 3, false)
	date := testPickupDate()

	if _, err := svc.GetAvailableSlots(context.Background(), 2, "2026/01/01"); !errors.Is(err, ErrDateInvalid) {
		t.Fatalf("bad date want ErrDateInvalid got %v", err)
	}
	if _, err := svc.GetAvailableSlots(context.Background(), 3, date); !errors.Is(err, ErrStorageLocationNotFound) {
		t.Fatalf("non pickup site want ErrStorageLocationNotFound got %v", err)
	}

	slots, err := svc.GetAvailableSlots(context.Background(), 2, date)
	if err != nil {
		t.Fatalf("get slots failed: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("slots want 8 got %d", len(slots))
	}
	if slots[0].StartTime != "09:00" || slots[0].EndTime != "10:00" {
		t.Fatalf("first slot want 09:00-10:00 got %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[0].Available != 2 {
		t.Fatalf("fresh slot availability want 2 got %d", slots[0].Available)
	}

	claim := seedArrivedPaidClaim(t, claimSvc, db, 10)
	if _, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: date,
		StartTime:  "09:00",
	}); err != nil {
		t.Fatalf("book failed: %v", err)
	}

	slots, err = svc.GetAvailableSlots(context.Background(), 2, date)
	if err != nil {
		t.Fatalf("get slots after booking failed: %v", err)
	}
	if slots[0].Booked != 1 || slots[0].Available != 1 {
		t.Fatalf("slot occupancy want 1/1 got booked=%d available=%d", slots[0].Booked, slots[0].Available)
	}
}

func TestPickupVerifyByQRAndManualCode(t *testing.T) {
	svc, claimSvc, db := setupPickupServiceTest(t)
	seedStorageLocation(t, db, 2, true)
	claim := seedArrivedPaidClaim(t, claimSvc, db, 10)

	pickup, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: testPickupDate(),
		StartTime:  "10:00",
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	if _, err := svc.Verify("ZZZZ9999"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("unknown code want ErrCodeNotFound got %v", err)
	}

	verified, err := svc.Verify(pickup.QRCode)
	if err != nil {
		t.Fatalf("verify by qr failed: %v", err)
	}
	if !verified.IsVerified || verified.VerifiedAt == nil {
		t.Fatalf("verification stamp missing: %+v", verified)
	}

	// 手工输入取件码（小写）再次核销应拒绝
	if _, err := svc.Verify(strings.ToLower(pickup.ReferenceCode)); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("repeat verify want ErrAlreadyVerified got %v", err)
	}
}

func TestPickupCompleteReturnsClaim(t *testing.T) {
	svc, claimSvc, db := setupPickupServiceTest(t)
	seedStorageLocation(t, db, 2, true)
	claim := seedArrivedPaidClaim(t, claimSvc, db, 10)

	pickup, err := svc.Book(context.Background(), BookInput{
		ClaimID:    claim.ID,
		PickupDate: testPickupDate(),
		StartTime:  "10:00",
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	if _, err := svc.Complete(CompleteInput{
		PickupID:      pickup.ID,
		ReferenceCode: pickup.ReferenceCode,
		CompletedBy:   "bob",
	}); !errors.Is(err, ErrPickupNotVerified) {
		t.Fatalf("complete before verify want ErrPickupNotVerified got %v", err)
	}

	if _, err := svc.Verify(pickup.ReferenceCode); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if _, err := svc.Complete(CompleteInput{
		PickupID:      pickup.ID,
		ReferenceCode: "ZZZZ9999",
		CompletedBy:   "bob",
	}); !errors.Is(err, ErrReferenceCodeMismatch) {
		t.Fatalf("wrong code want ErrReferenceCodeMismatch got %v", err)
	}

	completed, err := svc.Complete(CompleteInput{
		PickupID:      pickup.ID,
		ReferenceCode: strings.ToLower(pickup.ReferenceCode),
		CompletedBy:   "bob",
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !completed.IsCompleted || completed.CompletedAt == nil || completed.CompletedBy != "bob" {
		t.Fatalf("completion stamp missing: %+v", completed)
	}

	reloaded, err := claimSvc.Get(claim.ID)
	if err != nil {
		t.Fatalf("get claim failed: %v", err)
	}
	if reloaded.Status != constants.ClaimStatusReturned {
		t.Fatalf("claim status want returned got %s", reloaded.Status)
	}

	if _, err := svc.Complete(CompleteInput{
		PickupID:      pickup.ID,
		ReferenceCode: pickup.ReferenceCode,
	}); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("repeat complete want ErrAlreadyCompleted got %v", err)
	}
	if _, err := svc.Verify(pickup.ReferenceCode); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("verify completed pickup want ErrAlreadyCompleted got %v", err)
	}
}
