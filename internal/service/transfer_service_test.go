package service

import (
	"errors"
	"testing"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"

	"gorm.io/gorm"
)

func setupTransferServiceTest(t *testing.T) (*TransferService, *ClaimService, *gorm.DB) {
	t.Helper()
	claimSvc, db := setupClaimServiceTest(t)
	svc := NewTransferService(
		repository.NewTransferRepository(db),
		repository.NewItemRepository(db),
		claimSvc,
	)
	return svc, claimSvc, db
}

// seedPendingTransfer 走完 认领核验 + 安排交接 流程，返回待发运的调拨单。
func seedPendingTransfer(t *testing.T, claimSvc *ClaimService, db *gorm.DB) *models.Transfer {
	t.Helper()
	seedStorageLocation(t, db, 1, false)
	seedStorageLocation(t, db, 2, true)
	seedItem(t, db, 10, 1, time.Now().Add(-24*time.Hour))

	claim, err := claimSvc.File(FileClaimInput{ItemID: 10, ClaimantID: 7})
	if err != nil {
		t.Fatalf("file claim failed: %v", err)
	}
	if _, err := claimSvc.Verify(claim.ID, "alice"); err != nil {
		t.Fatalf("verify claim failed: %v", err)
	}
	_, transfer, err := claimSvc.PrepareHandover(claim.ID, 2, "alice")
	if err != nil {
		t.Fatalf("prepare handover failed: %v", err)
	}
	if transfer == nil {
		t.Fatalf("expected a pending transfer")
	}
	return transfer
}

func TestTransferInTransitRequiresCarrier(t *testing.T) {
	svc, claimSvc, db := setupTransferServiceTest(t)
	transfer := seedPendingTransfer(t, claimSvc, db)

	_, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status: constants.TransferStatusInTransit,
		Actor:  "bob",
	})
	if !errors.Is(err, ErrCarrierInfoRequired) {
		t.Fatalf("want ErrCarrierInfoRequired got %v", err)
	}

	updated, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status:      constants.TransferStatusInTransit,
		CarrierInfo: "courier-42",
		Actor:       "bob",
	})
	if err != nil {
		t.Fatalf("update to in_transit failed: %v", err)
	}
	if updated.Status != constants.TransferStatusInTransit {
		t.Fatalf("status want in_transit got %s", updated.Status)
	}
	if updated.ShippedAt == nil || updated.CarrierInfo != "courier-42" {
		t.Fatalf("shipping stamp missing: %+v", updated)
	}

	claim, err := claimSvc.Get(transfer.ClaimID)
	if err != nil {
		t.Fatalf("get claim failed: %v", err)
	}
	if claim.Status != constants.ClaimStatusInTransit {
		t.Fatalf("claim status want in_transit got %s", claim.Status)
	}
}

func TestTransferArrivedMovesItemAndClaim(t *testing.T) {
	svc, claimSvc, db := setupTransferServiceTest(t)
	transfer := seedPendingTransfer(t, claimSvc, db)

	if _, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status:      constants.TransferStatusInTransit,
		CarrierInfo: "courier-42",
		Actor:       "bob",
	}); err != nil {
		t.Fatalf("update to in_transit failed: %v", err)
	}

	updated, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status: constants.TransferStatusArrived,
		Actor:  "bob",
	})
	if err != nil {
		t.Fatalf("update to arrived failed: %v", err)
	}
	if updated.Status != constants.TransferStatusArrived || updated.ReceivedAt == nil {
		t.Fatalf("arrival stamp missing: %+v", updated)
	}

	var item models.Item
	if err := db.First(&item, transfer.ItemID).Error; err != nil {
		t.Fatalf("load item failed: %v", err)
	}
	if item.StorageLocationID != transfer.ToLocationID {
		t.Fatalf("item location want %d got %d", transfer.ToLocationID, item.StorageLocationID)
	}

	claim, err := claimSvc.Get(transfer.ClaimID)
	if err != nil {
		t.Fatalf("get claim failed: %v", err)
	}
	if claim.Status != constants.ClaimStatusArrived {
		t.Fatalf("claim status want arrived got %s", claim.Status)
	}
}

func TestTransferRecoveryRequiredThenInTransit(t *testing.T) {
	svc, claimSvc, db := setupTransferServiceTest(t)
	transfer := seedPendingTransfer(t, claimSvc, db)

	updated, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status: constants.TransferStatusRecoveryRequired,
		Notes:  "item misplaced in warehouse",
		Actor:  "bob",
	})
	if err != nil {
		t.Fatalf("update to recovery_required failed: %v", err)
	}
	if updated.Status != constants.TransferStatusRecoveryRequired {
		t.Fatalf("status want recovery_required got %s", updated.Status)
	}

	claim, err := claimSvc.Get(transfer.ClaimID)
	if err != nil {
		t.Fatalf("get claim failed: %v", err)
	}
	if claim.Status != constants.ClaimStatusAwaitingRecovery {
		t.Fatalf("claim status want awaiting_recovery got %s", claim.Status)
	}

	if _, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status:      constants.TransferStatusInTransit,
		CarrierInfo: "courier-42",
		Actor:       "bob",
	}); err != nil {
		t.Fatalf("update to in_transit after recovery failed: %v", err)
	}
}

func TestTransferCancelKeepsClaimStatus(t *testing.T) {
	svc, claimSvc, db := setupTransferServiceTest(t)
	transfer := seedPendingTransfer(t, claimSvc, db)

	updated, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status: constants.TransferStatusCancelled,
		Notes:  "route closed",
		Actor:  "bob",
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != constants.TransferStatusCancelled {
		t.Fatalf("status want cancelled got %s", updated.Status)
	}

	claim, err := claimSvc.Get(transfer.ClaimID)
	if err != nil {
		t.Fatalf("get claim failed: %v", err)
	}
	if claim.Status != constants.ClaimStatusAwaitingTransfer {
		t.Fatalf("claim status must stay awaiting_transfer, got %s", claim.Status)
	}

	var entries []models.ClaimTimelineEntry
	if err := db.Where("claim_id = ? AND action = ?", transfer.ClaimID, constants.TimelineActionTransferCancelled).Find(&entries).Error; err != nil {
		t.Fatalf("load timeline failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("transfer_cancelled entries want 1 got %d", len(entries))
	}

	if _, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status: constants.TransferStatusInTransit,
		Actor:  "bob",
	}); !errors.Is(err, ErrInvalidTransferTransition) {
		t.Fatalf("cancelled transfer must be terminal, got %v", err)
	}
}

func TestTransferIllegalSkipToArrived(t *testing.T) {
	svc, claimSvc, db := setupTransferServiceTest(t)
	transfer := seedPendingTransfer(t, claimSvc, db)

	if _, err := svc.UpdateStatus(transfer.ID, UpdateStatusInput{
		Status: constants.TransferStatusArrived,
		Actor:  "bob",
	}); !errors.Is(err, ErrInvalidTransferTransition) {
		t.Fatalf("pending -> arrived must be rejected, got %v", err)
	}
	if _, err := svc.UpdateStatus(999, UpdateStatusInput{
		Status: constants.TransferStatusInTransit,
		Actor:  "bob",
	}); !errors.Is(err, ErrTransferNotFound) {
		t.Fatalf("unknown transfer want ErrTransferNotFound got %v", err)
	}
}
