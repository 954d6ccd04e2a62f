package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupClaimRepositoryTest(t *testing.T) (*GormClaimRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:claim_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.StorageLocation{},
		&models.Item{},
		&models.Claim{},
		&models.ClaimTimelineEntry{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewClaimRepository(db), db
}

func TestClaimRepositoryUpdateWithVersionHitsOnlyMatchingVersion(t *testing.T) {
	repo, db := setupClaimRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	claim := models.Claim{
		ItemID:        1,
		ClaimantID:    10,
		Status:        constants.ClaimStatusFiled,
		PaymentStatus: constants.ClaimPaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&claim).Error; err != nil {
		t.Fatalf("create claim failed: %v", err)
	}

	ok, err := repo.UpdateWithVersion(claim.ID, claim.Version, map[string]interface{}{
		"status": constants.ClaimStatusIdentityProofRequested,
	})
	if err != nil {
		t.Fatalf("update with version failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected version match on first update")
	}

	// 旧版本号再次更新应落空
	ok, err = repo.UpdateWithVersion(claim.ID, claim.Version, map[string]interface{}{
		"status": constants.ClaimStatusVerified,
	})
	if err != nil {
		t.Fatalf("stale update failed: %v", err)
	}
	if ok {
		t.Fatalf("stale version should not match")
	}

	stored, err := repo.GetByID(claim.ID)
	if err != nil {
		t.Fatalf("get claim failed: %v", err)
	}
	if stored == nil {
		t.Fatalf("claim not found after update")
	}
	if stored.Status != constants.ClaimStatusIdentityProofRequested {
		t.Fatalf("status want %s got %s", constants.ClaimStatusIdentityProofRequested, stored.Status)
	}
	if stored.Version != claim.Version+1 {
		t.Fatalf("version want %d got %d", claim.Version+1, stored.Version)
	}
}

func TestClaimRepositoryGetByIDWithTimelineOrdersEntries(t *testing.T) {
	repo, db := setupClaimRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	claim := models.Claim{
		ItemID:        2,
		ClaimantID:    20,
		Status:        constants.ClaimStatusVerified,
		PaymentStatus: constants.ClaimPaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&claim).Error; err != nil {
		t.Fatalf("create claim failed: %v", err)
	}

	actions := []string{
		constants.TimelineActionClaimFiled,
		constants.TimelineActionProofRequested,
		constants.TimelineActionClaimVerified,
	}
	for _, action := range actions {
		entry := models.ClaimTimelineEntry{
			ClaimID: claim.ID,
			Action:  action,
			Actor:   constants.TimelineActorStaff,
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("create timeline entry failed: %v", err)
		}
	}

	stored, err := repo.GetByIDWithTimeline(claim.ID)
	if err != nil {
		t.Fatalf("get with timeline failed: %v", err)
	}
	if stored == nil {
		t.Fatalf("claim not found")
	}
	if len(stored.Timeline) != len(actions) {
		t.Fatalf("timeline len want %d got %d", len(actions), len(stored.Timeline))
	}
	for i, action := range actions {
		if stored.Timeline[i].Action != action {
			t.Fatalf("timeline[%d] want %s got %s", i, action, stored.Timeline[i].Action)
		}
	}
}
