//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Pickup{},
		&models.Transfer{},
		&models.PaymentIntent{},
		&models.ClaimTimelineEntry{},
		&models.Claim{},
		&models.Item{},
		&models.StorageLocation{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.StorageLocation{},
		&models.Item{},
		&models.Claim{},
		&models.ClaimTimelineEntry{},
		&models.PaymentIntent{},
		&models.Transfer{},
		&models.Pickup{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresClaimRepositoryFilters(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewClaimRepository(db)

	location := &models.StorageLocation{Name: "pg-depot", IsPickupSite: true}
	if err := db.Create(location).Error; err != nil {
		t.Fatalf("create storage location failed: %v", err)
	}
	item := &models.Item{
		Name:              "pg-umbrella",
		Size:              constants.ItemSizeSmall,
		DateFound:         time.Now().Add(-48 * time.Hour),
		StorageLocationID: location.ID,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	statuses := []string{
		constants.ClaimStatusFiled,
		constants.ClaimStatusVerified,
		constants.ClaimStatusRejected,
	}
	for i, status := range statuses {
		claim := &models.Claim{
			ItemID:        item.ID,
			ClaimantID:    uint(i + 1),
			Status:        status,
			PaymentStatus: constants.ClaimPaymentStatusPending,
		}
		if err := repo.Create(claim); err != nil {
			t.Fatalf("create claim %d failed: %v", i, err)
		}
	}

	rows, total, err := repo.List(ClaimListFilter{Page: 1, PageSize: 10, Status: constants.ClaimStatusVerified})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("list by status want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ClaimListFilter{Page: 1, PageSize: 10, ClaimantID: 2})
	if err != nil {
		t.Fatalf("list by claimant failed: %v", err)
	}
	if total != 1 || rows[0].Status != constants.ClaimStatusVerified {
		t.Fatalf("list by claimant want verified claim got total=%d", total)
	}

	// 乐观锁：旧版本号更新必须落空
	target := rows[0]
	ok, err := repo.UpdateWithVersion(target.ID, target.Version, map[string]interface{}{
		"status": constants.ClaimStatusAwaitingTransfer,
	})
	if err != nil || !ok {
		t.Fatalf("first versioned update failed: ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdateWithVersion(target.ID, target.Version, map[string]interface{}{
		"status": constants.ClaimStatusArrived,
	})
	if err != nil {
		t.Fatalf("second versioned update errored: %v", err)
	}
	if ok {
		t.Fatalf("stale version update must not match any row")
	}
}

func TestPostgresPickupSlotCounting(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPickupRepository(db)

	date := "2026-09-01"
	codes := []string{"AA11BB22", "CC33DD44"}
	for i, code := range codes {
		pickup := &models.Pickup{
			ClaimID:       uint(i + 1),
			ItemID:        uint(i + 1),
			ClaimantID:    uint(i + 1),
			LocationID:    1,
			PickupDate:    date,
			StartTime:     "10:00",
			EndTime:       "11:00",
			ReferenceCode: code,
		}
		if err := repo.Create(pickup); err != nil {
			t.Fatalf("create pickup %d failed: %v", i, err)
		}
	}

	count, err := repo.CountBySlot(1, date, "10:00")
	if err != nil {
		t.Fatalf("count by slot failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("slot count want 2 got %d", count)
	}

	count, err = repo.CountBySlot(1, date, "11:00")
	if err != nil {
		t.Fatalf("count empty slot failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty slot count want 0 got %d", count)
	}

	found, err := repo.GetByReferenceCode("AA11BB22")
	if err != nil {
		t.Fatalf("get by reference code failed: %v", err)
	}
	if found == nil || found.StartTime != "10:00" {
		t.Fatalf("reference code lookup returned %+v", found)
	}
}
