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

func setupItemRepositoryTest(t *testing.T) (*GormItemRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:item_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StorageLocation{}, &models.Item{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewItemRepository(db), db
}

func TestItemRepositoryListFiltersAndSearch(t *testing.T) {
	repo, _ := setupItemRepositoryTest(t)
	now := time.Now()

	items := []models.Item{
		{
			Name:              "Black Umbrella",
			Description:       "wooden handle",
			Category:          "accessories",
			Size:              constants.ItemSizeSmall,
			DateFound:         now.AddDate(0, 0, -3),
			FoundLocation:     "Platform 4",
			StorageLocationID: 1,
			Attributes:        models.JSON{"color": "black", "brand": "Knirps"},
		},
		{
			Name:              "Backpack",
			Description:       "school bag",
			Category:          "bags",
			Size:              constants.ItemSizeMedium,
			DateFound:         now.AddDate(0, 0, -1),
			FoundLocation:     "Waiting area",
			StorageLocationID: 2,
			Attributes:        models.JSON{"color": "blue"},
		},
	}
	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			t.Fatalf("create item %d failed: %v", i, err)
		}
	}

	rows, total, err := repo.List(ItemListFilter{Page: 1, PageSize: 10, StorageLocationID: 2})
	if err != nil {
		t.Fatalf("list by location failed: %v", err)
	}
	if total != 1 || rows[0].Name != "Backpack" {
		t.Fatalf("list by location want Backpack got total=%d", total)
	}

	rows, total, err = repo.List(ItemListFilter{Page: 1, PageSize: 10, Size: constants.ItemSizeSmall})
	if err != nil {
		t.Fatalf("list by size failed: %v", err)
	}
	if total != 1 || rows[0].Name != "Black Umbrella" {
		t.Fatalf("list by size want Black Umbrella got total=%d", total)
	}

	// 关键字匹配普通文本列
	rows, total, err = repo.List(ItemListFilter{Page: 1, PageSize: 10, Search: "Platform"})
	if err != nil {
		t.Fatalf("list by text search failed: %v", err)
	}
	if total != 1 || rows[0].Name != "Black Umbrella" {
		t.Fatalf("text search want Black Umbrella got total=%d", total)
	}

	// 关键字匹配扩展属性 JSON 列
	rows, total, err = repo.List(ItemListFilter{Page: 1, PageSize: 10, Search: "Knirps"})
	if err != nil {
		t.Fatalf("list by attribute search failed: %v", err)
	}
	if total != 1 || rows[0].Name != "Black Umbrella" {
		t.Fatalf("attribute search want Black Umbrella got total=%d", total)
	}

	// 最近拾获的排在前面
	rows, total, err = repo.List(ItemListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 2 || rows[0].Name != "Backpack" {
		t.Fatalf("list all want Backpack first got total=%d first=%s", total, rows[0].Name)
	}
}

func TestItemRepositoryUpdateStorageLocation(t *testing.T) {
	repo, db := setupItemRepositoryTest(t)

	item := models.Item{
		Name:              "Suitcase",
		Size:              constants.ItemSizeLarge,
		DateFound:         time.Now(),
		StorageLocationID: 1,
	}
	if err := repo.Create(&item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	if err := repo.UpdateStorageLocation(item.ID, 5); err != nil {
		t.Fatalf("update storage location failed: %v", err)
	}

	var reloaded models.Item
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if reloaded.StorageLocationID != 5 {
		t.Fatalf("storage location want 5 got %d", reloaded.StorageLocationID)
	}
}
