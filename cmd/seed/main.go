package main

import (
	"fmt"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/config"
	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 存储点：一个中央仓库 + 两个取件点
	locations := []models.StorageLocation{
		{
			Name:         "Central Warehouse",
			Address:      "1 Depot Road",
			IsPickupSite: false,
		},
		{
			Name:         "Main Station Counter",
			Address:      "Main Station, Hall B",
			IsPickupSite: true,
		},
		{
			Name:         "Airport Service Desk",
			Address:      "Terminal 2, Arrivals",
			IsPickupSite: true,
		},
	}
	for i := range locations {
		if err := models.DB.Where("name = ?", locations[i].Name).
			FirstOrCreate(&locations[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed storage location %s: %v", locations[i].Name, err)
		}
	}

	// 示例拾获物品
	items := []models.Item{
		{
			Name:              "Black Umbrella",
			Description:       "Foldable, wooden handle",
			Category:          "accessories",
			Size:              constants.ItemSizeSmall,
			DateFound:         time.Now().AddDate(0, 0, -3),
			FoundLocation:     "Platform 4",
			StorageLocationID: locations[0].ID,
		},
		{
			Name:              "Blue Backpack",
			Description:       "Contains textbooks",
			Category:          "bags",
			Size:              constants.ItemSizeMedium,
			DateFound:         time.Now().AddDate(0, 0, -7),
			FoundLocation:     "Waiting area",
			StorageLocationID: locations[1].ID,
		},
		{
			Name:              "Folding Bicycle",
			Description:       "Silver frame, 20 inch wheels",
			Category:          "sports",
			Size:              constants.ItemSizeLarge,
			DateFound:         time.Now().AddDate(0, 0, -1),
			FoundLocation:     "Bike rack, east exit",
			StorageLocationID: locations[0].ID,
		},
	}
	for i := range items {
		if err := models.DB.Where("name = ? AND found_location = ?", items[i].Name, items[i].FoundLocation).
			FirstOrCreate(&items[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed item %s: %v", items[i].Name, err)
		}
	}

	fmt.Printf("Seeded %d storage locations and %d items\n", len(locations), len(items))
}
