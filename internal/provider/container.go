package provider

import (
	"github.com/taniyakamboj15/lostandfound-api/internal/cache"
	"github.com/taniyakamboj15/lostandfound-api/internal/config"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/models"
	"github.com/taniyakamboj15/lostandfound-api/internal/payment/gateway"
	"github.com/taniyakamboj15/lostandfound-api/internal/queue"
	"github.com/taniyakamboj15/lostandfound-api/internal/repository"
	"github.com/taniyakamboj15/lostandfound-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ClaimRepo           repository.ClaimRepository
	ClaimTimelineRepo   repository.ClaimTimelineRepository
	ItemRepo            repository.ItemRepository
	StorageLocationRepo repository.StorageLocationRepository
	TransferRepo        repository.TransferRepository
	PickupRepo          repository.PickupRepository
	PaymentIntentRepo   repository.PaymentIntentRepository
	NotificationRepo    repository.NotificationRepository

	// Services
	ClaimService    *service.ClaimService
	PaymentService  *service.PaymentService
	TransferService *service.TransferService
	PickupService   *service.PickupService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ClaimRepo = repository.NewClaimRepository(db)
	c.ClaimTimelineRepo = repository.NewClaimTimelineRepository(db)
	c.ItemRepo = repository.NewItemRepository(db)
	c.StorageLocationRepo = repository.NewStorageLocationRepository(db)
	c.TransferRepo = repository.NewTransferRepository(db)
	c.PickupRepo = repository.NewPickupRepository(db)
	c.PaymentIntentRepo = repository.NewPaymentIntentRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initServices() {
	handlingFee, err := models.NewMoneyFromString(c.Config.Fees.HandlingFee)
	if err != nil {
		logger.Errorw("provider_parse_handling_fee_failed", "value", c.Config.Fees.HandlingFee, "error", err)
		panic(err)
	}
	perDiemRate, err := models.NewMoneyFromString(c.Config.Fees.PerDiemRate)
	if err != nil {
		logger.Errorw("provider_parse_per_diem_rate_failed", "value", c.Config.Fees.PerDiemRate, "error", err)
		panic(err)
	}
	feeCalc := service.NewFeeCalculator(handlingFee, perDiemRate, c.Config.Gateway.Currency)

	gatewayCfg := &gateway.Config{
		APIBaseURL: c.Config.Gateway.APIBaseURL,
		SecretKey:  c.Config.Gateway.SecretKey,
		Currency:   c.Config.Gateway.Currency,
		TimeoutMS:  c.Config.Gateway.TimeoutMS,
	}

	c.ClaimService = service.NewClaimService(
		c.ClaimRepo,
		c.ClaimTimelineRepo,
		c.ItemRepo,
		c.StorageLocationRepo,
		c.TransferRepo,
		feeCalc,
		c.QueueClient,
	)
	c.PaymentService = service.NewPaymentService(
		c.ClaimRepo,
		c.ClaimTimelineRepo,
		c.ItemRepo,
		c.PaymentIntentRepo,
		feeCalc,
		gatewayCfg,
		c.QueueClient,
	)
	c.TransferService = service.NewTransferService(c.TransferRepo, c.ItemRepo, c.ClaimService)
	c.PickupService = service.NewPickupService(
		c.PickupRepo,
		c.StorageLocationRepo,
		c.ClaimService,
		service.PickupSlotConfig{
			DayStart:         c.Config.Pickup.DayStart,
			DayEnd:           c.Config.Pickup.DayEnd,
			SlotMinutes:      c.Config.Pickup.SlotMinutes,
			SlotCapacity:     c.Config.Pickup.SlotCapacity,
			ReminderLeadHour: c.Config.Pickup.ReminderLeadHour,
		},
		c.QueueClient,
	)
}
