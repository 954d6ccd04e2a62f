package constants

// 认领状态常量
const (
	ClaimStatusFiled                  = "filed"
	ClaimStatusIdentityProofRequested = "identity_proof_requested"
	ClaimStatusVerified               = "verified"
	ClaimStatusAwaitingTransfer       = "awaiting_transfer"
	ClaimStatusAwaitingRecovery       = "awaiting_recovery"
	ClaimStatusInTransit              = "in_transit"
	ClaimStatusArrived                = "arrived"
	ClaimStatusPickupBooked           = "pickup_booked"
	ClaimStatusReturned               = "returned"
	ClaimStatusRejected               = "rejected"
)

// 认领支付状态常量
const (
	ClaimPaymentStatusPending = "pending"
	ClaimPaymentStatusPaid    = "paid"
	ClaimPaymentStatusFailed  = "failed"
)

// 调拨状态常量
const (
	TransferStatusPending          = "pending"
	TransferStatusRecoveryRequired = "recovery_required"
	TransferStatusInTransit        = "in_transit"
	TransferStatusArrived          = "arrived"
	TransferStatusCancelled        = "cancelled"
)

// 支付意向状态常量
const (
	PaymentIntentStatusReserved  = "reserved"
	PaymentIntentStatusCreated   = "created"
	PaymentIntentStatusSucceeded = "succeeded"
)

// 物品尺寸常量
const (
	ItemSizeSmall  = "small"
	ItemSizeMedium = "medium"
	ItemSizeLarge  = "large"
)

// 时间线动作常量
const (
	TimelineActionClaimFiled        = "claim_filed"
	TimelineActionProofRequested    = "identity_proof_requested"
	TimelineActionClaimVerified     = "claim_verified"
	TimelineActionClaimRejected     = "claim_rejected"
	TimelineActionPaymentConfirmed  = "payment_confirmed"
	TimelineActionTransferCreated   = "transfer_created"
	TimelineActionTransferRecovery  = "transfer_recovery_required"
	TimelineActionTransferShipped   = "transfer_shipped"
	TimelineActionTransferCancelled = "transfer_cancelled"
	TimelineActionItemArrived       = "item_arrived"
	TimelineActionPickupBooked      = "pickup_booked"
	TimelineActionPickupVerified    = "pickup_verified"
	TimelineActionClaimReturned     = "claim_returned"
)

// 时间线默认操作者常量
const (
	TimelineActorClaimant = "claimant"
	TimelineActorSystem   = "system"
	TimelineActorStaff    = "staff"
)

// 通知事件常量
const (
	NotificationEventClaimStatusChanged = "claim_status_changed"
	NotificationEventPickupReminder     = "pickup_reminder"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskClaimStatusNotify = "claim:status_notify"
	TaskPickupReminder    = "pickup:reminder"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "lf"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}
