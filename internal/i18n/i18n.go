package i18n

import (
	"fmt"
	"strings"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"

	"github.com/gin-gonic/gin"
)

// ResolveLocale 解析请求语言（?lang= 优先，其次 Accept-Language）。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		if normalized := normalizeLocale(lang); normalized != "" {
			return normalized
		}
	}
	header := strings.TrimSpace(c.GetHeader("Accept-Language"))
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if normalized := normalizeLocale(tag); normalized != "" {
			return normalized
		}
	}
	return constants.LocaleEnUS
}

// T 返回指定语言的文案，缺失时回退英文，再回退 key 本身。
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[constants.LocaleEnUS][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回格式化后的本地化文案。
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(tag string) string {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	switch {
	case normalized == "":
		return ""
	case strings.HasPrefix(normalized, "zh"):
		return constants.LocaleZhCN
	case strings.HasPrefix(normalized, "en"):
		return constants.LocaleEnUS
	default:
		return ""
	}
}

var messages = map[string]map[string]string{
	constants.LocaleEnUS: {
		"msg.payment_confirmed":              "payment confirmed",
		"error.bad_request":                  "invalid request parameters",
		"error.internal":                     "internal server error",
		"error.rate_limited":                 "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":       "rate limiter unavailable",
		"error.verify_too_many":              "too many verification attempts, retry in %d seconds",
		"error.claim_not_found":              "claim not found",
		"error.claim_create_failed":          "failed to file claim",
		"error.claim_fetch_failed":           "failed to load claim",
		"error.claim_update_failed":          "failed to update claim",
		"error.claim_list_failed":            "failed to list claims",
		"error.item_not_found":               "item not found",
		"error.item_list_failed":             "failed to list items",
		"error.item_register_failed":         "failed to register item",
		"error.storage_location_not_found":   "storage location not found",
		"error.storage_location_list_failed": "failed to list storage locations",
		"error.invalid_transition":           "claim state transition not allowed",
		"error.rejection_reason_required":    "rejection reason is required",
		"error.claim_not_verified":           "claim has not been verified",
		"error.claim_not_ready":              "claim is not ready for this step",
		"error.already_paid":                 "claim fee has already been paid",
		"error.concurrent_modification":      "record was modified concurrently, please retry",
		"error.gateway_unavailable":          "payment gateway unavailable, please retry",
		"error.gateway_config_invalid":       "payment gateway misconfigured",
		"error.payment_not_confirmed":        "payment not confirmed by gateway",
		"error.payment_intent_not_found":     "payment intent not found",
		"error.payment_intent_failed":        "failed to create payment intent",
		"error.payment_verify_failed":        "failed to verify payment",
		"error.idempotency_key_required":     "Idempotency-Key header is required",
		"error.stale_idempotency_key":        "idempotency key has already been used",
		"error.invalid_transfer_transition":  "transfer state transition not allowed",
		"error.carrier_info_required":        "carrier info is required for shipping",
		"error.transfer_not_found":           "transfer not found",
		"error.transfer_active_exists":       "claim already has an active transfer",
		"error.transfer_update_failed":       "failed to update transfer",
		"error.date_invalid":                 "date must be formatted as YYYY-MM-DD",
		"error.slot_unavailable":             "pickup slot is unavailable",
		"error.pickup_not_found":             "pickup not found",
		"error.pickup_exists":                "claim already has a pickup booked",
		"error.pickup_book_failed":           "failed to book pickup",
		"error.pickup_list_failed":           "failed to load pickup slots",
		"error.pickup_not_verified":          "pickup has not been verified",
		"error.pickup_verify_failed":         "failed to verify pickup code",
		"error.pickup_complete_failed":       "failed to complete pickup",
		"error.reference_code_invalid":       "reference code must be 8 letters or digits",
		"error.code_not_found":               "reference code not found",
		"error.reference_code_mismatch":      "reference code does not match this pickup",
		"error.already_verified":             "pickup has already been verified",
		"error.already_completed":            "pickup has already been completed",
	},
	constants.LocaleZhCN: {
		"msg.payment_confirmed":              "支付已确认",
		"error.bad_request":                  "请求参数无效",
		"error.internal":                     "服务器内部错误",
		"error.rate_limited":                 "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":       "限流服务不可用",
		"error.verify_too_many":              "核销尝试过于频繁，请 %d 秒后重试",
		"error.claim_not_found":              "认领不存在",
		"error.claim_create_failed":          "认领提交失败",
		"error.claim_fetch_failed":           "认领加载失败",
		"error.claim_update_failed":          "认领更新失败",
		"error.claim_list_failed":            "认领列表加载失败",
		"error.item_not_found":               "物品不存在",
		"error.item_list_failed":             "失物列表加载失败",
		"error.item_register_failed":         "失物登记失败",
		"error.storage_location_not_found":   "存储点不存在",
		"error.storage_location_list_failed": "存储点列表加载失败",
		"error.invalid_transition":           "认领状态流转不允许",
		"error.rejection_reason_required":    "驳回原因必填",
		"error.claim_not_verified":           "认领尚未通过核验",
		"error.claim_not_ready":              "认领尚未满足该步骤条件",
		"error.already_paid":                 "认领费用已支付",
		"error.concurrent_modification":      "记录已被并发修改，请重试",
		"error.gateway_unavailable":          "支付网关不可用，请重试",
		"error.gateway_config_invalid":       "支付网关配置无效",
		"error.payment_not_confirmed":        "支付网关未确认支付",
		"error.payment_intent_not_found":     "支付意向不存在",
		"error.payment_intent_failed":        "支付意向创建失败",
		"error.payment_verify_failed":        "支付核验失败",
		"error.idempotency_key_required":     "缺少 Idempotency-Key 请求头",
		"error.stale_idempotency_key":        "幂等键已被使用",
		"error.invalid_transfer_transition":  "调拨状态流转不允许",
		"error.carrier_info_required":        "发运必须填写承运信息",
		"error.transfer_not_found":           "调拨记录不存在",
		"error.transfer_active_exists":       "该认领已存在进行中的调拨",
		"error.transfer_update_failed":       "调拨更新失败",
		"error.date_invalid":                 "日期格式应为 YYYY-MM-DD",
		"error.slot_unavailable":             "取件时段不可用",
		"error.pickup_not_found":             "取件预约不存在",
		"error.pickup_exists":                "该认领已存在取件预约",
		"error.pickup_book_failed":           "取件预约失败",
		"error.pickup_list_failed":           "取件时段加载失败",
		"error.pickup_not_verified":          "取件尚未完成核销",
		"error.pickup_verify_failed":         "取件码核销失败",
		"error.pickup_complete_failed":       "取件交付失败",
		"error.reference_code_invalid":       "取件码必须为 8 位字母或数字",
		"error.code_not_found":               "取件码不存在",
		"error.reference_code_mismatch":      "取件码与该预约不匹配",
		"error.already_verified":             "取件已完成核销",
		"error.already_completed":            "取件已完成交付",
	},
}
