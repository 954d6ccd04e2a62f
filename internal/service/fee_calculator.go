package service

import (
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/models"

	"github.com/shopspring/decimal"
)

// FeeCalculator 认领费用计算器
type FeeCalculator struct {
	handlingFee models.Money
	perDiemRate models.Money
	currency    string
}

// NewFeeCalculator 创建费用计算器
func NewFeeCalculator(handlingFee, perDiemRate models.Money, currency string) *FeeCalculator {
	return &FeeCalculator{
		handlingFee: handlingFee,
		perDiemRate: perDiemRate,
		currency:    currency,
	}
}

// FeeBreakdown 费用明细
type FeeBreakdown struct {
	HandlingFee models.Money `json:"handling_fee"`
	StorageFee  models.Money `json:"storage_fee"`
	TotalAmount models.Money `json:"total_amount"`
	DaysStored  int          `json:"days_stored"`
	PerDiemRate models.Money `json:"per_diem_rate"`
	Currency    string       `json:"currency"`
}

// Calculate 按拾获日期计算费用明细，仓储天数不足一天按一天计。
func (c *FeeCalculator) Calculate(dateFound time.Time, now time.Time) FeeBreakdown {
	days := daysStored(dateFound, now)
	storage := models.NewMoneyFromDecimal(c.perDiemRate.Decimal.Mul(decimal.NewFromInt(int64(days))))
	total := models.NewMoneyFromDecimal(c.handlingFee.Decimal.Add(storage.Decimal))
	return FeeBreakdown{
		HandlingFee: c.handlingFee,
		StorageFee:  storage,
		TotalAmount: total,
		DaysStored:  days,
		PerDiemRate: c.perDiemRate,
		Currency:    c.currency,
	}
}

// daysStored 计算仓储天数（向上取整，最少 1 天）。
func daysStored(dateFound time.Time, now time.Time) int {
	if now.Before(dateFound) {
		return 1
	}
	elapsed := now.Sub(dateFound)
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
