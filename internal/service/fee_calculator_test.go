package service

import (
	"testing"
	"time"

	"github.com/taniyakamboj15/lostandfound-api/internal/models"
)

func testFeeCalculator(t *testing.T) *FeeCalculator {
	t.Helper()
	handling, err := models.NewMoneyFromString("100")
	if err != nil {
		t.Fatalf("parse handling fee failed: %v", err)
	}
	perDiem, err := models.NewMoneyFromString("20")
	if err != nil {
		t.Fatalf("parse per diem rate failed: %v", err)
	}
	return NewFeeCalculator(handling, perDiem, "USD")
}

func TestDaysStored(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "same_instant", now: base, want: 1},
		{name: "partial_day", now: base.Add(6 * time.Hour), want: 1},
		{name: "exactly_one_day", now: base.Add(24 * time.Hour), want: 1},
		{name: "just_over_one_day", now: base.Add(24*time.Hour + time.Minute), want: 2},
		{name: "four_and_half_days", now: base.Add(4*24*time.Hour + 12*time.Hour), want: 5},
		{name: "clock_skew_before_found", now: base.Add(-time.Hour), want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysStored(base, tc.now); got != tc.want {
				t.Fatalf("days want %d got %d", tc.want, got)
			}
		})
	}
}

func TestFeeCalculatorCalculate(t *testing.T) {
	calc := testFeeCalculator(t)
	found := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := found.Add(2*24*time.Hour + time.Hour)

	breakdown := calc.Calculate(found, now)
	if breakdown.DaysStored != 3 {
		t.Fatalf("days stored want 3 got %d", breakdown.DaysStored)
	}
	if breakdown.HandlingFee.String() != "100.00" {
		t.Fatalf("handling fee want 100.00 got %s", breakdown.HandlingFee.String())
	}
	if breakdown.StorageFee.String() != "60.00" {
		t.Fatalf("storage fee want 60.00 got %s", breakdown.StorageFee.String())
	}
	if breakdown.TotalAmount.String() != "160.00" {
		t.Fatalf("total want 160.00 got %s", breakdown.TotalAmount.String())
	}
	if breakdown.Currency != "USD" {
		t.Fatalf("currency want USD got %s", breakdown.Currency)
	}
}
