package repository

import "time"

// ClaimListFilter 查询认领列表的过滤条件
type ClaimListFilter struct {
	Page          int
	PageSize      int
	ClaimantID    uint
	ItemID        uint
	Status        string
	PaymentStatus string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// ItemListFilter 查询失物列表的过滤条件
type ItemListFilter struct {
	Page              int
	PageSize          int
	StorageLocationID uint
	Category          string
	Size              string
	Search            string
}

// TransferListFilter 查询调拨列表的过滤条件
type TransferListFilter struct {
	Page           int
	PageSize       int
	ClaimID        uint
	Status         string
	FromLocationID uint
	ToLocationID   uint
}

// PickupListFilter 查询取件预约列表的过滤条件
type PickupListFilter struct {
	Page       int
	PageSize   int
	ClaimID    uint
	LocationID uint
	PickupDate string
	Completed  *bool
}
