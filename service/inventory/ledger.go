package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	inventoryEntity "restaurant.GO/model/entity/inventory"
	inventoryRepo "restaurant.GO/model/repository/inventory"
)

// Warning levels for aggregated stock, ordered by severity.
const (
	WarningRed    = "red"
	WarningYellow = "yellow"
	WarningNormal = "normal"
)

var (
	defaultRedThreshold    = decimal.Zero
	defaultYellowThreshold = decimal.NewFromInt(1)
)

// Ledger is the single authority over inbound_records.quantity. Every
// stock deduction goes through Deduct; nothing else in the codebase
// writes that column after intake.
type Ledger struct {
	db   *gorm.DB
	repo *inventoryRepo.InventoryRepository
}

func NewLedger(db *gorm.DB) (*Ledger, error) {
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db, repo: repo}, nil
}

// Quantity returns the live stock of one batch+item bucket.
func (l *Ledger) Quantity(inboundNo, itemName string) (decimal.Decimal, bool) {
	return l.repo.GetQuantity(inboundNo, itemName)
}

// Deduct atomically removes amount from a batch+item bucket inside tx.
// The UPDATE carries a quantity >= amount guard, so concurrent
// deductions against the same bucket can never drive stock negative:
// the loser of the race simply matches zero rows and gets an
// insufficient-stock error. The stored quantity is rounded to two
// decimal places on every write.
func (l *Ledger) Deduct(tx *gorm.DB, inboundNo, itemName string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: item %s amount %s must be positive", ErrInvalidQuantity, itemName, amount)
	}

	res := tx.Exec(
		`UPDATE inbound_records SET quantity = ROUND(quantity - ?, 2) WHERE inbound_no = ? AND item_name = ? AND quantity >= ?`,
		amount, inboundNo, itemName, amount,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		available, ok := l.repo.GetQuantity(inboundNo, itemName)
		if !ok {
			return fmt.Errorf("%w: item %s has no stock record in batch %s", ErrInsufficientStock, itemName, inboundNo)
		}
		return fmt.Errorf("%w: item %s in batch %s has %s available, requested %s",
			ErrInsufficientStock, itemName, inboundNo, available, amount)
	}
	return nil
}

// AggregateByItem sums quality-passed stock across all batches.
func (l *Ledger) AggregateByItem() (map[string]decimal.Decimal, error) {
	return l.repo.AggregateByItem()
}

// WarningLevel classifies an aggregated item quantity. When the item
// has an inventory_settings row its own thresholds apply; otherwise
// zero stock is red and one unit or less is yellow.
func WarningLevel(qty decimal.Decimal, setting *inventoryEntity.InventorySetting) string {
	red, yellow := defaultRedThreshold, defaultYellowThreshold
	if setting != nil {
		red, yellow = setting.WarningThresholdRed, setting.WarningThresholdYellow
	}
	switch {
	case qty.LessThanOrEqual(red):
		return WarningRed
	case qty.LessThanOrEqual(yellow):
		return WarningYellow
	default:
		return WarningNormal
	}
}

// StockSummary is one line of the aggregated stock view.
type StockSummary struct {
	ItemName     string          `json:"item_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	WarningLevel string          `json:"warning_level"`
}

// Summary aggregates stock per item and attaches warning levels.
func (l *Ledger) Summary() ([]StockSummary, error) {
	totals, err := l.AggregateByItem()
	if err != nil {
		return nil, err
	}
	settings, err := l.repo.GetSettings()
	if err != nil {
		return nil, err
	}

	out := make([]StockSummary, 0, len(totals))
	for item, qty := range totals {
		var setting *inventoryEntity.InventorySetting
		if s, ok := settings[item]; ok {
			setting = &s
		}
		out = append(out, StockSummary{
			ItemName:     item,
			Quantity:     qty,
			WarningLevel: WarningLevel(qty, setting),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}
