package inventory

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	inventoryEntity "restaurant.GO/model/entity/inventory"
)

type InventoryRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewInventoryRepository(db *gorm.DB) (*InventoryRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &InventoryRepository{db: db, sqlDB: sqlDB}, nil
}

// GetQuantity returns live stock for one batch+item bucket.
// Uses raw SQL for minimal overhead
func (r *InventoryRepository) GetQuantity(inboundNo, itemName string) (decimal.Decimal, bool) {
	const query = `SELECT quantity FROM inbound_records WHERE inbound_no = ? AND item_name = ? LIMIT 1`
	var qty decimal.NullDecimal
	if err := r.sqlDB.QueryRow(query, inboundNo, itemName).Scan(&qty); err != nil || !qty.Valid {
		return decimal.Zero, false
	}
	return qty.Decimal, true
}

// GetBatchItem returns the full batch row using GORM
func (r *InventoryRepository) GetBatchItem(inboundNo, itemName string) (*inventoryEntity.InboundRecord, error) {
	var rec inventoryEntity.InboundRecord
	err := r.db.Where("inbound_no = ? AND item_name = ?", inboundNo, itemName).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAllByInboundNo returns every item row of one inbound batch.
func (r *InventoryRepository) GetAllByInboundNo(inboundNo string) ([]inventoryEntity.InboundRecord, error) {
	var recs []inventoryEntity.InboundRecord
	err := r.db.Where("inbound_no = ?", inboundNo).Find(&recs).Error
	return recs, err
}

// AggregateByItem sums quality-passed stock across all batches per item.
func (r *InventoryRepository) AggregateByItem() (map[string]decimal.Decimal, error) {
	rows, err := r.db.Table("inbound_records").
		Select("item_name, ROUND(SUM(quantity), 2) AS total_quantity").
		Where("quality_check = ?", true).
		Group("item_name").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var item string
		var qty decimal.Decimal
		if err := rows.Scan(&item, &qty); err != nil {
			continue
		}
		result[item] = qty
	}
	return result, rows.Err()
}

// GetSettings returns per-item warning thresholds keyed by item name.
func (r *InventoryRepository) GetSettings() (map[string]inventoryEntity.InventorySetting, error) {
	var settings []inventoryEntity.InventorySetting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	out := make(map[string]inventoryEntity.InventorySetting, len(settings))
	for _, s := range settings {
		out[s.ItemName] = s
	}
	return out, nil
}

// OutboundByNo loads all item rows of one outbound ticket.
func (r *InventoryRepository) OutboundByNo(outboundNo string) ([]inventoryEntity.OutboundRecord, error) {
	var recs []inventoryEntity.OutboundRecord
	err := r.db.Where("outbound_no = ?", outboundNo).Find(&recs).Error
	return recs, err
}

// OutboundNoExists reports whether an outbound number is already taken.
// Uses raw SQL: called in the number-minting loop.
func (r *InventoryRepository) OutboundNoExists(outboundNo string) bool {
	const query = `SELECT 1 FROM outbound_records WHERE outbound_no = ? LIMIT 1`
	var one int
	err := r.sqlDB.QueryRow(query, outboundNo).Scan(&one)
	return err == nil
}
