package purchase

import (
	"database/sql"

	"gorm.io/gorm"

	purchaseEntity "restaurant.GO/model/entity/purchase"
)

type PurchaseOrderRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) (*PurchaseOrderRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &PurchaseOrderRepository{db: db, sqlDB: sqlDB}, nil
}

// FindByID loads one order with its item rows.
func (r *PurchaseOrderRepository) FindByID(orderID string) (*purchaseEntity.PurchaseOrder, error) {
	var order purchaseEntity.PurchaseOrder
	err := r.db.Preload("Items").Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetStatus returns just the status of one order.
// Uses raw SQL: called per order inside batch operations.
func (r *PurchaseOrderRepository) GetStatus(orderID string) (string, bool) {
	const query = `SELECT status FROM purchase_orders WHERE order_id = ? LIMIT 1`
	var status sql.NullString
	if err := r.sqlDB.QueryRow(query, orderID).Scan(&status); err != nil || !status.Valid {
		return "", false
	}
	return status.String, true
}

// Create inserts an order and its items in one transaction.
func (r *PurchaseOrderRepository) Create(order *purchaseEntity.PurchaseOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// UpdateStatus writes a new status and audit fields.
func (r *PurchaseOrderRepository) UpdateStatus(orderID, status, actor string) error {
	return r.UpdateStatusTx(r.db, orderID, status, actor)
}

// UpdateStatusTx is UpdateStatus inside a caller-owned transaction.
func (r *PurchaseOrderRepository) UpdateStatusTx(tx *gorm.DB, orderID, status, actor string) error {
	return tx.Model(&purchaseEntity.PurchaseOrder{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{"status": status, "updated_by": actor}).Error
}

// Delete removes an order and its items. Allowed regardless of status.
func (r *PurchaseOrderRepository) Delete(orderID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&purchaseEntity.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", orderID).Delete(&purchaseEntity.PurchaseOrder{}).Error
	})
}

// PendingInboundRow is one order awaiting inbound intake.
type PendingInboundRow struct {
	PurchaseNo   string `json:"purchase_no"`
	ProductName  string `json:"product_name"`
	SupplierName string `json:"supplier_name"`
	ApprovedTime string `json:"approved_time"`
	Status       string `json:"status"`
}

// PendingInbound lists orders in a receivable status that have no
// quality-passed inbound record yet.
func (r *PurchaseOrderRepository) PendingInbound() ([]PendingInboundRow, error) {
	const query = `
		SELECT DISTINCT
			po.order_id AS purchase_no,
			po.status,
			po.created_at AS approved_time,
			COALESCE(s.name, '') AS supplier_name,
			GROUP_CONCAT(poi.item_name || '(' || poi.quantity || poi.unit || ')') AS product_name
		FROM purchase_orders po
		JOIN purchase_order_items poi ON po.order_id = poi.order_id
		LEFT JOIN suppliers s ON po.supplier_id = s.code
		WHERE po.status IN ('reviewed', 'received', 'paid')
		AND po.order_id NOT IN (
			SELECT DISTINCT purchase_no
			FROM inbound_records
			WHERE quality_check = 1
		)
		GROUP BY po.order_id
		ORDER BY
			CASE po.status
				WHEN 'reviewed' THEN 1
				WHEN 'received' THEN 2
				WHEN 'paid' THEN 3
			END,
			po.created_at DESC`

	var rows []PendingInboundRow
	err := r.db.Raw(query).Scan(&rows).Error
	return rows, err
}
