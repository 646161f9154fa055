package inventory

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	inventoryEntity "restaurant.GO/model/entity/inventory"
	purchaseEntity "restaurant.GO/model/entity/purchase"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&purchaseEntity.PurchaseOrder{},
		&purchaseEntity.PurchaseOrderItem{},
		&inventoryEntity.InboundRecord{},
		&inventoryEntity.OutboundRecord{},
		&inventoryEntity.InventorySetting{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedBatch(t *testing.T, db *gorm.DB, inboundNo, item string, qty string) {
	t.Helper()
	rec := inventoryEntity.InboundRecord{
		InboundNo:    inboundNo,
		PurchaseNo:   "PO20260829001",
		ItemName:     item,
		Quantity:     mustDecimal(t, qty),
		Unit:         "kg",
		InboundTime:  time.Now(),
		QualityCheck: true,
		Inspector:    "admin",
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed batch %s/%s: %v", inboundNo, item, err)
	}
}

func seedOutboundRow(t *testing.T, db *gorm.DB, outboundNo, inboundNo, item, qty string) {
	t.Helper()
	rec := inventoryEntity.OutboundRecord{
		OutboundNo: outboundNo,
		InboundNo:  inboundNo,
		ItemName:   item,
		Quantity:   mustDecimal(t, qty),
		Unit:       "kg",
		Status:     inventoryEntity.OutboundStatusPending,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed outbound %s/%s: %v", outboundNo, item, err)
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}
