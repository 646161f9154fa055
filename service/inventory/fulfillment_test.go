package inventory

import (
	"errors"
	"strings"
	"testing"

	inventoryEntity "restaurant.GO/model/entity/inventory"
)

func TestFulfillPartialSplitsTicket(t *testing.T) {
	db := newTestDB(t)
	engine, err := NewFulfillmentEngine(db)
	if err != nil {
		t.Fatal(err)
	}
	seedBatch(t, db, "IN001", "Chili", "100")
	seedOutboundRow(t, db, "OUT001", "IN001", "Chili", "100")

	outcome, err := engine.Fulfill(FulfillRequest{
		OutboundNo: "OUT001",
		Items:      []RequestedItem{{ItemName: "Chili", Quantity: mustDecimal(t, "30")}},
		Receiver:   "kitchen",
		Approver:   "admin",
	})
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if !outcome.Partial {
		t.Fatal("expected a partial fulfillment")
	}
	if outcome.FulfilledNo == "OUT001" || !strings.HasPrefix(outcome.FulfilledNo, "OUT") {
		t.Fatalf("bad fulfilled ticket number %q", outcome.FulfilledNo)
	}

	// original row keeps its number, now owing 70
	var original inventoryEntity.OutboundRecord
	if err := db.Where("outbound_no = ?", "OUT001").First(&original).Error; err != nil {
		t.Fatal(err)
	}
	if original.Status != inventoryEntity.OutboundStatusPending {
		t.Errorf("original status %s, want pending", original.Status)
	}
	if !original.Quantity.Equal(mustDecimal(t, "70")) {
		t.Errorf("original quantity %s, want 70", original.Quantity)
	}

	var fulfilled inventoryEntity.OutboundRecord
	if err := db.Where("outbound_no = ?", outcome.FulfilledNo).First(&fulfilled).Error; err != nil {
		t.Fatal(err)
	}
	if fulfilled.Status != inventoryEntity.OutboundStatusFulfilled {
		t.Errorf("fulfilled status %s", fulfilled.Status)
	}
	if !fulfilled.Quantity.Equal(mustDecimal(t, "30")) {
		t.Errorf("fulfilled quantity %s, want 30", fulfilled.Quantity)
	}
	if fulfilled.OutboundTime == nil {
		t.Error("fulfilled row missing outbound time")
	}
	if fulfilled.Receiver != "kitchen" {
		t.Errorf("receiver %q", fulfilled.Receiver)
	}

	stock, _ := engine.ledger.Quantity("IN001", "Chili")
	if !stock.Equal(mustDecimal(t, "70")) {
		t.Errorf("batch stock %s, want 70", stock)
	}
}

func TestFulfillAllInPlace(t *testing.T) {
	db := newTestDB(t)
	engine, err := NewFulfillmentEngine(db)
	if err != nil {
		t.Fatal(err)
	}
	seedBatch(t, db, "IN001", "Chili", "70")
	seedOutboundRow(t, db, "OUT001", "IN001", "Chili", "70")

	outcome, err := engine.Fulfill(FulfillRequest{OutboundNo: "OUT001", Receiver: "kitchen"})
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if outcome.Partial {
		t.Fatal("full fulfillment must not split")
	}
	if outcome.FulfilledNo != "OUT001" {
		t.Fatalf("fulfilled under %q, want the original number", outcome.FulfilledNo)
	}

	var count int64
	db.Model(&inventoryEntity.OutboundRecord{}).Count(&count)
	if count != 1 {
		t.Fatalf("%d outbound rows, want the original row only", count)
	}
	var row inventoryEntity.OutboundRecord
	db.Where("outbound_no = ?", "OUT001").First(&row)
	if row.Status != inventoryEntity.OutboundStatusFulfilled {
		t.Errorf("status %s, want fulfilled", row.Status)
	}
	if !row.Quantity.Equal(mustDecimal(t, "70")) {
		t.Errorf("quantity %s, want unchanged 70", row.Quantity)
	}

	stock, _ := engine.ledger.Quantity("IN001", "Chili")
	if !stock.Equal(mustDecimal(t, "0")) {
		t.Errorf("batch stock %s, want 0", stock)
	}
	summary, err := engine.ledger.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) != 1 || summary[0].WarningLevel != WarningRed {
		t.Errorf("summary %+v, want Chili at red", summary)
	}
}

func TestFulfillExceedsStock(t *testing.T) {
	db := newTestDB(t)
	engine, err := NewFulfillmentEngine(db)
	if err != nil {
		t.Fatal(err)
	}
	seedBatch(t, db, "IN001", "Chili", "0")
	seedOutboundRow(t, db, "OUT001", "IN001", "Chili", "10")

	_, err = engine.Fulfill(FulfillRequest{
		OutboundNo: "OUT001",
		Items:      []RequestedItem{{ItemName: "Chili", Quantity: mustDecimal(t, "10")}},
	})
	if !errors.Is(err, ErrQuantityExceedsAvailable) {
		t.Fatalf("got %v, want quantity exceeds available", err)
	}

	var row inventoryEntity.OutboundRecord
	db.Where("outbound_no = ?", "OUT001").First(&row)
	if row.Status != inventoryEntity.OutboundStatusPending || !row.Quantity.Equal(mustDecimal(t, "10")) {
		t.Errorf("row mutated on failed fulfillment: %+v", row)
	}
}

func TestFulfillValidation(t *testing.T) {
	db := newTestDB(t)
	engine, err := NewFulfillmentEngine(db)
	if err != nil {
		t.Fatal(err)
	}
	seedBatch(t, db, "IN001", "Chili", "100")
	seedOutboundRow(t, db, "OUT001", "IN001", "Chili", "50")

	if _, err := engine.Fulfill(FulfillRequest{OutboundNo: "OUT404"}); !errors.Is(err, ErrOutboundNotFound) {
		t.Errorf("unknown ticket: got %v", err)
	}
	_, err = engine.Fulfill(FulfillRequest{
		OutboundNo: "OUT001",
		Items:      []RequestedItem{{ItemName: "Garlic", Quantity: mustDecimal(t, "1")}},
	})
	if !errors.Is(err, ErrItemNotInOutbound) {
		t.Errorf("foreign item: got %v", err)
	}
	_, err = engine.Fulfill(FulfillRequest{
		OutboundNo: "OUT001",
		Items:      []RequestedItem{{ItemName: "Chili", Quantity: mustDecimal(t, "0")}},
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: got %v", err)
	}
	_, err = engine.Fulfill(FulfillRequest{
		OutboundNo: "OUT001",
		Items:      []RequestedItem{{ItemName: "Chili", Quantity: mustDecimal(t, "60")}},
	})
	if !errors.Is(err, ErrQuantityExceedsAvailable) {
		t.Errorf("over ticket quantity: got %v", err)
	}
}

func TestFulfillRejectsNonPendingTicket(t *testing.T) {
	db := newTestDB(t)
	engine, err := NewFulfillmentEngine(db)
	if err != nil {
		t.Fatal(err)
	}
	seedBatch(t, db, "IN001", "Chili", "100")
	seedOutboundRow(t, db, "OUT001", "IN001", "Chili", "50")
	db.Model(&inventoryEntity.OutboundRecord{}).
		Where("outbound_no = ?", "OUT001").
		Update("status", inventoryEntity.OutboundStatusCancelled)

	if _, err := engine.Fulfill(FulfillRequest{OutboundNo: "OUT001"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("got %v, want invalid state", err)
	}
}

func TestCancel(t *testing.T) {
	db := newTestDB(t)
	engine, err := NewFulfillmentEngine(db)
	if err != nil {
		t.Fatal(err)
	}
	seedBatch(t, db, "IN001", "Chili", "100")
	seedOutboundRow(t, db, "OUT001", "IN001", "Chili", "50")

	if err := engine.Cancel("OUT001", "not needed"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	var row inventoryEntity.OutboundRecord
	db.Where("outbound_no = ?", "OUT001").First(&row)
	if row.Status != inventoryEntity.OutboundStatusCancelled {
		t.Errorf("status %s, want cancelled", row.Status)
	}
	if row.Remarks != "not needed" {
		t.Errorf("remarks %q", row.Remarks)
	}
	// stock untouched
	stock, _ := engine.ledger.Quantity("IN001", "Chili")
	if !stock.Equal(mustDecimal(t, "100")) {
		t.Errorf("stock %s, want 100", stock)
	}
	// cancelled is terminal
	if err := engine.Cancel("OUT001", ""); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second cancel: got %v, want invalid state", err)
	}
}

func TestSeedOutboundIdempotent(t *testing.T) {
	db := newTestDB(t)
	engine, err := NewFulfillmentEngine(db)
	if err != nil {
		t.Fatal(err)
	}
	seedBatch(t, db, "IN001", "Chili", "100")
	seedBatch(t, db, "IN001", "Garlic", "20")
	// quality-failed and empty batches are never seeded
	db.Create(&inventoryEntity.InboundRecord{
		InboundNo: "IN002", PurchaseNo: "PO1", ItemName: "Salt",
		Quantity: mustDecimal(t, "5"), Unit: "kg", QualityCheck: false, Inspector: "admin",
	})
	seedBatch(t, db, "IN003", "Pepper", "0")

	first, err := engine.SeedOutbound()
	if err != nil {
		t.Fatal(err)
	}
	if first.Imported != 2 || first.Skipped != 0 {
		t.Fatalf("first run imported=%d skipped=%d, want 2/0", first.Imported, first.Skipped)
	}

	second, err := engine.SeedOutbound()
	if err != nil {
		t.Fatal(err)
	}
	if second.Imported != 0 || second.Skipped != 2 {
		t.Fatalf("second run imported=%d skipped=%d, want 0/2", second.Imported, second.Skipped)
	}
	var count int64
	db.Model(&inventoryEntity.OutboundRecord{}).Count(&count)
	if count != 2 {
		t.Fatalf("%d outbound rows, want 2", count)
	}
}
