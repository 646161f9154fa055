package inventory

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	inventoryEntity "restaurant.GO/model/entity/inventory"
	purchaseEntity "restaurant.GO/model/entity/purchase"
)

func seedOrder(t *testing.T, db *gorm.DB, orderID, status string) {
	t.Helper()
	order := purchaseEntity.PurchaseOrder{
		OrderID:    orderID,
		SupplierID: "SUP001",
		OrderDate:  "2026-08-29",
		Status:     status,
		CreatedBy:  "admin",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order %s: %v", orderID, err)
	}
}

func TestCreateInbound(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewIntakeService(db)
	if err != nil {
		t.Fatal(err)
	}
	seedOrder(t, db, "PO20260829000001", purchaseEntity.StatusReviewed)

	records, err := svc.CreateInbound(IntakeRequest{
		PurchaseNo: "PO20260829000001",
		Items: []IntakeItem{
			{ItemName: "Chili", Quantity: mustDecimal(t, "100"), Unit: "kg", StorageLocation: "A-3-2-05"},
			{ItemName: "Garlic", Quantity: mustDecimal(t, "20.555"), Unit: "kg"},
		},
		QualityCheck: true,
		Inspector:    "admin",
		Actor:        "admin",
	})
	if err != nil {
		t.Fatalf("create inbound: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("%d records, want 2", len(records))
	}
	// batch number is IN + last 11 chars of the order id
	if records[0].InboundNo != "IN60829000001" {
		t.Errorf("inbound no %q", records[0].InboundNo)
	}
	if !records[1].Quantity.Equal(mustDecimal(t, "20.56")) {
		t.Errorf("quantity %s, want rounded 20.56", records[1].Quantity)
	}

	// quality pass moves the order to inbound
	var order purchaseEntity.PurchaseOrder
	db.Where("order_id = ?", "PO20260829000001").First(&order)
	if order.Status != purchaseEntity.StatusInbound {
		t.Errorf("order status %s, want inbound", order.Status)
	}
}

func TestCreateInboundRejectsWrongStatus(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewIntakeService(db)
	if err != nil {
		t.Fatal(err)
	}
	seedOrder(t, db, "PO20260829000002", purchaseEntity.StatusDraft)

	_, err = svc.CreateInbound(IntakeRequest{
		PurchaseNo: "PO20260829000002",
		Items:      []IntakeItem{{ItemName: "Chili", Quantity: mustDecimal(t, "10"), Unit: "kg"}},
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("got %v, want invalid state", err)
	}
}

func TestCreateInboundDuplicateItem(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewIntakeService(db)
	if err != nil {
		t.Fatal(err)
	}
	seedOrder(t, db, "PO20260829000003", purchaseEntity.StatusPaid)

	// duplicate inside one request
	_, err = svc.CreateInbound(IntakeRequest{
		PurchaseNo: "PO20260829000003",
		Items: []IntakeItem{
			{ItemName: "Chili", Quantity: mustDecimal(t, "10"), Unit: "kg"},
			{ItemName: "Chili", Quantity: mustDecimal(t, "5"), Unit: "kg"},
		},
	})
	if !errors.Is(err, ErrDuplicateBatchItem) {
		t.Fatalf("got %v, want duplicate batch item", err)
	}
	var count int64
	db.Model(&inventoryEntity.InboundRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("%d rows persisted from a rejected intake", count)
	}

	// duplicate against an existing batch row
	if _, err := svc.CreateInbound(IntakeRequest{
		PurchaseNo: "PO20260829000003",
		Items:      []IntakeItem{{ItemName: "Chili", Quantity: mustDecimal(t, "10"), Unit: "kg"}},
		Actor:      "admin",
	}); err != nil {
		t.Fatalf("first intake: %v", err)
	}
	_, err = svc.CreateInbound(IntakeRequest{
		PurchaseNo: "PO20260829000003",
		Items: []IntakeItem{
			{ItemName: "Chili", Quantity: mustDecimal(t, "3"), Unit: "kg"},
			{ItemName: "Ginger", Quantity: mustDecimal(t, "2"), Unit: "kg"},
		},
	})
	if !errors.Is(err, ErrDuplicateBatchItem) {
		t.Fatalf("got %v, want duplicate batch item", err)
	}
	db.Model(&inventoryEntity.InboundRecord{}).Where("item_name = ?", "Ginger").Count(&count)
	if count != 0 {
		t.Fatal("sibling item persisted from a rejected intake")
	}
}

func TestCreateInboundRejectsBadQuantity(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewIntakeService(db)
	if err != nil {
		t.Fatal(err)
	}
	seedOrder(t, db, "PO20260829000004", purchaseEntity.StatusReceived)

	_, err = svc.CreateInbound(IntakeRequest{
		PurchaseNo: "PO20260829000004",
		Items:      []IntakeItem{{ItemName: "Chili", Quantity: mustDecimal(t, "-1"), Unit: "kg"}},
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("got %v, want invalid quantity", err)
	}
}

func TestInboundNoFor(t *testing.T) {
	if got := InboundNoFor("PO20260829000001"); got != "IN60829000001" {
		t.Errorf("got %q", got)
	}
	if got := InboundNoFor("PO123"); got != "INPO123" {
		t.Errorf("short id: got %q", got)
	}
}
