package purchase

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant.GO/api"
	inventoryEntity "restaurant.GO/model/entity/inventory"
	purchaseEntity "restaurant.GO/model/entity/purchase"
)

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "purchase_api_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&purchaseEntity.Supplier{},
		&purchaseEntity.PurchaseOrder{},
		&purchaseEntity.PurchaseOrderItem{},
		&inventoryEntity.InboundRecord{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	e := echo.New()
	RegisterPurchaseRoutes(e.Group("/api"), &api.DBSet{Main: db})
	return e, db
}

func TestBatchOperationEndpoint(t *testing.T) {
	e, db := newTestServer(t)
	db.Create(&purchaseEntity.PurchaseOrder{
		OrderID: "PO1", SupplierID: "SUP001", OrderDate: "2026-08-29",
		Status: purchaseEntity.StatusDraft, CreatedBy: "admin",
	})
	db.Create(&purchaseEntity.PurchaseOrder{
		OrderID: "PO2", SupplierID: "SUP001", OrderDate: "2026-08-29",
		Status: purchaseEntity.StatusPaid, CreatedBy: "admin",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/purchase/batch_operation",
		strings.NewReader(`{"operation": "submit", "order_ids": ["PO1", "PO2"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// partial failure is still a 200 with a report
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Success bool `json:"success"`
		Data    struct {
			SuccessCount  int      `json:"success_count"`
			ErrorMessages []string `json:"error_messages"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Data.SuccessCount != 1 || len(out.Data.ErrorMessages) != 1 {
		t.Fatalf("report %+v", out.Data)
	}
	if !strings.Contains(out.Data.ErrorMessages[0], "PO2") {
		t.Errorf("message %q", out.Data.ErrorMessages[0])
	}
}

func TestBatchOperationUnknownVerbEndpoint(t *testing.T) {
	e, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/purchase/batch_operation",
		strings.NewReader(`{"operation": "approve", "order_ids": ["PO1"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestOrderDetailEndpoint(t *testing.T) {
	e, db := newTestServer(t)
	db.Create(&purchaseEntity.PurchaseOrder{
		OrderID: "PO1", SupplierID: "SUP001", OrderDate: "2026-08-29",
		Status: purchaseEntity.StatusReviewed, CreatedBy: "admin",
		Items: []purchaseEntity.PurchaseOrderItem{
			{OrderID: "PO1", ItemName: "Chili", Quantity: decimal.NewFromInt(100), Unit: "kg"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/purchase/PO1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Chili") {
		t.Error("items missing from detail response")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/purchase/PO404", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown order status %d", rec.Code)
	}
}
