package sales

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
	salesEntity "restaurant.GO/model/entity/sales"
)

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_api_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&salesEntity.MenuItem{}, &salesEntity.Order{}, &salesEntity.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	e := echo.New()
	RegisterSalesRoutes(e.Group("/api"), &api.DBSet{Main: db})
	return e, db
}

func postOrder(t *testing.T, e *echo.Echo, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json %q", rec.Body.String())
	}
	return rec, out
}

func TestCreateOrderEndpoint(t *testing.T) {
	e, db := newTestServer(t)

	rec, out := postOrder(t, e, `{
		"order_type": "heritage_trial",
		"customer_name": "Zhang Wei",
		"total_amount": 38,
		"items": [{"item_name": "Heritage trial - Mapo Tofu", "quantity": 1, "unit_price": 38}],
		"idempotency_key": "heritage-trial-1"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rec.Code, out)
	}
	orderID, _ := out["order_id"].(string)
	if !strings.HasPrefix(orderID, "SO") {
		t.Fatalf("order_id %q", orderID)
	}

	var order salesEntity.Order
	if err := db.Preload("Items").First(&order, "order_number = ?", orderID).Error; err != nil {
		t.Fatal(err)
	}
	if order.OrderStatus != salesEntity.OrderStatusPending {
		t.Errorf("status %s", order.OrderStatus)
	}
	if len(order.Items) != 1 || !order.Items[0].TotalPrice.Equal(decimal.NewFromInt(38)) {
		t.Errorf("items %+v", order.Items)
	}

	// the same idempotency key maps back to the existing order
	rec, out = postOrder(t, e, `{
		"order_type": "heritage_trial",
		"items": [{"item_name": "Heritage trial - Mapo Tofu", "quantity": 1, "unit_price": 38}],
		"idempotency_key": "heritage-trial-1"
	}`)
	if rec.Code != http.StatusOK || out["order_id"] != orderID {
		t.Fatalf("duplicate push: %d %v", rec.Code, out)
	}
	if out["duplicate"] != true {
		t.Error("duplicate not flagged")
	}
	var count int64
	db.Model(&salesEntity.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("%d orders, want 1", count)
	}
}

func TestCreateOrderRequiresItems(t *testing.T) {
	e, _ := newTestServer(t)
	rec, _ := postOrder(t, e, `{"order_type": "dine_in"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestUpdateOrderEndpoint(t *testing.T) {
	e, db := newTestServer(t)
	db.Create(&salesEntity.Order{
		OrderNumber: "SO1", OrderType: "dine_in", OrderStatus: salesEntity.OrderStatusPending,
		TotalAmount: decimal.NewFromInt(10), FinalAmount: decimal.NewFromInt(10),
	})

	req := httptest.NewRequest(http.MethodPut, "/api/orders/SO1",
		strings.NewReader(`{"order_status": "completed", "payment_method": "cash"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var order salesEntity.Order
	db.First(&order, "order_number = ?", "SO1")
	if order.OrderStatus != salesEntity.OrderStatusCompleted || order.PaymentMethod != "cash" {
		t.Errorf("order %+v", order)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/orders/SO404",
		strings.NewReader(`{"order_status": "completed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown order status %d", rec.Code)
	}
}

func TestBatchOperationEndpoint(t *testing.T) {
	e, db := newTestServer(t)
	db.Create(&salesEntity.Order{
		OrderNumber: "SO1", OrderType: "dine_in", OrderStatus: salesEntity.OrderStatusPending,
		TotalAmount: decimal.NewFromInt(10), FinalAmount: decimal.NewFromInt(10),
	})
	db.Create(&salesEntity.Order{
		OrderNumber: "SO2", OrderType: "dine_in", OrderStatus: salesEntity.OrderStatusPending,
		TotalAmount: decimal.NewFromInt(20), FinalAmount: decimal.NewFromInt(20),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/orders/batch_operation",
		strings.NewReader(`{"order_ids": ["SO1", "SO2", "SO404"], "operation": "complete"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		SuccessCount  int      `json:"success_count"`
		ErrorMessages []string `json:"error_messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.SuccessCount != 2 {
		t.Errorf("success_count %d", out.SuccessCount)
	}
	if len(out.ErrorMessages) != 1 || !strings.Contains(out.ErrorMessages[0], "SO404") {
		t.Errorf("error_messages %v", out.ErrorMessages)
	}

	var order salesEntity.Order
	db.First(&order, "order_number = ?", "SO1")
	if order.OrderStatus != salesEntity.OrderStatusCompleted {
		t.Errorf("status %s", order.OrderStatus)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/orders/batch_operation",
		strings.NewReader(`{"order_ids": ["SO1"], "operation": "refund"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown operation status %d", rec.Code)
	}
}

func TestDishesListEndpoint(t *testing.T) {
	e, db := newTestServer(t)
	db.Create(&salesEntity.MenuItem{
		ItemCode: "D001", ItemName: "Mapo Tofu", Category: "classic", IsHeritage: true,
		Price: decimal.NewFromInt(38), Status: "active",
	})
	db.Create(&salesEntity.MenuItem{
		ItemCode: "D002", ItemName: "Retired Dish", Category: "classic",
		Price: decimal.NewFromInt(10), Status: "inactive",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/dishes/list", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var out struct {
		Dishes []salesEntity.MenuItem `json:"dishes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Dishes) != 1 || out.Dishes[0].ItemCode != "D001" {
		t.Fatalf("dishes %+v", out.Dishes)
	}
}
