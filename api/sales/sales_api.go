package sales

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant.GO/api"
	salesEntity "restaurant.GO/model/entity/sales"
	salesRepo "restaurant.GO/model/repository/sales"
)

func init() {
	api.RegisterModule(RegisterSalesRoutes)
}

type orderItemBody struct {
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes"`
}

type createOrderBody struct {
	OrderType      string          `json:"order_type"`
	OrderStatus    string          `json:"order_status"`
	TableNumber    string          `json:"table_number"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Items          []orderItemBody `json:"items"`
	Notes          string          `json:"notes"`
	IdempotencyKey string          `json:"idempotency_key"`
}

func RegisterSalesRoutes(apiGroup *echo.Group, dbs *api.DBSet) {
	db := dbs.Main
	repo := salesRepo.NewSalesOrderRepository(db)

	// POST /api/orders/create – the surface the special module syncs
	// into. A repeated idempotency key returns the order it already
	// created instead of minting a duplicate.
	apiGroup.POST("/orders/create", func(c echo.Context) error {
		var body createOrderBody
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "items is required"})
		}

		if body.IdempotencyKey != "" {
			var existing salesEntity.Order
			err := db.Where("idempotency_key = ?", body.IdempotencyKey).First(&existing).Error
			if err == nil {
				// top-level order_id is the wire shape sync clients decode
				return c.JSON(http.StatusOK, echo.Map{"success": true, "order_id": existing.OrderNumber, "duplicate": true})
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return api.Fail(c, err)
			}
		}

		status := body.OrderStatus
		if status == "" {
			status = salesEntity.OrderStatusPending
		}
		order := salesEntity.Order{
			OrderNumber:    mintOrderNumber(),
			OrderType:      body.OrderType,
			OrderStatus:    status,
			TableNumber:    body.TableNumber,
			CustomerName:   body.CustomerName,
			CustomerPhone:  body.CustomerPhone,
			TotalAmount:    body.TotalAmount,
			DiscountAmount: body.DiscountAmount,
			FinalAmount:    body.TotalAmount.Sub(body.DiscountAmount),
			Notes:          body.Notes,
			IdempotencyKey: body.IdempotencyKey,
		}
		for _, item := range body.Items {
			order.Items = append(order.Items, salesEntity.OrderItem{
				OrderNumber: order.OrderNumber,
				ItemName:    item.ItemName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TotalPrice:  item.UnitPrice.Mul(item.Quantity).Round(2),
				Notes:       item.Notes,
			})
		}
		if err := repo.Create(&order); err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "order_id": order.OrderNumber})
	})

	// PUT /api/orders/:id – partial update (status, payment, notes)
	apiGroup.PUT("/orders/:id", func(c echo.Context) error {
		var body struct {
			OrderStatus   *string `json:"order_status"`
			PaymentMethod *string `json:"payment_method"`
			Notes         *string `json:"notes"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		fields := map[string]interface{}{}
		if body.OrderStatus != nil {
			fields["order_status"] = *body.OrderStatus
		}
		if body.PaymentMethod != nil {
			fields["payment_method"] = *body.PaymentMethod
		}
		if body.Notes != nil {
			fields["notes"] = *body.Notes
		}
		if len(fields) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "no fields to update"})
		}
		if err := repo.Update(c.Param("id"), fields); err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "order_id": c.Param("id")})
	})

	// POST /api/orders/batch_operation – bulk status changes, same
	// partial-failure report shape as the purchase side
	apiGroup.POST("/orders/batch_operation", func(c echo.Context) error {
		var body struct {
			OrderIDs  []string `json:"order_ids"`
			Operation string   `json:"operation"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if len(body.OrderIDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "order_ids is required"})
		}
		target, ok := map[string]string{
			"prepare":  salesEntity.OrderStatusPreparing,
			"complete": salesEntity.OrderStatusCompleted,
			"cancel":   salesEntity.OrderStatusCancelled,
		}[body.Operation]
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "unknown operation " + body.Operation})
		}
		successCount := 0
		var errorMessages []string
		for _, id := range body.OrderIDs {
			err := repo.Update(id, map[string]interface{}{"order_status": target})
			if err != nil {
				errorMessages = append(errorMessages, fmt.Sprintf("order %s: %v", id, err))
				continue
			}
			successCount++
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":        true,
			"success_count":  successCount,
			"error_messages": errorMessages,
		})
	})

	// GET /api/orders/:id
	apiGroup.GET("/orders/:id", func(c echo.Context) error {
		order, err := repo.FindByNumber(c.Param("id"))
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, order)
	})

	// GET /api/dishes/list – active menu for sync clients
	apiGroup.GET("/dishes/list", func(c echo.Context) error {
		dishes, err := repo.ActiveDishes()
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "dishes": dishes})
	})
}

// mintOrderNumber generates "SO" + unix timestamp + 3-digit suffix.
func mintOrderNumber() string {
	return fmt.Sprintf("SO%d%03d", time.Now().Unix(), rand.Intn(1000))
}
