package purchase

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant.GO/api"
	"restaurant.GO/core/auth"
	purchaseRepo "restaurant.GO/model/repository/purchase"
	purchaseService "restaurant.GO/service/purchase"
)

func init() {
	api.RegisterModule(RegisterPurchaseRoutes)
}

func RegisterPurchaseRoutes(apiGroup *echo.Group, dbs *api.DBSet) {
	repo, err := purchaseRepo.NewPurchaseOrderRepository(dbs.Main)
	if err != nil {
		panic("api/purchase: " + err.Error())
	}
	machine, err := purchaseService.NewStatusMachine(dbs.Main)
	if err != nil {
		panic("api/purchase: " + err.Error())
	}

	g := apiGroup.Group("/purchase")

	// POST /api/purchase/batch_operation – apply one verb to many orders.
	// Always 200 with a report; per-order failures never abort the batch.
	g.POST("/batch_operation", func(c echo.Context) error {
		var body struct {
			Operation string   `json:"operation"`
			OrderIDs  []string `json:"order_ids"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if len(body.OrderIDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "order_ids is required"})
		}
		result, err := machine.BatchOperation(body.Operation, body.OrderIDs, auth.Actor(c))
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, result)
	})

	// GET /api/purchase/pending_inbound – orders awaiting intake
	g.GET("/pending_inbound", func(c echo.Context) error {
		rows, err := repo.PendingInbound()
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, rows)
	})

	// GET /api/purchase/:id – order plus items, for the intake form
	g.GET("/:id", func(c echo.Context) error {
		order, err := repo.FindByID(c.Param("id"))
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, order)
	})
}
