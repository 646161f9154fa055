package inventory

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"restaurant.GO/api"
	"restaurant.GO/core/auth"
	"restaurant.GO/core/cache"
	inventoryEntity "restaurant.GO/model/entity/inventory"
	inventoryRepo "restaurant.GO/model/repository/inventory"
	inventoryService "restaurant.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

const stockCacheKey = "inventory:stock_rows"

func RegisterInventoryRoutes(apiGroup *echo.Group, dbs *api.DBSet) {
	db := dbs.Main
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		panic("api/inventory: " + err.Error())
	}
	ledger, err := inventoryService.NewLedger(db)
	if err != nil {
		panic("api/inventory: " + err.Error())
	}
	intake, err := inventoryService.NewIntakeService(db)
	if err != nil {
		panic("api/inventory: " + err.Error())
	}
	engine, err := inventoryService.NewFulfillmentEngine(db)
	if err != nil {
		panic("api/inventory: " + err.Error())
	}

	g := apiGroup.Group("/inventory")

	// POST /api/inventory/inbound – book a goods receipt
	g.POST("/inbound", func(c echo.Context) error {
		var body struct {
			PurchaseNo   string                        `json:"purchase_no"`
			Items        []inventoryService.IntakeItem `json:"items"`
			InboundTime  string                        `json:"inbound_time"`
			QualityCheck bool                          `json:"quality_check"`
			Inspector    string                        `json:"inspector"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		req := inventoryService.IntakeRequest{
			PurchaseNo:   body.PurchaseNo,
			Items:        body.Items,
			QualityCheck: body.QualityCheck,
			Inspector:    body.Inspector,
			Actor:        auth.Actor(c),
		}
		if body.InboundTime != "" {
			t, err := time.Parse("2006-01-02 15:04:05", body.InboundTime)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "bad inbound_time: " + err.Error()})
			}
			req.InboundTime = t
		}
		records, err := intake.CreateInbound(req)
		if err != nil {
			return api.Fail(c, err)
		}
		cache.GetInstance().Delete(stockCacheKey)
		return api.OK(c, echo.Map{"inbound_no": records[0].InboundNo, "items": records})
	})

	// GET /api/inventory/inbound – all rows, newest batch first
	g.GET("/inbound", func(c echo.Context) error {
		var records []inventoryEntity.InboundRecord
		if err := db.Order("inbound_time DESC, item_name").Find(&records).Error; err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, records)
	})

	// GET /api/inventory/inbound/:no – one batch with location labels
	g.GET("/inbound/:no", func(c echo.Context) error {
		records, err := repo.GetAllByInboundNo(c.Param("no"))
		if err != nil {
			return api.Fail(c, err)
		}
		if len(records) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "inbound batch not found"})
		}
		type row struct {
			inventoryEntity.InboundRecord
			StorageLocationLabel string `json:"storage_location_label,omitempty"`
		}
		out := make([]row, len(records))
		for i, rec := range records {
			out[i] = row{InboundRecord: rec}
			if rec.StorageLocation != "" {
				out[i].StorageLocationLabel = inventoryService.DescribeStorageLocation(rec.StorageLocation)
			}
		}
		return api.OK(c, out)
	})

	// PUT /api/inventory/inbound/:no/location – move a batch item
	g.PUT("/inbound/:no/location", func(c echo.Context) error {
		var body struct {
			ItemName        string `json:"item_name"`
			StorageLocation string `json:"storage_location"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if err := inventoryService.ValidateStorageLocation(body.StorageLocation); err != nil {
			return api.Fail(c, err)
		}
		rec, err := repo.GetBatchItem(c.Param("no"), body.ItemName)
		if err != nil {
			return api.Fail(c, err)
		}
		if err := db.Model(rec).Update("storage_location", body.StorageLocation).Error; err != nil {
			return api.Fail(c, err)
		}
		cache.GetInstance().Delete(stockCacheKey)
		return api.OK(c, echo.Map{
			"storage_location": body.StorageLocation,
			"label":            inventoryService.DescribeStorageLocation(body.StorageLocation),
		})
	})

	// GET /api/inventory/stock – aggregated stock joined with batches.
	// Cached briefly; every stock mutation drops the entry.
	g.GET("/stock", func(c echo.Context) error {
		if v, ok := cache.GetInstance().Get(stockCacheKey); ok {
			return api.OK(c, v)
		}
		rows, err := repo.StockRows()
		if err != nil {
			return api.Fail(c, err)
		}
		cache.GetInstance().Set(stockCacheKey, rows, 30)
		return api.OK(c, rows)
	})

	// GET /api/inventory/stock/stats – per-item totals and warnings
	g.GET("/stock/stats", func(c echo.Context) error {
		summary, err := ledger.Summary()
		if err != nil {
			return api.Fail(c, err)
		}
		warnings := 0
		for _, s := range summary {
			if s.WarningLevel != inventoryService.WarningNormal {
				warnings++
			}
		}
		return api.OK(c, echo.Map{"items": summary, "warning_count": warnings})
	})

	// POST /api/inventory/outbound/process – fulfill a pending ticket
	g.POST("/outbound/process", func(c echo.Context) error {
		var body inventoryService.FulfillRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if body.Approver == "" {
			body.Approver = auth.Actor(c)
		}
		outcome, err := engine.Fulfill(body)
		if err != nil {
			return api.Fail(c, err)
		}
		cache.GetInstance().Delete(stockCacheKey)
		return api.OK(c, outcome)
	})

	// POST /api/inventory/outbound/:no/cancel
	g.POST("/outbound/:no/cancel", func(c echo.Context) error {
		var body struct {
			Remarks string `json:"remarks"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if err := engine.Cancel(c.Param("no"), body.Remarks); err != nil {
			return api.Fail(c, err)
		}
		cache.GetInstance().Delete(stockCacheKey)
		return api.OK(c, echo.Map{"outbound_no": c.Param("no"), "status": inventoryEntity.OutboundStatusCancelled})
	})

	// GET /api/inventory/outbound – all tickets, optional ?status=
	g.GET("/outbound", func(c echo.Context) error {
		q := db.Order("created_at DESC, outbound_no")
		if status := c.QueryParam("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		var records []inventoryEntity.OutboundRecord
		if err := q.Find(&records).Error; err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, records)
	})

	// GET /api/inventory/outbound/:no
	g.GET("/outbound/:no", func(c echo.Context) error {
		records, err := repo.OutboundByNo(c.Param("no"))
		if err != nil {
			return api.Fail(c, err)
		}
		if len(records) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "outbound ticket not found"})
		}
		return api.OK(c, records)
	})

	// GET /api/inventory/outbound/stats – counts per status
	g.GET("/outbound/stats", func(c echo.Context) error {
		type statusCount struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		}
		var counts []statusCount
		err := db.Model(&inventoryEntity.OutboundRecord{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&counts).Error
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, counts)
	})

	// GET /api/inventory/transfer/history – batch journeys
	g.GET("/transfer/history", func(c echo.Context) error {
		rows, err := repo.TransferHistory()
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, rows)
	})

	// GET /api/inventory/transfer/stats – journey counts by state
	g.GET("/transfer/stats", func(c echo.Context) error {
		rows, err := repo.TransferHistory()
		if err != nil {
			return api.Fail(c, err)
		}
		stats := map[string]int{"in_stock": 0, "pending_outbound": 0, "issued": 0}
		for _, row := range rows {
			stats[row.CurrentStatus]++
		}
		return api.OK(c, echo.Map{"total": len(rows), "by_status": stats})
	})

	// POST /api/inventory/outbound/seed – backfill pending tickets
	g.POST("/outbound/seed", func(c echo.Context) error {
		result, err := engine.SeedOutbound()
		if err != nil {
			return api.Fail(c, err)
		}
		cache.GetInstance().Delete(stockCacheKey)
		return api.OK(c, result)
	})
}
