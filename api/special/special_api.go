package special

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"restaurant.GO/api"
	"restaurant.GO/config"
	specialEntity "restaurant.GO/model/entity/special"
	specialRepo "restaurant.GO/model/repository/special"
	syncService "restaurant.GO/service/sync"
)

func init() {
	api.RegisterModule(RegisterSpecialRoutes)
}

func RegisterSpecialRoutes(apiGroup *echo.Group, dbs *api.DBSet) {
	db := dbs.Special
	repo := specialRepo.NewSpecialRepository(db)
	config.LoadAppConfig()
	salesAPI := syncService.NewHTTPSalesAPI(config.AppConfig.SalesAPIBaseURL, config.AppConfig.SalesAPIKey)
	syncer := syncService.NewService(db, salesAPI)

	g := apiGroup.Group("/special")

	// PUT /api/special/trials/:id/status – completion triggers an
	// immediate best-effort sync; a failed push is left for the sweep
	g.PUT("/trials/:id/status", func(c echo.Context) error {
		id, ok := recordID(c)
		if !ok {
			return nil
		}
		status, ok := bindStatus(c)
		if !ok {
			return nil
		}
		res := db.Model(&specialEntity.HeritageDishTrial{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return api.Fail(c, res.Error)
		}
		if res.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "trial not found"})
		}
		if status == specialEntity.RecordStatusCompleted {
			if _, err := syncer.SyncHeritageTrial(c.Request().Context(), id); err != nil {
				log.Printf("api/special: trial %d sync: %v", id, err)
			}
		}
		return api.OK(c, echo.Map{"id": id, "status": status})
	})

	// PUT /api/special/diy_orders/:id/status
	g.PUT("/diy_orders/:id/status", func(c echo.Context) error {
		id, ok := recordID(c)
		if !ok {
			return nil
		}
		status, ok := bindStatus(c)
		if !ok {
			return nil
		}
		res := db.Model(&specialEntity.DiyDrinkOrder{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return api.Fail(c, res.Error)
		}
		if res.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "diy order not found"})
		}
		if status == specialEntity.RecordStatusCompleted {
			if _, err := syncer.SyncDiyOrder(c.Request().Context(), id); err != nil {
				log.Printf("api/special: diy order %d sync: %v", id, err)
			}
		}
		return api.OK(c, echo.Map{"id": id, "status": status})
	})

	// POST /api/special/trials/:id/sync – manual re-sync
	g.POST("/trials/:id/sync", func(c echo.Context) error {
		id, ok := recordID(c)
		if !ok {
			return nil
		}
		orderID, err := syncer.SyncHeritageTrial(c.Request().Context(), id)
		if err != nil {
			return syncFail(c, err)
		}
		return api.OK(c, echo.Map{"order_id": orderID})
	})

	// POST /api/special/diy_orders/:id/sync
	g.POST("/diy_orders/:id/sync", func(c echo.Context) error {
		id, ok := recordID(c)
		if !ok {
			return nil
		}
		orderID, err := syncer.SyncDiyOrder(c.Request().Context(), id)
		if err != nil {
			return syncFail(c, err)
		}
		return api.OK(c, echo.Map{"order_id": orderID})
	})

	// GET /api/special/sync_logs?type=&record_id=
	g.GET("/sync_logs", func(c echo.Context) error {
		recordID, err := strconv.ParseUint(c.QueryParam("record_id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "record_id is required"})
		}
		logs, err := repo.SyncLogs(c.QueryParam("type"), uint(recordID))
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, logs)
	})
}

// recordID parses the :id param, writing the 400 itself on bad input.
func recordID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "bad record id"})
		return 0, false
	}
	return uint(id), true
}

func bindStatus(c echo.Context) (string, bool) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		return "", false
	}
	switch body.Status {
	case specialEntity.RecordStatusPending, specialEntity.RecordStatusInProgress,
		specialEntity.RecordStatusCompleted, specialEntity.RecordStatusCancelled:
		return body.Status, true
	default:
		_ = c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "unknown status " + body.Status})
		return "", false
	}
}

func syncFail(c echo.Context, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "record not found"})
	}
	// remote failures are upstream trouble, not caller mistakes
	return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "message": err.Error()})
}
