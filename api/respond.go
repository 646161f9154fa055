package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	inventoryService "restaurant.GO/service/inventory"
	purchaseService "restaurant.GO/service/purchase"
)

// OK wraps a successful response body.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

// Fail maps an error onto the shared envelope: business-rule
// violations are 400, missing entities 404, the rest 500. The message
// is the error text, which for business errors names the offending
// item and quantities.
func Fail(c echo.Context, err error) error {
	return c.JSON(statusFor(err), echo.Map{"success": false, "message": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, inventoryService.ErrOutboundNotFound),
		errors.Is(err, purchaseService.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventoryService.ErrInsufficientStock),
		errors.Is(err, inventoryService.ErrInvalidQuantity),
		errors.Is(err, inventoryService.ErrDuplicateBatchItem),
		errors.Is(err, inventoryService.ErrItemNotInOutbound),
		errors.Is(err, inventoryService.ErrQuantityExceedsAvailable),
		errors.Is(err, inventoryService.ErrInvalidState),
		errors.Is(err, inventoryService.ErrInvalidStorageLocation),
		errors.Is(err, purchaseService.ErrIllegalTransition),
		errors.Is(err, purchaseService.ErrUnknownOperation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
