package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	inventoryEntity "restaurant.GO/model/entity/inventory"
	purchaseEntity "restaurant.GO/model/entity/purchase"
	purchaseRepo "restaurant.GO/model/repository/purchase"
)

// IntakeItem is one received line of a goods receipt.
type IntakeItem struct {
	ItemName        string          `json:"item_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	StorageLocation string          `json:"storage_location"`
	Remarks         string          `json:"remarks"`
}

// IntakeRequest records the arrival of goods for a purchase order.
type IntakeRequest struct {
	PurchaseNo   string       `json:"purchase_no"`
	Items        []IntakeItem `json:"items"`
	InboundTime  time.Time    `json:"inbound_time"`
	QualityCheck bool         `json:"quality_check"`
	Inspector    string       `json:"inspector"`
	Actor        string       `json:"-"`
}

// IntakeService converts received purchase orders into stock batches.
type IntakeService struct {
	db     *gorm.DB
	orders *purchaseRepo.PurchaseOrderRepository
}

func NewIntakeService(db *gorm.DB) (*IntakeService, error) {
	orders, err := purchaseRepo.NewPurchaseOrderRepository(db)
	if err != nil {
		return nil, err
	}
	return &IntakeService{db: db, orders: orders}, nil
}

// InboundNoFor derives the batch number from the purchase order id:
// "IN" plus the last eleven characters of the order id, so the batch
// is traceable back to its order at a glance.
func InboundNoFor(purchaseNo string) string {
	tail := purchaseNo
	if len(tail) > 11 {
		tail = tail[len(tail)-11:]
	}
	return "IN" + tail
}

// CreateInbound books all received lines of one purchase order as a
// stock batch. The whole receipt is a single transaction: one bad line
// rejects the lot. A quality-passed receipt moves the order to the
// inbound status, which makes the batch visible to outbound stock.
func (s *IntakeService) CreateInbound(req IntakeRequest) ([]inventoryEntity.InboundRecord, error) {
	status, ok := s.orders.GetStatus(req.PurchaseNo)
	if !ok {
		return nil, fmt.Errorf("%w: purchase order %s not found", ErrInvalidState, req.PurchaseNo)
	}
	switch status {
	case purchaseEntity.StatusReviewed, purchaseEntity.StatusReceived, purchaseEntity.StatusPaid:
	default:
		return nil, fmt.Errorf("%w: purchase order %s is %s, inbound intake needs reviewed, received or paid",
			ErrInvalidState, req.PurchaseNo, status)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: receipt for %s has no items", ErrInvalidQuantity, req.PurchaseNo)
	}

	inboundNo := InboundNoFor(req.PurchaseNo)
	inboundTime := req.InboundTime
	if inboundTime.IsZero() {
		inboundTime = time.Now()
	}

	seen := make(map[string]struct{}, len(req.Items))
	records := make([]inventoryEntity.InboundRecord, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %s quantity %s must be positive", ErrInvalidQuantity, item.ItemName, item.Quantity)
		}
		if _, dup := seen[item.ItemName]; dup {
			return nil, fmt.Errorf("%w: item %s appears twice in batch %s", ErrDuplicateBatchItem, item.ItemName, inboundNo)
		}
		seen[item.ItemName] = struct{}{}
		if item.StorageLocation != "" {
			if err := ValidateStorageLocation(item.StorageLocation); err != nil {
				return nil, err
			}
		}
		records = append(records, inventoryEntity.InboundRecord{
			InboundNo:       inboundNo,
			PurchaseNo:      req.PurchaseNo,
			ItemName:        item.ItemName,
			Quantity:        item.Quantity.Round(2),
			Unit:            item.Unit,
			InboundTime:     inboundTime,
			QualityCheck:    req.QualityCheck,
			Inspector:       req.Inspector,
			StorageLocation: item.StorageLocation,
			Remarks:         item.Remarks,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&inventoryEntity.InboundRecord{}).
			Where("inbound_no = ? AND item_name IN ?", inboundNo, itemNames(records)).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: batch %s already holds one of the received items", ErrDuplicateBatchItem, inboundNo)
		}
		if err := tx.Create(&records).Error; err != nil {
			return err
		}
		if req.QualityCheck {
			return s.orders.UpdateStatusTx(tx, req.PurchaseNo, purchaseEntity.StatusInbound, req.Actor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func itemNames(records []inventoryEntity.InboundRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.ItemName
	}
	return names
}
