package inventory

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	inventoryEntity "restaurant.GO/model/entity/inventory"
	inventoryRepo "restaurant.GO/model/repository/inventory"
)

// RequestedItem is one line of a fulfillment request.
type RequestedItem struct {
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// FulfillRequest asks the engine to hand out stock against a pending
// outbound ticket. A nil Items slice means "fulfill everything".
type FulfillRequest struct {
	OutboundNo string          `json:"outbound_no"`
	Items      []RequestedItem `json:"items,omitempty"`
	Receiver   string          `json:"receiver"`
	Approver   string          `json:"approver"`
	Purpose    string          `json:"purpose"`
	Remarks    string          `json:"remarks"`
}

// FulfillmentOutcome reports what was handed out and what remains owed.
type FulfillmentOutcome struct {
	OutboundNo     string                           `json:"outbound_no"`
	FulfilledNo    string                           `json:"fulfilled_no"`
	Partial        bool                             `json:"partial"`
	FulfilledItems []inventoryEntity.OutboundRecord `json:"fulfilled_items"`
	RemainingItems []inventoryEntity.OutboundRecord `json:"remaining_items,omitempty"`
}

// SeedResult summarizes a bulk import of pending outbound tickets.
type SeedResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// FulfillmentEngine owns the pending -> fulfilled/cancelled lifecycle
// of outbound tickets. SQLite serializes writes at the database level,
// but two goroutines can still interleave the sufficiency check and
// the deduction, so the engine holds a per-ticket mutex across each
// fulfillment and runs the mutation inside one transaction.
type FulfillmentEngine struct {
	db     *gorm.DB
	ledger *Ledger
	repo   *inventoryRepo.InventoryRepository

	mu      sync.Mutex
	tickets map[string]*sync.Mutex
}

func NewFulfillmentEngine(db *gorm.DB) (*FulfillmentEngine, error) {
	ledger, err := NewLedger(db)
	if err != nil {
		return nil, err
	}
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		return nil, err
	}
	return &FulfillmentEngine{
		db:      db,
		ledger:  ledger,
		repo:    repo,
		tickets: make(map[string]*sync.Mutex),
	}, nil
}

func (e *FulfillmentEngine) lockTicket(outboundNo string) func() {
	e.mu.Lock()
	m, ok := e.tickets[outboundNo]
	if !ok {
		m = &sync.Mutex{}
		e.tickets[outboundNo] = m
	}
	e.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Fulfill hands out stock against a pending ticket. When every
// requested quantity matches its row exactly and the request covers
// the whole ticket, the rows flip to fulfilled in place. Otherwise the
// fulfilled portions move to a freshly minted ticket number and the
// original rows stay pending holding only what is still owed, so the
// original ticket keeps its identity for the leftover while the
// handed-over goods get their own receipt.
func (e *FulfillmentEngine) Fulfill(req FulfillRequest) (*FulfillmentOutcome, error) {
	unlock := e.lockTicket(req.OutboundNo)
	defer unlock()

	rows, err := e.repo.OutboundByNo(req.OutboundNo)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOutboundNotFound, req.OutboundNo)
	}
	byItem := make(map[string]*inventoryEntity.OutboundRecord, len(rows))
	for i := range rows {
		if rows[i].Status != inventoryEntity.OutboundStatusPending {
			return nil, fmt.Errorf("%w: ticket %s row %s is already %s",
				ErrInvalidState, req.OutboundNo, rows[i].ItemName, rows[i].Status)
		}
		byItem[rows[i].ItemName] = &rows[i]
	}

	requested := req.Items
	if requested == nil {
		requested = make([]RequestedItem, 0, len(rows))
		for _, row := range rows {
			requested = append(requested, RequestedItem{ItemName: row.ItemName, Quantity: row.Quantity})
		}
	}

	type portion struct {
		row       *inventoryEntity.OutboundRecord
		quantity  decimal.Decimal
		remainder decimal.Decimal
	}
	portions := make([]portion, 0, len(requested))
	requestedNames := make(map[string]struct{}, len(requested))
	split := len(requested) < len(rows)
	for _, item := range requested {
		row, ok := byItem[item.ItemName]
		if !ok {
			return nil, fmt.Errorf("%w: item %s is not on ticket %s", ErrItemNotInOutbound, item.ItemName, req.OutboundNo)
		}
		if _, dup := requestedNames[item.ItemName]; dup {
			return nil, fmt.Errorf("%w: item %s requested twice", ErrInvalidQuantity, item.ItemName)
		}
		requestedNames[item.ItemName] = struct{}{}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %s quantity %s must be positive", ErrInvalidQuantity, item.ItemName, item.Quantity)
		}
		if item.Quantity.GreaterThan(row.Quantity) {
			return nil, fmt.Errorf("%w: item %s requested %s, ticket holds %s",
				ErrQuantityExceedsAvailable, item.ItemName, item.Quantity, row.Quantity)
		}
		if stock, ok := e.ledger.Quantity(row.InboundNo, row.ItemName); !ok || item.Quantity.GreaterThan(stock) {
			return nil, fmt.Errorf("%w: item %s requested %s, batch %s holds %s",
				ErrQuantityExceedsAvailable, item.ItemName, item.Quantity, row.InboundNo, stock)
		}
		remainder := row.Quantity.Sub(item.Quantity).Round(2)
		if remainder.IsPositive() {
			split = true
		}
		portions = append(portions, portion{row: row, quantity: item.Quantity.Round(2), remainder: remainder})
	}

	now := time.Now()
	outcome := &FulfillmentOutcome{OutboundNo: req.OutboundNo, Partial: split}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if !split {
			for _, p := range portions {
				if err := tx.Model(&inventoryEntity.OutboundRecord{}).
					Where("id = ?", p.row.ID).
					Updates(map[string]interface{}{
						"status":        inventoryEntity.OutboundStatusFulfilled,
						"outbound_time": now,
						"receiver":      req.Receiver,
						"approver":      req.Approver,
						"purpose":       req.Purpose,
						"remarks":       req.Remarks,
					}).Error; err != nil {
					return err
				}
				if err := e.ledger.Deduct(tx, p.row.InboundNo, p.row.ItemName, p.quantity); err != nil {
					return err
				}
				fulfilled := *p.row
				fulfilled.Status = inventoryEntity.OutboundStatusFulfilled
				fulfilled.OutboundTime = &now
				fulfilled.Receiver, fulfilled.Approver = req.Receiver, req.Approver
				fulfilled.Purpose, fulfilled.Remarks = req.Purpose, req.Remarks
				outcome.FulfilledItems = append(outcome.FulfilledItems, fulfilled)
			}
			outcome.FulfilledNo = req.OutboundNo
			return nil
		}

		fulfilledNo, err := e.mintOutboundNo()
		if err != nil {
			return err
		}
		outcome.FulfilledNo = fulfilledNo
		for _, p := range portions {
			fulfilled := inventoryEntity.OutboundRecord{
				OutboundNo:   fulfilledNo,
				InboundNo:    p.row.InboundNo,
				ItemName:     p.row.ItemName,
				Quantity:     p.quantity,
				Unit:         p.row.Unit,
				Status:       inventoryEntity.OutboundStatusFulfilled,
				OutboundTime: &now,
				Receiver:     req.Receiver,
				Approver:     req.Approver,
				Purpose:      req.Purpose,
				Remarks:      req.Remarks,
			}
			if err := tx.Create(&fulfilled).Error; err != nil {
				return err
			}
			if err := tx.Model(&inventoryEntity.OutboundRecord{}).
				Where("id = ?", p.row.ID).
				Update("quantity", p.remainder).Error; err != nil {
				return err
			}
			if err := e.ledger.Deduct(tx, p.row.InboundNo, p.row.ItemName, p.quantity); err != nil {
				return err
			}
			outcome.FulfilledItems = append(outcome.FulfilledItems, fulfilled)
			remaining := *p.row
			remaining.Quantity = p.remainder
			outcome.RemainingItems = append(outcome.RemainingItems, remaining)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// mintOutboundNo generates "OUT" + unix timestamp + 4-digit suffix,
// retrying on the unlikely collision.
func (e *FulfillmentEngine) mintOutboundNo() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		no := fmt.Sprintf("OUT%d%04d", time.Now().Unix(), 1000+rand.Intn(9000))
		if !e.repo.OutboundNoExists(no) {
			return no, nil
		}
	}
	return "", fmt.Errorf("could not mint a unique outbound number")
}

// Cancel voids a pending ticket. No stock moves.
func (e *FulfillmentEngine) Cancel(outboundNo, remarks string) error {
	unlock := e.lockTicket(outboundNo)
	defer unlock()

	rows, err := e.repo.OutboundByNo(outboundNo)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", ErrOutboundNotFound, outboundNo)
	}
	for _, row := range rows {
		if row.Status != inventoryEntity.OutboundStatusPending {
			return fmt.Errorf("%w: ticket %s row %s is already %s", ErrInvalidState, outboundNo, row.ItemName, row.Status)
		}
	}
	updates := map[string]interface{}{"status": inventoryEntity.OutboundStatusCancelled}
	if remarks != "" {
		updates["remarks"] = remarks
	}
	return e.db.Model(&inventoryEntity.OutboundRecord{}).
		Where("outbound_no = ?", outboundNo).
		Updates(updates).Error
}

// SeedOutbound creates a pending ticket for every quality-passed
// batch item that has stock left and no outbound row yet. Safe to run
// repeatedly: already-covered batch items are skipped.
func (e *FulfillmentEngine) SeedOutbound() (*SeedResult, error) {
	var batches []inventoryEntity.InboundRecord
	if err := e.db.Where("quality_check = ? AND quantity > 0", true).
		Order("inbound_no, item_name").
		Find(&batches).Error; err != nil {
		return nil, err
	}

	result := &SeedResult{}
	seq := 0
	ts := time.Now().Unix()
	err := e.db.Transaction(func(tx *gorm.DB) error {
		for _, batch := range batches {
			var count int64
			if err := tx.Model(&inventoryEntity.OutboundRecord{}).
				Where("inbound_no = ? AND item_name = ?", batch.InboundNo, batch.ItemName).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				result.Skipped++
				continue
			}
			seq++
			rec := inventoryEntity.OutboundRecord{
				OutboundNo: fmt.Sprintf("OUT%d%03d", ts, seq),
				InboundNo:  batch.InboundNo,
				ItemName:   batch.ItemName,
				Quantity:   batch.Quantity,
				Unit:       batch.Unit,
				Status:     inventoryEntity.OutboundStatusPending,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
