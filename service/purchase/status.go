package purchase

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	purchaseEntity "restaurant.GO/model/entity/purchase"
	purchaseRepo "restaurant.GO/model/repository/purchase"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrOrderNotFound     = errors.New("purchase order not found")
	ErrUnknownOperation  = errors.New("unknown batch operation")
)

// transitions is the user-driven lifecycle. The inbound status is
// applied by intake and deliberately absent here.
var transitions = map[string][]string{
	purchaseEntity.StatusDraft:     {purchaseEntity.StatusSubmitted},
	purchaseEntity.StatusSubmitted: {purchaseEntity.StatusReviewed, purchaseEntity.StatusCancelled},
	purchaseEntity.StatusReviewed:  {purchaseEntity.StatusReceived, purchaseEntity.StatusCancelled},
	purchaseEntity.StatusReceived:  {purchaseEntity.StatusPaid, purchaseEntity.StatusCancelled},
	purchaseEntity.StatusPaid:      {purchaseEntity.StatusCancelled},
	purchaseEntity.StatusCancelled: {},
}

// Batch operation verbs accepted by BatchOperation.
const (
	OpSubmit  = "submit"
	OpReview  = "review"
	OpReceive = "receive"
	OpPayment = "payment"
	OpCancel  = "cancel"
	OpDelete  = "delete"
)

var opTargets = map[string]string{
	OpSubmit:  purchaseEntity.StatusSubmitted,
	OpReview:  purchaseEntity.StatusReviewed,
	OpReceive: purchaseEntity.StatusReceived,
	OpPayment: purchaseEntity.StatusPaid,
	OpCancel:  purchaseEntity.StatusCancelled,
}

// BatchResult reports a batch operation with per-order failures.
type BatchResult struct {
	SuccessCount  int      `json:"success_count"`
	ErrorMessages []string `json:"error_messages"`
}

// StatusMachine drives the purchase order lifecycle.
type StatusMachine struct {
	repo *purchaseRepo.PurchaseOrderRepository
}

func NewStatusMachine(db *gorm.DB) (*StatusMachine, error) {
	repo, err := purchaseRepo.NewPurchaseOrderRepository(db)
	if err != nil {
		return nil, err
	}
	return &StatusMachine{repo: repo}, nil
}

// CanTransition reports whether current -> target is a legal move.
func CanTransition(current, target string) bool {
	for _, allowed := range transitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition moves one order to target, failing closed on any move
// the lifecycle does not allow.
func (m *StatusMachine) Transition(orderID, target, actor string) error {
	current, ok := m.repo.GetStatus(orderID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if !CanTransition(current, target) {
		return fmt.Errorf("%w: order %s cannot go from %s to %s", ErrIllegalTransition, orderID, current, target)
	}
	return m.repo.UpdateStatus(orderID, target, actor)
}

// BatchOperation applies one verb to many orders. A failing order
// never aborts the batch; its message is collected and the rest keep
// processing.
func (m *StatusMachine) BatchOperation(op string, orderIDs []string, actor string) (*BatchResult, error) {
	if op != OpDelete {
		if _, ok := opTargets[op]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
		}
	}

	result := &BatchResult{ErrorMessages: []string{}}
	for _, orderID := range orderIDs {
		var err error
		if op == OpDelete {
			// deletion is allowed regardless of status
			err = m.delete(orderID)
		} else {
			err = m.Transition(orderID, opTargets[op], actor)
		}
		if err != nil {
			result.ErrorMessages = append(result.ErrorMessages, err.Error())
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

func (m *StatusMachine) delete(orderID string) error {
	if _, ok := m.repo.GetStatus(orderID); !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return m.repo.Delete(orderID)
}
