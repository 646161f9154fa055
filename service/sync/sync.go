package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	specialEntity "restaurant.GO/model/entity/special"
	specialRepo "restaurant.GO/model/repository/special"
)

// Service pushes completed special-module records into the sales
// module as orders. Idempotence is by the local sync_status flag: a
// record marked synced is never pushed again, and the flag is written
// only after the remote side acknowledged the order.
type Service struct {
	repo *specialRepo.SpecialRepository
	api  SalesAPI
}

func NewService(db *gorm.DB, api SalesAPI) *Service {
	return &Service{repo: specialRepo.NewSpecialRepository(db), api: api}
}

// SyncHeritageTrial pushes one completed trial. Returns the sales
// order id, which for an already-synced trial is the stored one.
func (s *Service) SyncHeritageTrial(ctx context.Context, trialID uint) (string, error) {
	rec, err := s.repo.FindTrial(trialID)
	if err != nil {
		return "", err
	}
	if rec.Trial.SyncStatus == specialEntity.SyncStatusSynced {
		return rec.Trial.RemoteOrderID, nil
	}
	if rec.Trial.Status != specialEntity.RecordStatusCompleted {
		return "", fmt.Errorf("trial %d is %s, only completed trials sync", trialID, rec.Trial.Status)
	}

	req := CreateOrderRequest{
		OrderType:     "heritage_trial",
		OrderStatus:   "pending",
		CustomerName:  rec.Trial.CustomerName,
		CustomerPhone: rec.Trial.Phone,
		TotalAmount:   rec.Trial.TrialPrice,
		Items: []OrderItemPayload{{
			ItemName:  "Heritage trial - " + rec.Dish.DishName,
			Quantity:  1,
			UnitPrice: rec.Trial.TrialPrice,
		}},
		Notes:          rec.Trial.Notes,
		IdempotencyKey: fmt.Sprintf("heritage-trial-%d", trialID),
	}
	return s.push(ctx, specialEntity.SyncKindHeritageTrial, trialID, req, s.repo.MarkTrialSynced)
}

// SyncDiyOrder pushes one completed DIY drink order.
func (s *Service) SyncDiyOrder(ctx context.Context, orderID uint) (string, error) {
	rec, err := s.repo.FindDiyOrder(orderID)
	if err != nil {
		return "", err
	}
	if rec.Order.SyncStatus == specialEntity.SyncStatusSynced {
		return rec.Order.RemoteOrderID, nil
	}
	if rec.Order.Status != specialEntity.RecordStatusCompleted {
		return "", fmt.Errorf("diy order %d is %s, only completed orders sync", orderID, rec.Order.Status)
	}

	req := CreateOrderRequest{
		OrderType:     "diy_drink",
		OrderStatus:   "pending",
		CustomerName:  rec.Order.CustomerName,
		CustomerPhone: rec.Order.Phone,
		TotalAmount:   rec.Order.TotalPrice,
		Items: []OrderItemPayload{{
			ItemName:  fmt.Sprintf("DIY drink (%s)", strings.Join(rec.Ingredients, ", ")),
			Quantity:  1,
			UnitPrice: rec.Order.TotalPrice,
		}},
		Notes:          rec.Order.Notes,
		IdempotencyKey: fmt.Sprintf("diy-order-%d", orderID),
	}
	return s.push(ctx, specialEntity.SyncKindDiyOrder, orderID, req, s.repo.MarkDiyOrderSynced)
}

// push sends the order and appends a sync_logs row for the attempt,
// success or failure. markSynced runs only after the remote ack.
func (s *Service) push(ctx context.Context, kind string, recordID uint, req CreateOrderRequest, markSynced func(uint, string) error) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	remoteOrderID, callErr := s.api.CreateOrder(ctx, req)

	entry := &specialEntity.SyncLog{
		SyncType: kind,
		RecordID: recordID,
		Status:   specialEntity.SyncOutcomeSuccess,
		Payload:  payload,
	}
	if callErr != nil {
		entry.Status = specialEntity.SyncOutcomeFailed
		entry.ErrorMessage = callErr.Error()
	}
	if logErr := s.repo.AppendSyncLog(entry); logErr != nil {
		log.Printf("sync: append log for %s %d: %v", kind, recordID, logErr)
	}
	if callErr != nil {
		return "", callErr
	}

	if err := markSynced(recordID, remoteOrderID); err != nil {
		// remote order exists but the local flag write failed; the
		// next sweep retries and the idempotency key covers us
		return remoteOrderID, fmt.Errorf("order %s created remotely but local flag write failed: %w", remoteOrderID, err)
	}
	return remoteOrderID, nil
}

// SweepResult summarizes one background sweep.
type SweepResult struct {
	Synced int
	Failed int
}

// SweepPending retries every completed-but-unsynced record. Failures
// are isolated per record so one dead record cannot stall the rest.
func (s *Service) SweepPending(ctx context.Context) SweepResult {
	var result SweepResult

	trials, err := s.repo.UnsyncedCompletedTrials()
	if err != nil {
		log.Printf("sync sweep: list trials: %v", err)
	}
	for _, trial := range trials {
		if _, err := s.SyncHeritageTrial(ctx, trial.ID); err != nil {
			log.Printf("sync sweep: trial %d: %v", trial.ID, err)
			result.Failed++
			continue
		}
		result.Synced++
	}

	orders, err := s.repo.UnsyncedCompletedDiyOrders()
	if err != nil {
		log.Printf("sync sweep: list diy orders: %v", err)
	}
	for _, order := range orders {
		if _, err := s.SyncDiyOrder(ctx, order.ID); err != nil {
			log.Printf("sync sweep: diy order %d: %v", order.ID, err)
			result.Failed++
			continue
		}
		result.Synced++
	}
	return result
}
