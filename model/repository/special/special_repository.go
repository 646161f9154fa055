package special

import (
	"gorm.io/gorm"

	specialEntity "restaurant.GO/model/entity/special"
)

type SpecialRepository struct {
	db *gorm.DB
}

func NewSpecialRepository(db *gorm.DB) *SpecialRepository {
	return &SpecialRepository{db: db}
}

// TrialWithDish is a trial joined with its heritage dish.
type TrialWithDish struct {
	Trial specialEntity.HeritageDishTrial
	Dish  specialEntity.HeritageDish
}

// FindTrial loads a trial and its dish.
func (r *SpecialRepository) FindTrial(trialID uint) (*TrialWithDish, error) {
	var out TrialWithDish
	if err := r.db.First(&out.Trial, trialID).Error; err != nil {
		return nil, err
	}
	if err := r.db.First(&out.Dish, out.Trial.HeritageDishID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// DiyOrderWithIngredients is a DIY order plus its ingredient names.
type DiyOrderWithIngredients struct {
	Order       specialEntity.DiyDrinkOrder
	Ingredients []string
}

// FindDiyOrder loads an order and the names of its ingredients.
func (r *SpecialRepository) FindDiyOrder(orderID uint) (*DiyOrderWithIngredients, error) {
	var out DiyOrderWithIngredients
	if err := r.db.First(&out.Order, orderID).Error; err != nil {
		return nil, err
	}
	err := r.db.Table("diy_drink_ingredients di").
		Joins("JOIN diy_ingredients i ON i.id = di.ingredient_id").
		Where("di.order_id = ?", orderID).
		Order("i.name").
		Pluck("i.name", &out.Ingredients).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UnsyncedCompletedTrials lists trials eligible for the sweep.
func (r *SpecialRepository) UnsyncedCompletedTrials() ([]specialEntity.HeritageDishTrial, error) {
	var trials []specialEntity.HeritageDishTrial
	err := r.db.Where("sync_status = ? AND status = ?",
		specialEntity.SyncStatusUnsynced, specialEntity.RecordStatusCompleted).
		Find(&trials).Error
	return trials, err
}

// UnsyncedCompletedDiyOrders lists DIY orders eligible for the sweep.
func (r *SpecialRepository) UnsyncedCompletedDiyOrders() ([]specialEntity.DiyDrinkOrder, error) {
	var orders []specialEntity.DiyDrinkOrder
	err := r.db.Where("sync_status = ? AND status = ?",
		specialEntity.SyncStatusUnsynced, specialEntity.RecordStatusCompleted).
		Find(&orders).Error
	return orders, err
}

// MarkTrialSynced records the remote order id and flips the sync flag.
func (r *SpecialRepository) MarkTrialSynced(trialID uint, remoteOrderID string) error {
	return r.db.Model(&specialEntity.HeritageDishTrial{}).
		Where("id = ?", trialID).
		Updates(map[string]interface{}{
			"remote_order_id": remoteOrderID,
			"sync_status":     specialEntity.SyncStatusSynced,
		}).Error
}

// MarkDiyOrderSynced records the remote order id and flips the sync flag.
func (r *SpecialRepository) MarkDiyOrderSynced(orderID uint, remoteOrderID string) error {
	return r.db.Model(&specialEntity.DiyDrinkOrder{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"remote_order_id": remoteOrderID,
			"sync_status":     specialEntity.SyncStatusSynced,
		}).Error
}

// AppendSyncLog appends one attempt row. The log is append-only; sync
// failures here are logged by the caller, never fatal.
func (r *SpecialRepository) AppendSyncLog(entry *specialEntity.SyncLog) error {
	return r.db.Create(entry).Error
}

// SyncLogs lists attempts for one record, newest first.
func (r *SpecialRepository) SyncLogs(syncType string, recordID uint) ([]specialEntity.SyncLog, error) {
	var logs []specialEntity.SyncLog
	err := r.db.Where("sync_type = ? AND record_id = ?", syncType, recordID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}
