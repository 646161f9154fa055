package sales

import (
	"gorm.io/gorm"

	salesEntity "restaurant.GO/model/entity/sales"
)

type SalesOrderRepository struct {
	db *gorm.DB
}

func NewSalesOrderRepository(db *gorm.DB) *SalesOrderRepository {
	return &SalesOrderRepository{db: db}
}

// Create inserts an order and its item rows in one transaction.
func (r *SalesOrderRepository) Create(order *salesEntity.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// FindByNumber loads one order with items.
func (r *SalesOrderRepository) FindByNumber(orderNumber string) (*salesEntity.Order, error) {
	var order salesEntity.Order
	err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update applies field updates to one order.
func (r *SalesOrderRepository) Update(orderNumber string, fields map[string]interface{}) error {
	res := r.db.Model(&salesEntity.Order{}).Where("order_number = ?", orderNumber).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActiveDishes lists menu items visible to sync clients.
func (r *SalesOrderRepository) ActiveDishes() ([]salesEntity.MenuItem, error) {
	var items []salesEntity.MenuItem
	err := r.db.Where("status = ?", "active").Order("item_code").Find(&items).Error
	return items, err
}
