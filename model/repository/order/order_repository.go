package order

import (
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *entity.Order) error {
	return r.db.Create(o).Error
}

func (r *OrderRepository) FindByID(orderID string) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.Where("order_id = ?", orderID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(userID string) ([]entity.Order, error) {
	var out []entity.Order
	if err := r.db.Where("user_id = ?", userID).Order("created desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepository) List(limit, offset int) ([]entity.Order, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	var out []entity.Order
	err := r.db.Order("created desc").Limit(limit).Offset(offset).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *OrderRepository) UpdateStatus(orderID, status string) error {
	res := r.db.Model(&entity.Order{}).Where("order_id = ?", orderID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
