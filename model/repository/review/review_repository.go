package review

import (
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) List() ([]entity.Review, error) {
	var out []entity.Review
	if err := r.db.Order("created desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewRepository) Create(rev *entity.Review) error {
	return r.db.Create(rev).Error
}

func (r *ReviewRepository) Delete(id uint) error {
	res := r.db.Delete(&entity.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Requests lists product-sourcing asks, newest first.
func (r *ReviewRepository) Requests() ([]entity.SearchRequest, error) {
	var out []entity.SearchRequest
	if err := r.db.Order("created desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewRepository) CreateRequest(req *entity.SearchRequest) error {
	return r.db.Create(req).Error
}

func (r *ReviewRepository) DeleteRequest(id uint) error {
	res := r.db.Delete(&entity.SearchRequest{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
