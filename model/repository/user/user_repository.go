package user

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "shopfront.GO/model/entity"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates or refreshes a user record. Role is never downgraded by an
// upsert; only profile fields coming from Telegram are rewritten.
func (r *UserRepository) Upsert(u *entity.User) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "username", "photo_url", "modified",
		}),
	}).Create(u).Error
}

func (r *UserRepository) FindByID(userID string) (*entity.User, error) {
	var u entity.User
	if err := r.db.Where("user_id = ?", userID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List() ([]entity.User, error) {
	var out []entity.User
	if err := r.db.Order("created desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) SetRole(userID, role string) error {
	res := r.db.Model(&entity.User{}).Where("user_id = ?", userID).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
