package cart

import (
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Items returns a user's cart lines in insertion order.
func (r *CartRepository) Items(userID string) ([]entity.CartItem, error) {
	var out []entity.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Replace rewrites a user's cart wholesale. The storefront saves the full
// cart after every local mutation, so replace-all is the only write mode.
func (r *CartRepository) Replace(userID string, items []entity.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].UserID = userID
		}
		return tx.Create(&items).Error
	})
}

// Clear empties the cart, used after order placement.
func (r *CartRepository) Clear(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}

// Favorites returns the color_sku list a user saved.
func (r *CartRepository) Favorites(userID string) ([]string, error) {
	var out []string
	err := r.db.Model(&entity.Favorite{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("color_sku", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceFavorites rewrites the favorites list wholesale, same contract as
// Replace.
func (r *CartRepository) ReplaceFavorites(userID string, colorSKUs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.Favorite{}).Error; err != nil {
			return err
		}
		if len(colorSKUs) == 0 {
			return nil
		}
		rows := make([]entity.Favorite, 0, len(colorSKUs))
		seen := make(map[string]struct{}, len(colorSKUs))
		for _, cs := range colorSKUs {
			if _, dup := seen[cs]; dup {
				continue
			}
			seen[cs] = struct{}{}
			rows = append(rows, entity.Favorite{UserID: userID, ColorSKU: cs})
		}
		return tx.Create(&rows).Error
	})
}
