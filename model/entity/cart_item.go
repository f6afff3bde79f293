package entity

import "time"

// CartItem stores one cart line. Quantity is folded into Qty instead of
// repeating rows per unit; the API expands counts when serving the cart.
type CartItem struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID        string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"-"`
	VariantSKU    string    `gorm:"column:variant_sku;type:varchar(64);not null" json:"variant_sku"`
	DeliveryLabel *string   `gorm:"column:delivery_label;type:varchar(64)" json:"delivery_label,omitempty"`
	Qty           int       `gorm:"column:qty;not null;default:1" json:"qty"`
	Created       time.Time `gorm:"column:created;autoCreateTime" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_item"
}

// Favorite marks a color group saved by a user. The color_sku level matches
// the storefront, where a favorite covers all sizes of one color.
type Favorite struct {
	ID       uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID   string    `gorm:"column:user_id;type:varchar(64);index:idx_fav_user_color,unique;not null" json:"-"`
	ColorSKU string    `gorm:"column:color_sku;type:varchar(64);index:idx_fav_user_color,unique;not null" json:"color_sku"`
	Created  time.Time `gorm:"column:created;autoCreateTime" json:"-"`
}

func (Favorite) TableName() string {
	return "favorite"
}
