package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Order statuses.
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDone      = "done"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed checkout. Items keeps the grouped cart lines as JSON,
// frozen at order time so later catalog edits cannot rewrite history.
type Order struct {
	OrderID       string         `gorm:"column:order_id;type:varchar(36);primaryKey" json:"order_id"`
	UserID        string         `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Items         datatypes.JSON `gorm:"column:items;not null" json:"items"`
	Total         float64        `gorm:"column:total;not null" json:"total"`
	PaymentMethod string         `gorm:"column:payment_method;type:varchar(32)" json:"payment_method"`
	DeliveryType  string         `gorm:"column:delivery_type;type:varchar(32)" json:"delivery_type"`
	DeliveryPrice float64        `gorm:"column:delivery_price;not null;default:0" json:"delivery_price"`
	DeliveryDate  *time.Time     `gorm:"column:delivery_date" json:"delivery_date"`
	FirstName     string         `gorm:"column:first_name;type:varchar(64)" json:"first_name"`
	LastName      string         `gorm:"column:last_name;type:varchar(64)" json:"last_name"`
	MiddleName    string         `gorm:"column:middle_name;type:varchar(64)" json:"middle_name"`
	Phone         string         `gorm:"column:phone;type:varchar(32)" json:"phone"`
	Email         string         `gorm:"column:email;type:varchar(128)" json:"email"`
	Status        string         `gorm:"column:status;type:varchar(16);not null;default:new" json:"status"`
	Created       time.Time      `gorm:"column:created;autoCreateTime" json:"created"`
	Modified      time.Time      `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

func (Order) TableName() string {
	return "shop_order"
}

// OrderItem is the JSON shape of one line inside Order.Items.
type OrderItem struct {
	VariantSKU     string  `json:"variant_sku"`
	SKU            string  `json:"sku,omitempty"`
	Name           string  `json:"name,omitempty"`
	Brand          string  `json:"brand,omitempty"`
	SizeLabel      string  `json:"size_label,omitempty"`
	Price          float64 `json:"price"`
	Qty            int     `json:"qty"`
	DeliveryOption string  `json:"delivery_option,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
}
