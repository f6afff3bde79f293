package entity

import "time"

// AdminSetting is a key-value configuration row editable from the
// back-office. Public keys (prefix "public_") are served to the storefront
// via get_parameters; delivery_time_N and delivery_price_N pairs feed the
// delivery options attached to every serialized product.
type AdminSetting struct {
	Key      string    `gorm:"column:setting_key;type:varchar(64);primaryKey"`
	Value    string    `gorm:"column:setting_value;type:varchar(1024);not null"`
	Modified time.Time `gorm:"column:modified;autoUpdateTime"`
}

func (AdminSetting) TableName() string {
	return "admin_setting"
}

// SheetURL stores the Google Sheets export URL configured per category.
type SheetURL struct {
	Category string    `gorm:"column:category;type:varchar(32);primaryKey"`
	URL      string    `gorm:"column:url;type:varchar(1024);not null"`
	Modified time.Time `gorm:"column:modified;autoUpdateTime"`
}

func (SheetURL) TableName() string {
	return "sheet_url"
}
