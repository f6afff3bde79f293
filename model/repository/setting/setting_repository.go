package setting

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "shopfront.GO/model/entity"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) All() ([]entity.AdminSetting, error) {
	var out []entity.AdminSetting
	if err := r.db.Order("setting_key").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Public returns the settings exposed to the storefront without auth.
func (r *SettingRepository) Public() ([]entity.AdminSetting, error) {
	var out []entity.AdminSetting
	err := r.db.Where("setting_key LIKE ?", "public_%").Order("setting_key").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SettingRepository) Get(key string) (string, error) {
	var s entity.AdminSetting
	if err := r.db.Where("setting_key = ?", key).First(&s).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

func (r *SettingRepository) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "modified"}),
	}).Create(&entity.AdminSetting{Key: key, Value: value}).Error
}

func (r *SettingRepository) Delete(key string) error {
	res := r.db.Where("setting_key = ?", key).Delete(&entity.AdminSetting{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeliveryOption is one configured delivery tier: a human label like
// "5-7 дней" plus a price multiplier applied to the base price.
type DeliveryOption struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// DeliveryOptions assembles the delivery_time_N / delivery_price_N setting
// pairs (N in 1..3). Incomplete pairs are skipped.
func (r *SettingRepository) DeliveryOptions() ([]DeliveryOption, error) {
	var rows []entity.AdminSetting
	err := r.db.Where("setting_key LIKE ? OR setting_key LIKE ?", "delivery_time_%", "delivery_price_%").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]string, len(rows))
	for _, row := range rows {
		byKey[row.Key] = row.Value
	}
	var out []DeliveryOption
	for i := 1; i <= 3; i++ {
		n := strconv.Itoa(i)
		label, okL := byKey["delivery_time_"+n]
		priceRaw, okP := byKey["delivery_price_"+n]
		if !okL || !okP {
			continue
		}
		mult, err := strconv.ParseFloat(strings.ReplaceAll(priceRaw, ",", "."), 64)
		if err != nil {
			continue
		}
		out = append(out, DeliveryOption{Label: label, Multiplier: mult})
	}
	return out, nil
}

// SheetURLs returns the configured Sheets export URL per category.
func (r *SettingRepository) SheetURLs() (map[string]string, error) {
	var rows []entity.SheetURL
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Category] = row.URL
	}
	return out, nil
}

func (r *SettingRepository) SetSheetURL(category, url string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "modified"}),
	}).Create(&entity.SheetURL{Category: category, URL: url}).Error
}
