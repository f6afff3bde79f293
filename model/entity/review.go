package entity

import "time"

// Review is a storefront testimonial managed from the back-office.
type Review struct {
	ID       uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Author   string    `gorm:"column:author;type:varchar(128);not null" json:"author"`
	Text     string    `gorm:"column:text;type:varchar(2048);not null" json:"text"`
	Rating   int       `gorm:"column:rating;not null;default:5" json:"rating"`
	ImageURL *string   `gorm:"column:image_url;type:varchar(512)" json:"image_url,omitempty"`
	Created  time.Time `gorm:"column:created;autoCreateTime" json:"created"`
}

func (Review) TableName() string {
	return "review"
}

// SearchRequest is a customer's ask to source a product the catalog lacks.
type SearchRequest struct {
	ID      uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"column:user_id;type:varchar(64);index" json:"user_id"`
	Name    string    `gorm:"column:name;type:varchar(128)" json:"name"`
	Contact string    `gorm:"column:contact;type:varchar(128);not null" json:"contact"`
	Text    string    `gorm:"column:text;type:varchar(2048);not null" json:"text"`
	Created time.Time `gorm:"column:created;autoCreateTime" json:"created"`
}

func (SearchRequest) TableName() string {
	return "search_request"
}
