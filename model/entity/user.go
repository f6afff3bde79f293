package entity

import "time"

// User roles. Telegram identities use the numeric Telegram id as UserID;
// anonymous visitors get a generated UUID.
const (
	RoleVisitor = "visitor"
	RoleClient  = "client"
	RoleAdmin   = "admin"
)

type User struct {
	UserID    string    `gorm:"column:user_id;type:varchar(64);primaryKey" json:"user_id"`
	FirstName string    `gorm:"column:first_name;type:varchar(64)" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:varchar(64)" json:"last_name"`
	Username  string    `gorm:"column:username;type:varchar(64)" json:"username"`
	PhotoURL  *string   `gorm:"column:photo_url;type:varchar(512)" json:"photo_url"`
	Role      string    `gorm:"column:role;type:varchar(16);not null;default:visitor" json:"role"`
	Created   time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified  time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

func (User) TableName() string {
	return "shop_user"
}
