package entity

import "time"

// LogEntry is one row of the admin journal. The logrus journal hook writes
// warn-and-above records here; the back-office pages through them.
type LogEntry struct {
	ID      uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Level   string    `gorm:"column:level;type:varchar(16);not null"`
	Source  string    `gorm:"column:source;type:varchar(64)"`
	Message string    `gorm:"column:message;type:varchar(2048);not null"`
	Created time.Time `gorm:"column:created;autoCreateTime;index"`
}

func (LogEntry) TableName() string {
	return "log_entry"
}

// Visit is one raw storefront hit, recorded per request.
type Visit struct {
	ID      uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID  string    `gorm:"column:user_id;type:varchar(64)"`
	Path    string    `gorm:"column:path;type:varchar(255)"`
	Created time.Time `gorm:"column:created;autoCreateTime;index"`
}

func (Visit) TableName() string {
	return "visit"
}

// VisitStat is the hourly rollup the admin dashboard charts.
type VisitStat struct {
	Date  string `gorm:"column:date;type:varchar(10);primaryKey"`
	Hour  int    `gorm:"column:hour;primaryKey"`
	Count int    `gorm:"column:count;not null;default:0"`
}

func (VisitStat) TableName() string {
	return "visit_stat"
}
