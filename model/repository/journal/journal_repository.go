package journal

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "shopfront.GO/model/entity"
)

type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Append(level, source, message string) error {
	return r.db.Create(&entity.LogEntry{Level: level, Source: source, Message: message}).Error
}

// Logs pages through the journal, newest first.
func (r *JournalRepository) Logs(limit, offset int) ([]entity.LogEntry, int64, error) {
	var total int64
	if err := r.db.Model(&entity.LogEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 100
	}
	var out []entity.LogEntry
	err := r.db.Order("id desc").Limit(limit).Offset(offset).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// RecordVisit stores one raw storefront hit.
func (r *JournalRepository) RecordVisit(userID, path string) error {
	return r.db.Create(&entity.Visit{UserID: userID, Path: path}).Error
}

// RollupVisits aggregates raw visits for a day into hourly stats and prunes
// the raw rows once counted.
func (r *JournalRepository) RollupVisits(day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	date := start.Format("2006-01-02")

	return r.db.Transaction(func(tx *gorm.DB) error {
		var visits []entity.Visit
		if err := tx.Where("created >= ? AND created < ?", start, end).Find(&visits).Error; err != nil {
			return err
		}
		counts := make(map[int]int)
		for _, v := range visits {
			counts[v.Created.Hour()]++
		}
		for hour, n := range counts {
			row := entity.VisitStat{Date: date, Hour: hour, Count: n}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date"}, {Name: "hour"}},
				DoUpdates: clause.AssignmentColumns([]string{"count"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return tx.Where("created >= ? AND created < ?", start, end).Delete(&entity.Visit{}).Error
	})
}

// DailyVisits returns the hourly counts for one date (24 buckets, zeros
// included).
func (r *JournalRepository) DailyVisits(date string) ([24]int, error) {
	var rows []entity.VisitStat
	var out [24]int
	if err := r.db.Where("date = ?", date).Find(&rows).Error; err != nil {
		return out, err
	}
	for _, row := range rows {
		if row.Hour >= 0 && row.Hour < 24 {
			out[row.Hour] = row.Count
		}
	}
	return out, nil
}
