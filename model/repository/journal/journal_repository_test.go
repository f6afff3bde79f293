package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
)

func journalDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("journal_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.LogEntry{}, &entity.Visit{}, &entity.VisitStat{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLogsPaging(t *testing.T) {
	db := journalDB(t)
	repo := NewJournalRepository(db)
	for i := 0; i < 5; i++ {
		if err := repo.Append("warning", "test", fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	rows, total, err := repo.Logs(2, 0)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// newest first
	if rows[0].Message != "msg 4" {
		t.Errorf("rows[0] = %q, want msg 4", rows[0].Message)
	}
}

func TestRollupVisits(t *testing.T) {
	db := journalDB(t)
	repo := NewJournalRepository(db)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	mk := func(hour int) {
		v := entity.Visit{Path: "/api/product/list_products", Created: day.Add(time.Duration(hour) * time.Hour)}
		if err := db.Create(&v).Error; err != nil {
			t.Fatalf("seed visit: %v", err)
		}
	}
	mk(9)
	mk(9)
	mk(14)
	// outside the day, must survive the prune
	other := entity.Visit{Path: "/api/product/facets", Created: day.AddDate(0, 0, 1).Add(time.Hour)}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed visit: %v", err)
	}

	if err := repo.RollupVisits(day); err != nil {
		t.Fatalf("RollupVisits: %v", err)
	}

	hours, err := repo.DailyVisits("2026-08-31")
	if err != nil {
		t.Fatalf("DailyVisits: %v", err)
	}
	if hours[9] != 2 || hours[14] != 1 {
		t.Errorf("hours = %v", hours)
	}
	if hours[0] != 0 {
		t.Errorf("hours[0] = %d, want 0", hours[0])
	}

	var raw int64
	db.Model(&entity.Visit{}).Count(&raw)
	if raw != 1 {
		t.Errorf("raw visits after rollup = %d, want 1 (only next day's row)", raw)
	}
}

func TestRollupVisitsIdempotent(t *testing.T) {
	db := journalDB(t)
	repo := NewJournalRepository(db)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	v := entity.Visit{Created: day.Add(10 * time.Hour)}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed visit: %v", err)
	}
	if err := repo.RollupVisits(day); err != nil {
		t.Fatalf("first rollup: %v", err)
	}
	// second run sees no raw rows and must not clear the stat
	if err := repo.RollupVisits(day); err != nil {
		t.Fatalf("second rollup: %v", err)
	}
	hours, err := repo.DailyVisits("2026-08-31")
	if err != nil {
		t.Fatalf("DailyVisits: %v", err)
	}
	if hours[10] != 1 {
		t.Errorf("hours[10] = %d, want 1", hours[10])
	}
}

func TestDailyVisitsUnknownDate(t *testing.T) {
	repo := NewJournalRepository(journalDB(t))
	hours, err := repo.DailyVisits("1999-01-01")
	if err != nil {
		t.Fatalf("DailyVisits: %v", err)
	}
	for h, n := range hours {
		if n != 0 {
			t.Errorf("hours[%d] = %d, want 0", h, n)
		}
	}
}
