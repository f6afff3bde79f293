package jobs

import (
	"context"
	"time"

	"shopfront.GO/config"
	"shopfront.GO/core/cache"
	"shopfront.GO/core/logger"
	"shopfront.GO/cron"
	journalRepo "shopfront.GO/model/repository/journal"
	settingRepo "shopfront.GO/model/repository/setting"
	productService "shopfront.GO/service/product"
)

func init() {
	cron.Register("sheetimportjob", "0 4 * * *", SheetImportJob)
	// Daily, not hourly: the rollup prunes the raw rows it counts, so it
	// folds yesterday once the day is complete.
	cron.Register("visitrollupjob", "30 0 * * *", VisitRollupJob)
}

// SheetImportJob re-imports every configured category sheet, then rebuilds
// the catalog index and drops cached product responses.
func SheetImportJob(args ...string) {
	log := logger.L()
	db, err := config.NewDB()
	if err != nil {
		log.WithError(err).Error("sheet import: db connect")
		return
	}
	urls, err := settingRepo.NewSettingRepository(db).SheetURLs()
	if err != nil {
		log.WithError(err).Error("sheet import: load sheet URLs")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	imported := 0
	for category, url := range urls {
		res, err := productService.ImportFromSheet(ctx, db, url, productService.ImportOptions{Category: category})
		if err != nil {
			log.WithError(err).WithField("category", category).Error("sheet import failed")
			continue
		}
		for _, w := range res.Warnings {
			log.WithField("category", category).Warn(w)
		}
		log.WithField("category", category).
			WithField("imported", res.Imported).
			WithField("skipped", res.Skipped).
			Info("sheet imported")
		imported += res.Imported
	}
	if imported == 0 {
		return
	}

	if err := productService.CatalogStore(db).Reload(ctx); err != nil {
		log.WithError(err).Error("sheet import: catalog reload")
	}
	cache.GetInstance().DeleteByTag(cache.TagProducts)
}

// VisitRollupJob folds yesterday's raw visit rows into hourly stats.
func VisitRollupJob(args ...string) {
	log := logger.L()
	db, err := config.NewDB()
	if err != nil {
		log.WithError(err).Error("visit rollup: db connect")
		return
	}
	yesterday := time.Now().AddDate(0, 0, -1)
	if err := journalRepo.NewJournalRepository(db).RollupVisits(yesterday); err != nil {
		log.WithError(err).Error("visit rollup failed")
		return
	}
	log.WithField("date", yesterday.Format("2006-01-02")).Info("visits rolled up")
}
