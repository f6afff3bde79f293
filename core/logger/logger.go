package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	journalRepo "shopfront.GO/model/repository/journal"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// L returns the shared application logger.
func L() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(os.Stdout)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if os.Getenv("LOG_LEVEL") == "debug" {
			log.SetLevel(logrus.DebugLevel)
		}
	})
	return log
}

// AttachJournal adds the DB journal hook so warnings and errors land in the
// admin log table. Call once after the DB connection is up.
func AttachJournal(db *gorm.DB) {
	L().AddHook(&journalHook{repo: journalRepo.NewJournalRepository(db)})
}

// journalHook persists warn-and-above entries. Persistence failures are
// swallowed; the journal must never take the request path down with it.
type journalHook struct {
	repo *journalRepo.JournalRepository
}

func (h *journalHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *journalHook) Fire(e *logrus.Entry) error {
	source := ""
	if v, ok := e.Data["source"]; ok {
		if s, ok := v.(string); ok {
			source = s
		}
	}
	_ = h.repo.Append(e.Level.String(), source, e.Message)
	return nil
}
