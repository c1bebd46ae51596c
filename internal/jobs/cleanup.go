package jobs

import (
	"fmt"
	"log"
	"time"

	"ExcelSummarizer/internal/config"
	"ExcelSummarizer/internal/filestore"
	"ExcelSummarizer/internal/logger"
	"ExcelSummarizer/internal/serviceiface"

	"github.com/robfig/cron/v3"
)

// CleanupService periodically purges generated output files whose download
// window has passed. Schedule and age are overridable from services.yaml.
type CleanupService struct {
	config map[string]interface{}
	store  *filestore.Store
	cron   *cron.Cron
}

func NewCleanupService(cfg map[string]interface{}, store *filestore.Store) serviceiface.Service {
	return &CleanupService{config: cfg, store: store}
}

func (s *CleanupService) Name() string { return "cleanup" }

func (s *CleanupService) Start() error {
	schedule := config.DefaultCleanupSchedule
	maxAge := time.Duration(config.DefaultMaxAgeMinutes) * time.Minute
	if s.config != nil {
		if v, ok := s.config["schedule"].(string); ok && v != "" {
			schedule = v
		}
		switch v := s.config["max_age_minutes"].(type) {
		case int:
			if v > 0 {
				maxAge = time.Duration(v) * time.Minute
			}
		case float64:
			if v > 0 {
				maxAge = time.Duration(v) * time.Minute
			}
		}
	}

	run := func() {
		if dropped := s.store.Purge(maxAge); dropped > 0 {
			logger.Audit(fmt.Sprintf("[Cleanup] removed %d expired output file(s)", dropped))
		}
	}
	// Clear anything already expired before the first tick.
	run()

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, run); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Printf("[Cleanup] scheduled %q, max age %s", schedule, maxAge)
	return nil
}

func (s *CleanupService) Stop() error {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("[Cleanup] stopped")
	return nil
}
