package jobs

import (
	"fmt"
	"log"
	"time"

	"InvoiceDesk/internal/config"
	"InvoiceDesk/internal/logger"
	"InvoiceDesk/internal/notification"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
	cron   *cron.Cron
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) *CronService {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	loc, err := time.LoadLocation(s.timeZone())
	if err != nil {
		loc = time.UTC
	}
	s.cron = cron.New(cron.WithLocation(loc))

	if _, err := s.cron.AddFunc(s.schedule("activity_schedule", config.DefaultActivitySchedule), func() {
		if err := RunActivitySweep(s.db); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Activity sweep failed: %v", err))
		}
	}); err != nil {
		return fmt.Errorf("unable to schedule activity sweep: %v", err)
	}

	if _, err := s.cron.AddFunc(s.schedule("payables_schedule", config.DefaultPayablesSchedule), func() {
		if err := RunPayablesSweep(s.db); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Payables sweep failed: %v", err))
		}
	}); err != nil {
		return fmt.Errorf("unable to schedule payables sweep: %v", err)
	}

	notifier := NewNotifySweep(s.db, notification.NewMailerFromEnv())
	if _, err := s.cron.AddFunc(s.schedule("notify_schedule", config.DefaultNotifySchedule), func() {
		if err := notifier.Run(); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Notify sweep failed: %v", err))
		}
	}); err != nil {
		return fmt.Errorf("unable to schedule notify sweep: %v", err)
	}

	s.cron.Start()
	logger.GlobalLogger.LogAudit("Cron service started: activity, payables and notify sweeps scheduled")
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Println("Cron service stopped.")
	return nil
}

func (s *CronService) schedule(key, fallback string) string {
	if s.config != nil {
		if v, ok := s.config[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

func (s *CronService) timeZone() string {
	if s.config != nil {
		if v, ok := s.config["time_zone"].(string); ok && v != "" {
			return v
		}
	}
	return config.DefaultTimeZone
}
