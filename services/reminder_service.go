// services/reminder_service.go
package services

import (
	"context"
	"time"

	"salonbook-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReminderSchedule runs the reminder job every day at 9 AM.
const DefaultReminderSchedule = "0 9 * * *"

// ReminderService messages every customer with an approved booking for
// the next day.
type ReminderService struct {
	bookings   *BookingService
	dispatcher Dispatcher
	logger     *zap.Logger
	cron       *cron.Cron
}

func NewReminderService(bookings *BookingService, dispatcher Dispatcher, logger *zap.Logger) *ReminderService {
	loc := bookings.Rules().Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		bookings:   bookings,
		dispatcher: dispatcher,
		logger:     logger,
		cron:       cron.New(cron.WithLocation(loc)),
	}
}

// StartScheduler registers the daily job and starts the cron runner.
func (s *ReminderService) StartScheduler(schedule string) error {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	if _, err := s.cron.AddFunc(schedule, func() {
		s.SendDailyReminders(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("reminder scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running job to finish.
func (s *ReminderService) Stop() {
	<-s.cron.Stop().Done()
}

// SendDailyReminders returns how many reminders were handed off.
func (s *ReminderService) SendDailyReminders(ctx context.Context) int {
	tomorrow := utils.FormatDate(s.bookings.Today().AddDate(0, 0, 1))
	bookings, err := s.bookings.Upcoming(ctx, tomorrow)
	if err != nil {
		s.logger.Error("failed to load bookings for reminders", zap.String("date", tomorrow), zap.Error(err))
		return 0
	}

	for _, b := range bookings {
		s.dispatcher.Dispatch(ctx, KindReminder, b)
	}
	s.logger.Info("daily reminders processed", zap.String("date", tomorrow), zap.Int("count", len(bookings)))
	return len(bookings)
}
