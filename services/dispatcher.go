package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salonbook-backend/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeBookingNotify is the asynq task type for booking messages.
const TypeBookingNotify = "booking:notify"

// Dispatcher hands a notification off without ever failing the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind NotificationKind, b models.Booking)
}

// DirectDispatcher sends inline and logs failures.
type DirectDispatcher struct {
	Notifier Notifier
	Logger   *zap.Logger
}

func (d DirectDispatcher) Dispatch(ctx context.Context, kind NotificationKind, b models.Booking) {
	if err := d.Notifier.Send(ctx, kind, b); err != nil {
		d.Logger.Warn("notification failed",
			zap.String("kind", string(kind)), zap.String("booking", b.ID.String()), zap.Error(err))
	}
}

type notifyPayload struct {
	Kind    NotificationKind `json:"kind"`
	Booking models.Booking   `json:"booking"`
}

// NewNotifyTask wraps a booking message as a queue task. The booking is
// embedded so a later deletion does not lose the cancellation text.
func NewNotifyTask(kind NotificationKind, b models.Booking) (*asynq.Task, error) {
	payload, err := json.Marshal(notifyPayload{Kind: kind, Booking: b})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, payload, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

// QueueDispatcher enqueues messages in Redis for the notification worker.
// When the queue is unreachable it falls back to sending inline.
type QueueDispatcher struct {
	Client   *asynq.Client
	Fallback Dispatcher
	Logger   *zap.Logger
}

func (d QueueDispatcher) Dispatch(ctx context.Context, kind NotificationKind, b models.Booking) {
	task, err := NewNotifyTask(kind, b)
	if err == nil {
		_, err = d.Client.EnqueueContext(ctx, task)
	}
	if err != nil {
		d.Logger.Warn("enqueue notification failed, sending inline",
			zap.String("kind", string(kind)), zap.String("booking", b.ID.String()), zap.Error(err))
		d.Fallback.Dispatch(ctx, kind, b)
	}
}

// HandleNotifyTask delivers a queued message. Returning an error makes
// asynq retry the task.
func HandleNotifyTask(notifier Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notifyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid notification payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := notifier.Send(ctx, p.Kind, p.Booking); err != nil {
			if errors.Is(err, ErrNoRecipient) {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			logger.Warn("queued notification failed",
				zap.String("kind", string(p.Kind)), zap.String("booking", p.Booking.ID.String()), zap.Error(err))
			return err
		}
		return nil
	}
}

// StartNotificationWorker runs the asynq server in the background and
// returns it so the caller can shut it down.
func StartNotificationWorker(redisOpt asynq.RedisClientOpt, notifier Notifier, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingNotify, HandleNotifyTask(notifier, logger))

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("notification worker failed to start",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		logger.Error("notification worker gave up; messages stay queued")
	}()
	return srv
}
