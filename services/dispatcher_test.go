package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type stubNotifier struct {
	err   error
	calls int
	last  NotificationKind
}

func (n *stubNotifier) Send(_ context.Context, kind NotificationKind, _ models.Booking) error {
	n.calls++
	n.last = kind
	return n.err
}

func TestNotifyTaskRoundTrip(t *testing.T) {
	b := models.Booking{ID: uuid.New(), Name: "Anna", Phone: "+36301234567", Date: "2026-10-21", Time: "10:00"}
	task, err := NewNotifyTask(KindCancellation, b)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TypeBookingNotify {
		t.Fatalf("unexpected task type %s", task.Type())
	}

	n := &stubNotifier{}
	if err := HandleNotifyTask(n, zap.NewNop())(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if n.calls != 1 || n.last != KindCancellation {
		t.Fatalf("notifier not called as expected: %+v", n)
	}
}

func TestHandleNotifyTaskRetryPolicy(t *testing.T) {
	task, _ := NewNotifyTask(KindApproval, models.Booking{ID: uuid.New()})

	transient := &stubNotifier{err: errors.New("provider down")}
	err := HandleNotifyTask(transient, zap.NewNop())(context.Background(), task)
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("transient failures must be retried, got %v", err)
	}

	missing := &stubNotifier{err: ErrNoRecipient}
	err = HandleNotifyTask(missing, zap.NewNop())(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("a missing recipient must not be retried, got %v", err)
	}

	garbage := asynq.NewTask(TypeBookingNotify, []byte("{"))
	if err := HandleNotifyTask(&stubNotifier{}, zap.NewNop())(context.Background(), garbage); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("a bad payload must not be retried, got %v", err)
	}
}

func TestDirectDispatcherSwallowsErrors(t *testing.T) {
	n := &stubNotifier{err: errors.New("boom")}
	DirectDispatcher{Notifier: n, Logger: zap.NewNop()}.Dispatch(context.Background(), KindRejection, models.Booking{})
	if n.calls != 1 {
		t.Fatalf("expected one send attempt, got %d", n.calls)
	}
}

func TestRenderMessage(t *testing.T) {
	b := models.Booking{
		Name: "Anna", Date: "2026-10-21", Time: "10:00",
		Services:        models.ServiceSnapshots{{Label: "Arcmasszázs"}, {Label: "Szempillafestés"}},
		DurationMinutes: 45, TotalPrice: 6500,
	}
	msg := RenderMessage(KindApproval, b, "Adrienn Kozmetika")
	for _, part := range []string{"Anna", "2026-10-21 10:00", "Arcmasszázs, Szempillafestés", "45 min", "6500 Ft"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("approval message %q lacks %q", msg, part)
		}
	}
	for _, kind := range []NotificationKind{KindRejection, KindCancellation, KindReminder} {
		if RenderMessage(kind, b, "Salon") == "" {
			t.Fatalf("no template for %s", kind)
		}
	}
}

func TestLogNotifierNeedsRecipient(t *testing.T) {
	n := LogNotifier{SalonName: "Salon", Logger: zap.NewNop()}
	if err := n.Send(context.Background(), KindApproval, models.Booking{}); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
	if err := n.Send(context.Background(), KindApproval, models.Booking{Phone: "+36301234567"}); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestReminderSendsTomorrowsApprovedBookings(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Submit(ctx, request("10:00", "szemoldokfestes"), nil)
	svc.Approve(ctx, a.ID)
	svc.Submit(ctx, request("11:00", "szemoldokfestes"), nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC) }

	reminders := &recordingDispatcher{}
	r := NewReminderService(svc, reminders, zap.NewNop())
	if n := r.SendDailyReminders(ctx); n != 1 {
		t.Fatalf("expected one reminder, got %d", n)
	}
	if got := reminders.kinds(); len(got) != 1 || got[0] != KindReminder {
		t.Fatalf("unexpected reminders: %v", got)
	}
}
