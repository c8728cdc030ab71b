package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salonbook-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationKind selects the message sent to a customer.
type NotificationKind string

const (
	KindApproval     NotificationKind = "approval"
	KindRejection    NotificationKind = "rejection"
	KindCancellation NotificationKind = "cancellation"
	KindReminder     NotificationKind = "reminder"
)

var ErrNoRecipient = errors.New("booking has no phone number to notify")

// Notifier delivers one message about a booking.
type Notifier interface {
	Send(ctx context.Context, kind NotificationKind, b models.Booking) error
}

// RenderMessage builds the text for kind.
func RenderMessage(kind NotificationKind, b models.Booking, salonName string) string {
	when := b.Date + " " + b.Time
	services := strings.Join(b.ServiceLabels(), ", ")

	switch kind {
	case KindApproval:
		return fmt.Sprintf("Dear %s, your booking at %s for %s is confirmed. Services: %s (%d min, %d Ft). See you soon!",
			b.Name, salonName, when, services, b.DurationMinutes, b.TotalPrice)
	case KindRejection:
		return fmt.Sprintf("Dear %s, unfortunately %s cannot accept your booking for %s. Please choose another time.",
			b.Name, salonName, when)
	case KindCancellation:
		return fmt.Sprintf("Dear %s, your booking at %s for %s has been cancelled.", b.Name, salonName, when)
	case KindReminder:
		return fmt.Sprintf("Reminder: %s, you have an appointment at %s on %s. Services: %s.",
			b.Name, salonName, when, services)
	}
	return ""
}

// TwilioConfig holds the sender numbers and credentials.
type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
	SalonName      string
}

// TwilioNotifier sends WhatsApp messages to E.164 numbers and SMS to
// everything else, logging every attempt to the notification_logs table.
type TwilioNotifier struct {
	db     *gorm.DB
	client *twilio.RestClient
	cfg    TwilioConfig
	logger *zap.Logger
}

func NewTwilioNotifier(db *gorm.DB, cfg TwilioConfig, logger *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		cfg:    cfg,
		logger: logger,
	}
}

func (n *TwilioNotifier) Send(ctx context.Context, kind NotificationKind, b models.Booking) error {
	if b.Phone == "" {
		return ErrNoRecipient
	}
	message := RenderMessage(kind, b, n.cfg.SalonName)

	channel := "sms"
	to := b.Phone
	params := &twilioApi.CreateMessageParams{}
	if strings.HasPrefix(b.Phone, "+") && n.cfg.WhatsAppNumber != "" {
		channel = "whatsapp"
		to = "whatsapp:" + b.Phone
		params.SetFrom("whatsapp:" + n.cfg.WhatsAppNumber)
	} else {
		params.SetFrom(n.cfg.PhoneNumber)
	}
	params.SetTo(to)
	params.SetBody(message)

	resp, sendErr := n.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if sendErr != nil {
		status = "failed"
		errorMsg = sendErr.Error()
	} else if resp.Sid != nil {
		n.logger.Info("notification sent",
			zap.String("booking", b.ID.String()), zap.String("kind", string(kind)), zap.String("sid", *resp.Sid))
	}

	entry := models.NotificationLog{
		BookingID:    b.ID,
		Kind:         string(kind),
		Recipient:    b.Phone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}
	if err := n.db.WithContext(ctx).Create(&entry).Error; err != nil {
		n.logger.Warn("failed to log notification", zap.String("booking", b.ID.String()), zap.Error(err))
	}

	if sendErr != nil {
		return fmt.Errorf("send %s via %s: %w", kind, channel, sendErr)
	}
	return nil
}

// LogNotifier only writes the message to the log. It is used when no
// messaging provider is configured.
type LogNotifier struct {
	SalonName string
	Logger    *zap.Logger
}

func (n LogNotifier) Send(_ context.Context, kind NotificationKind, b models.Booking) error {
	if b.Phone == "" && b.Email == "" {
		return ErrNoRecipient
	}
	n.Logger.Info("notification",
		zap.String("kind", string(kind)),
		zap.String("booking", b.ID.String()),
		zap.String("phone", b.Phone),
		zap.String("message", RenderMessage(kind, b, n.SalonName)))
	return nil
}
