package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/scheduling"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingRequest is a booking as submitted by a customer or an admin.
type BookingRequest struct {
	Services []string
	Name     string
	Phone    string
	Email    string
	Date     string
	Time     string
	Notes    string
}

// AvailabilityResult is one day's grid for a service selection. Date echoes
// the request so clients can drop responses for a date no longer selected.
type AvailabilityResult struct {
	Date            string                   `json:"date"`
	Services        []models.ServiceSnapshot `json:"services"`
	DurationMinutes int                      `json:"durationMinutes"`
	TotalPrice      int                      `json:"totalPrice"`
	Slots           []scheduling.SlotState   `json:"slots"`
}

// BookingWindow is the range of days a customer may pick from.
type BookingWindow struct {
	Today      string         `json:"today"`
	MinDate    string         `json:"minDate"`
	MaxDate    string         `json:"maxDate,omitempty"`
	ClosedDays []time.Weekday `json:"closedDays"`
}

// BookingService owns the booking lifecycle. Occupancy is always derived
// from a fresh store read; the reservation re-check runs under the
// store's per-date lock.
type BookingService struct {
	bookings   BookingStore
	catalog    ServiceStore
	rules      scheduling.Rules
	dispatcher Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewBookingService(bookings BookingStore, catalog ServiceStore, rules scheduling.Rules, dispatcher Dispatcher, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookings:   bookings,
		catalog:    catalog,
		rules:      rules,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock replaces the time source.
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// Rules returns the business rules the service was built with.
func (s *BookingService) Rules() scheduling.Rules {
	return s.rules
}

// Today is the current calendar day in the salon's timezone.
func (s *BookingService) Today() time.Time {
	return s.rules.Today(s.now())
}

func (s *BookingService) Window() BookingWindow {
	today := s.Today()
	w := BookingWindow{
		Today:      utils.FormatDate(today),
		MinDate:    utils.FormatDate(s.rules.MinimumBookableDate(today)),
		ClosedDays: s.rules.ClosedDays,
	}
	if last := s.rules.MaximumBookableDate(today); !last.IsZero() {
		w.MaxDate = utils.FormatDate(last)
	}
	return w
}

// Availability lays out date for the selected services as a customer sees
// it: only approved bookings block.
func (s *BookingService) Availability(ctx context.Context, date string, serviceIDs []string) (AvailabilityResult, error) {
	day, err := s.rules.ParseDate(date)
	if err != nil {
		return AvailabilityResult{}, invalid("date", err.Error())
	}
	if err := s.rules.CheckDate(day, s.Today()); err != nil {
		return AvailabilityResult{}, err
	}

	catalog, err := s.catalog.ListActive(ctx)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("load services: %w", err)
	}
	selected := scheduling.ResolveServices(serviceIDs, catalog)
	if len(selected) == 0 {
		return AvailabilityResult{}, ErrNoServices
	}

	result := AvailabilityResult{
		Date:            utils.FormatDate(day),
		Services:        make([]models.ServiceSnapshot, 0, len(selected)),
		DurationMinutes: scheduling.TotalDuration(selected),
	}
	for _, svc := range selected {
		result.Services = append(result.Services, svc.Snapshot())
		result.TotalPrice += svc.Price
	}

	blocking := scheduling.FilterBlocking(s.bookingsOn(ctx, result.Date), scheduling.CustomerView)
	result.Slots = s.rules.DaySlots(day, s.now(), result.DurationMinutes, blocking)
	return result, nil
}

// bookingsOn is a display read; a store failure shows as an empty day.
func (s *BookingService) bookingsOn(ctx context.Context, date string) []models.Booking {
	bookings, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("failed to load bookings", zap.String("date", date), zap.Error(err))
		return nil
	}
	return bookings
}

// Submit records a customer's booking request as pending.
func (s *BookingService) Submit(ctx context.Context, req BookingRequest, identity *models.Identity) (models.Booking, error) {
	return s.reserve(ctx, req, identity, false)
}

// AdminCreate books on behalf of a customer. The booking is approved at
// once and pending requests block it too. The lead time does not apply.
// The admin's own identity is not attached to the booking.
func (s *BookingService) AdminCreate(ctx context.Context, req BookingRequest, admin *models.Identity) (models.Booking, error) {
	b, err := s.reserve(ctx, req, nil, true)
	if err == nil && admin != nil {
		s.logger.Info("booking entered by admin", zap.String("id", b.ID.String()), zap.String("admin", admin.Email))
	}
	return b, err
}

func (s *BookingService) reserve(ctx context.Context, req BookingRequest, identity *models.Identity, admin bool) (models.Booking, error) {
	if err := validateRequest(req, identity); err != nil {
		return models.Booking{}, err
	}
	day, err := s.rules.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return models.Booking{}, invalid("date", err.Error())
	}

	now := s.now()
	today := s.rules.Today(now)
	if admin {
		if s.rules.IsClosedDay(day) {
			return models.Booking{}, scheduling.ErrClosedDay
		}
		if utils.DaysBetween(today, day) < 0 {
			return models.Booking{}, scheduling.ErrSlotPassed
		}
	} else if err := s.rules.CheckDate(day, today); err != nil {
		return models.Booking{}, err
	}

	catalog, err := s.catalog.ListActive(ctx)
	if err != nil {
		return models.Booking{}, fmt.Errorf("load services: %w", err)
	}
	form := scheduling.BookingForm{
		Name: req.Name, Phone: req.Phone, Email: req.Email,
		Date: utils.FormatDate(day), Time: req.Time, Notes: req.Notes,
	}
	booking := scheduling.BuildBookingPayload(req.Services, catalog, form, identity)
	if len(booking.Services) == 0 {
		return models.Booking{}, ErrNoServices
	}
	booking.Time = scheduling.MinutesToTime(scheduling.TimeToMinutes(booking.Time))

	if !s.rules.OnGrid(booking.Time) {
		return models.Booking{}, scheduling.ErrOffGrid
	}
	if !s.rules.FitsBusinessHours(booking.Time, booking.DurationMinutes) {
		return models.Booking{}, scheduling.ErrOutsideBusinessHours
	}
	if !contains(s.rules.AvailableStartTimesFor(day, []string{booking.Time}, now), booking.Time) {
		return models.Booking{}, scheduling.ErrSlotPassed
	}

	view := scheduling.CustomerView
	if admin {
		view = scheduling.AdminView
		booking.Status = models.StatusApproved
		approvedAt := now
		booking.ApprovedAt = &approvedAt
	}

	err = s.bookings.WithDateLock(ctx, booking.Date, func(tx BookingStore) error {
		existing, err := tx.ListByDate(ctx, booking.Date)
		if err != nil {
			return err
		}
		blocking := scheduling.FilterBlocking(existing, view)
		if !s.rules.IsRangeAvailable(booking.Time, booking.DurationMinutes, blocking) {
			return ErrSlotTaken
		}
		return tx.Create(ctx, &booking)
	})
	if err != nil {
		if !errors.Is(err, ErrSlotTaken) {
			s.logger.Error("failed to save booking", zap.String("date", booking.Date), zap.Error(err))
		}
		return models.Booking{}, err
	}

	s.logger.Info("booking created",
		zap.String("id", booking.ID.String()),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
		zap.String("status", string(booking.Status)))
	return booking, nil
}

func validateRequest(req BookingRequest, identity *models.Identity) error {
	if strings.TrimSpace(req.Name) == "" && (identity == nil || identity.DisplayName == "") {
		return invalid("name", "name is required")
	}
	if !utils.ValidatePhone(req.Phone) {
		return invalid("phone", "phone number must be in international format")
	}
	if !utils.ValidateClock(strings.TrimSpace(req.Time)) {
		return invalid("time", "time must be HH:MM")
	}
	for field, value := range map[string]string{"name": req.Name, "email": req.Email, "notes": req.Notes} {
		if !utils.IsInputSafe(value) {
			return invalid(field, "contains disallowed markup")
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Approve confirms a pending booking. Its range is re-checked against the
// other approved bookings of the day, since pending requests may overlap.
func (s *BookingService) Approve(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status != models.StatusPending {
		return models.Booking{}, ErrInvalidTransition
	}

	err = s.bookings.WithDateLock(ctx, b.Date, func(tx BookingStore) error {
		existing, err := tx.ListByDate(ctx, b.Date)
		if err != nil {
			return err
		}
		others := make([]models.Booking, 0, len(existing))
		for _, e := range existing {
			if e.ID == b.ID {
				if e.Status != models.StatusPending {
					return ErrInvalidTransition
				}
				continue
			}
			others = append(others, e)
		}
		if !s.rules.IsRangeAvailable(b.Time, b.DurationMinutes, scheduling.FilterBlocking(others, scheduling.CustomerView)) {
			return ErrSlotTaken
		}
		now := s.now()
		b.Status = models.StatusApproved
		b.ApprovedAt = &now
		return tx.UpdateStatus(ctx, &b, models.StatusPending)
	})
	if err != nil {
		return models.Booking{}, err
	}

	s.logger.Info("booking approved", zap.String("id", b.ID.String()))
	s.dispatcher.Dispatch(ctx, KindApproval, b)
	return b, nil
}

// Reject declines a pending booking. The status is re-read under the date
// lock so a concurrent approval is never overwritten.
func (s *BookingService) Reject(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status != models.StatusPending {
		return models.Booking{}, ErrInvalidTransition
	}

	err = s.bookings.WithDateLock(ctx, b.Date, func(tx BookingStore) error {
		cur, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if cur.Status != models.StatusPending {
			return ErrInvalidTransition
		}
		now := s.now()
		b = cur
		b.Status = models.StatusRejected
		b.RejectedAt = &now
		return tx.UpdateStatus(ctx, &b, models.StatusPending)
	})
	if err != nil {
		return models.Booking{}, err
	}

	s.logger.Info("booking rejected", zap.String("id", b.ID.String()))
	s.dispatcher.Dispatch(ctx, KindRejection, b)
	return b, nil
}

// Delete removes a booking of any status. Only an approved booking held a
// slot the customer relied on, so only that one triggers a cancellation.
// The status deciding that is the one seen under the date lock.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.bookings.WithDateLock(ctx, b.Date, func(tx BookingStore) error {
		cur, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		b = cur
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking deleted", zap.String("id", b.ID.String()), zap.String("status", string(b.Status)))
	if b.Status == models.StatusApproved {
		s.dispatcher.Dispatch(ctx, KindCancellation, b)
	}
	return nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	return s.bookings.Get(ctx, id)
}

// ListMine returns the caller's bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, identity *models.Identity) []models.Booking {
	if identity == nil || identity.ID == "" {
		return []models.Booking{}
	}
	bookings, err := s.bookings.ListByUser(ctx, identity.ID)
	if err != nil {
		s.logger.Error("failed to load user bookings", zap.String("user", identity.ID), zap.Error(err))
		return []models.Booking{}
	}
	return bookings
}

func (s *BookingService) all(ctx context.Context) []models.Booking {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load bookings", zap.Error(err))
		return []models.Booking{}
	}
	return bookings
}

// List returns every booking matching filter, by date and time.
func (s *BookingService) List(ctx context.Context, filter BookingFilter) []models.Booking {
	return FilterBookings(s.all(ctx), filter, utils.FormatDate(s.Today()))
}

func (s *BookingService) Stats(ctx context.Context) BookingStats {
	return ComputeStats(s.all(ctx), utils.FormatDate(s.Today()))
}

// Week builds the admin calendar for the week containing anchor.
func (s *BookingService) Week(ctx context.Context, anchor time.Time) scheduling.WeekGrid {
	var bookings []models.Booking
	for _, d := range scheduling.WeekDatesContaining(anchor) {
		bookings = append(bookings, s.bookingsOn(ctx, utils.FormatDate(d))...)
	}
	return s.rules.BuildWeekGrid(anchor, s.now(), bookings)
}

// Upcoming returns the approved bookings of date, used by the reminder job.
func (s *BookingService) Upcoming(ctx context.Context, date string) ([]models.Booking, error) {
	bookings, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return scheduling.FilterBlocking(bookings, scheduling.CustomerView), nil
}
