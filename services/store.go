package services

import (
	"context"
	"errors"
	"fmt"

	"salonbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStore persists bookings. Listing methods return every status;
// visibility is applied by the caller.
type BookingStore interface {
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (models.Booking, error)
	Create(ctx context.Context, b *models.Booking) error
	// UpdateStatus writes b's status only if the stored status is still
	// from, and returns ErrInvalidTransition otherwise.
	UpdateStatus(ctx context.Context, b *models.Booking, from models.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// WithDateLock runs fn while holding an exclusive lock on date.
	// Reads and writes made through the store passed to fn happen
	// atomically with respect to other callers locking the same date.
	WithDateLock(ctx context.Context, date string, fn func(BookingStore) error) error
}

// ServiceStore persists the treatment catalog.
type ServiceStore interface {
	ListActive(ctx context.Context) ([]models.Service, error)
	ListAll(ctx context.Context) ([]models.Service, error)
	Get(ctx context.Context, id string) (models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Save(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id string) error
}

type GormBookingStore struct {
	db *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{db: db}
}

func (s *GormBookingStore) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).Where("date = ?", date).Order("time ASC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", date, err)
	}
	return bookings, nil
}

func (s *GormBookingStore) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings for user: %w", err)
	}
	return bookings, nil
}

func (s *GormBookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Order("date ASC, time ASC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *GormBookingStore) Get(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, ErrNotFound
		}
		return b, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (s *GormBookingStore) Create(ctx context.Context, b *models.Booking) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *GormBookingStore) UpdateStatus(ctx context.Context, b *models.Booking, from models.BookingStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, from.OrDefault()).
		Updates(map[string]interface{}{
			"status":      b.Status.OrDefault(),
			"approved_at": b.ApprovedAt,
			"rejected_at": b.RejectedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(ctx, b.ID); err != nil {
			return err
		}
		return ErrInvalidTransition
	}
	return nil
}

func (s *GormBookingStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// WithDateLock takes a transaction-scoped Postgres advisory lock keyed on
// the date, so concurrent reservations for one day are serialised.
func (s *GormBookingStore) WithDateLock(ctx context.Context, date string, fn func(BookingStore) error) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "booking:"+date).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("lock %s: %w", date, err)
	}

	if err := fn(&GormBookingStore{db: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type GormServiceStore struct {
	db *gorm.DB
}

func NewGormServiceStore(db *gorm.DB) *GormServiceStore {
	return &GormServiceStore{db: db}
}

func (s *GormServiceStore) ListActive(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).Where("active = ?", true).
		Order("category ASC, label ASC").Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("list active services: %w", err)
	}
	return services, nil
}

func (s *GormServiceStore) ListAll(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.db.WithContext(ctx).Order("category ASC, label ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *GormServiceStore) Get(ctx context.Context, id string) (models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return svc, ErrNotFound
		}
		return svc, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

func (s *GormServiceStore) Create(ctx context.Context, svc *models.Service) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", svc.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check service: %w", err)
	}
	if count > 0 {
		return ErrServiceExists
	}
	if err := s.db.WithContext(ctx).Create(svc).Error; err != nil {
		return insertError("create service", err, ErrServiceExists)
	}
	return nil
}

// insertError maps a unique-key violation to dup, so a create racing the
// existence check still reports a conflict. It relies on the connection's
// TranslateError setting.
func insertError(op string, err, dup error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dup
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *GormServiceStore) Save(ctx context.Context, svc *models.Service) error {
	if err := s.db.WithContext(ctx).Save(svc).Error; err != nil {
		return fmt.Errorf("save service: %w", err)
	}
	return nil
}

func (s *GormServiceStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
