package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
)

// MemoryBookingStore keeps bookings in process. It backs local runs without
// a database and the tests.
type MemoryBookingStore struct {
	mu       sync.Mutex
	dateMu   sync.Mutex
	dates    map[string]*sync.Mutex
	bookings map[uuid.UUID]models.Booking
	now      func() time.Time
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		dates:    make(map[string]*sync.Mutex),
		bookings: make(map[uuid.UUID]models.Booking),
		now:      time.Now,
	}
}

func (s *MemoryBookingStore) filter(keep func(models.Booking) bool) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s *MemoryBookingStore) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	out := s.filter(func(b models.Booking) bool { return b.Date == date })
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (s *MemoryBookingStore) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	out := s.filter(func(b models.Booking) bool { return userID != "" && b.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryBookingStore) ListAll(_ context.Context) ([]models.Booking, error) {
	out := s.filter(func(models.Booking) bool { return true })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *MemoryBookingStore) Get(_ context.Context, id uuid.UUID) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return b, nil
}

func (s *MemoryBookingStore) Create(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	b.Status = b.Status.OrDefault()
	s.bookings[b.ID] = *b
	return nil
}

func (s *MemoryBookingStore) UpdateStatus(_ context.Context, b *models.Booking, from models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Status.OrDefault() != from.OrDefault() {
		return ErrInvalidTransition
	}
	cur.Status = b.Status.OrDefault()
	cur.ApprovedAt, cur.RejectedAt = b.ApprovedAt, b.RejectedAt
	cur.UpdatedAt = s.now()
	s.bookings[b.ID] = cur
	return nil
}

func (s *MemoryBookingStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *MemoryBookingStore) WithDateLock(_ context.Context, date string, fn func(BookingStore) error) error {
	s.dateMu.Lock()
	lock, ok := s.dates[date]
	if !ok {
		lock = &sync.Mutex{}
		s.dates[date] = lock
	}
	s.dateMu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(s)
}

// MemoryServiceStore is the in-process catalog.
type MemoryServiceStore struct {
	mu       sync.Mutex
	services map[string]models.Service
}

func NewMemoryServiceStore(seed ...models.Service) *MemoryServiceStore {
	s := &MemoryServiceStore{services: make(map[string]models.Service)}
	for _, svc := range seed {
		s.services[svc.ID] = svc
	}
	return s
}

func (s *MemoryServiceStore) list(activeOnly bool) []models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		if !activeOnly || svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func (s *MemoryServiceStore) ListActive(_ context.Context) ([]models.Service, error) {
	return s.list(true), nil
}

func (s *MemoryServiceStore) ListAll(_ context.Context) ([]models.Service, error) {
	return s.list(false), nil
}

func (s *MemoryServiceStore) Get(_ context.Context, id string) (models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return models.Service{}, ErrNotFound
	}
	return svc, nil
}

func (s *MemoryServiceStore) Create(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[svc.ID]; ok {
		return ErrServiceExists
	}
	now := time.Now()
	svc.CreatedAt, svc.UpdatedAt = now, now
	s.services[svc.ID] = *svc
	return nil
}

func (s *MemoryServiceStore) Save(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc.UpdatedAt = time.Now()
	s.services[svc.ID] = *svc
	return nil
}

func (s *MemoryServiceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return ErrNotFound
	}
	delete(s.services, id)
	return nil
}
