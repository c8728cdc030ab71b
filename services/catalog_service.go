package services

import (
	"context"
	"errors"
	"strings"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"go.uber.org/zap"
)

// ServiceInput is the editable part of a catalog entry.
type ServiceInput struct {
	Label    string
	Price    int
	Duration int
	Category models.ServiceCategory
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Label) == "" {
		return invalid("label", "label is required")
	}
	if in.Price < 0 {
		return invalid("price", "price must not be negative")
	}
	if in.Duration <= 0 {
		return invalid("duration", "duration must be positive")
	}
	if !in.Category.Valid() {
		return invalid("category", "unknown category")
	}
	return nil
}

// CatalogService manages the treatment list. Updates replace the whole
// entry; concurrent edits resolve to the last write.
type CatalogService struct {
	store  ServiceStore
	logger *zap.Logger
}

func NewCatalogService(store ServiceStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// ListActive is a display read and degrades to an empty catalog.
func (s *CatalogService) ListActive(ctx context.Context) []models.Service {
	services, err := s.store.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to load services", zap.Error(err))
		return []models.Service{}
	}
	return services
}

func (s *CatalogService) ListAll(ctx context.Context) []models.Service {
	services, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load services", zap.Error(err))
		return []models.Service{}
	}
	return services
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.Service, error) {
	return s.store.Get(ctx, id)
}

// Create adds an active service whose id is the slug of its label.
func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (models.Service, error) {
	if err := in.validate(); err != nil {
		return models.Service{}, err
	}
	svc := models.Service{
		ID:       utils.Slugify(in.Label),
		Label:    strings.TrimSpace(in.Label),
		Price:    in.Price,
		Duration: in.Duration,
		Category: in.Category,
		Active:   true,
	}
	if svc.ID == "" {
		return models.Service{}, invalid("label", "label must contain letters or digits")
	}
	if err := s.store.Create(ctx, &svc); err != nil {
		return models.Service{}, err
	}
	s.logger.Info("service created", zap.String("id", svc.ID))
	return svc, nil
}

// Update edits label, price, duration and category. The id stays fixed
// so existing bookings keep pointing at it.
func (s *CatalogService) Update(ctx context.Context, id string, in ServiceInput) (models.Service, error) {
	if err := in.validate(); err != nil {
		return models.Service{}, err
	}
	svc, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Service{}, err
	}
	svc.Label = strings.TrimSpace(in.Label)
	svc.Price = in.Price
	svc.Duration = in.Duration
	svc.Category = in.Category
	if err := s.store.Save(ctx, &svc); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// Deactivate hides a service from booking but keeps it for history.
func (s *CatalogService) Deactivate(ctx context.Context, id string) (models.Service, error) {
	return s.setActive(ctx, id, false)
}

func (s *CatalogService) Activate(ctx context.Context, id string) (models.Service, error) {
	return s.setActive(ctx, id, true)
}

func (s *CatalogService) setActive(ctx context.Context, id string, active bool) (models.Service, error) {
	svc, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Service{}, err
	}
	svc.Active = active
	if err := s.store.Save(ctx, &svc); err != nil {
		return models.Service{}, err
	}
	s.logger.Info("service availability changed", zap.String("id", id), zap.Bool("active", active))
	return svc, nil
}

// DeletePermanently removes an inactive service.
func (s *CatalogService) DeletePermanently(ctx context.Context, id string) error {
	svc, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if svc.Active {
		return ErrServiceStillActive
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("service deleted", zap.String("id", id))
	return nil
}

// SeedResult counts the outcome of SeedDefaults.
type SeedResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SeedDefaults loads the salon's standard price list. Entries that already
// exist are skipped, so running it twice is harmless.
func (s *CatalogService) SeedDefaults(ctx context.Context) SeedResult {
	var res SeedResult
	for _, in := range DefaultCatalog {
		_, err := s.Create(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, ErrServiceExists):
			res.Skipped++
		default:
			res.Failed++
			s.logger.Warn("failed to seed service", zap.String("label", in.Label), zap.Error(err))
		}
	}
	s.logger.Info("default catalog seeded",
		zap.Int("created", res.Created), zap.Int("skipped", res.Skipped), zap.Int("failed", res.Failed))
	return res
}

// DefaultCatalog is the salon's standard price list in HUF.
var DefaultCatalog = []ServiceInput{
	{"Szemöldökigazítás", 1000, 15, models.CategoryBasic},
	{"Szemöldökfestés", 1500, 15, models.CategoryBasic},
	{"Szempillafestés", 1500, 20, models.CategoryBasic},
	{"Bajuszgyanta", 500, 5, models.CategoryBasic},
	{"Arcgyanta", 800, 10, models.CategoryBasic},

	{"Hónaljgyanta", 1500, 10, models.CategoryWaxing},
	{"Kargyanta (félig)", 2000, 10, models.CategoryWaxing},
	{"Kargyanta (teljes)", 2500, 15, models.CategoryWaxing},
	{"Lábszárgyanta", 2200, 10, models.CategoryWaxing},
	{"Lábgyanta (teljes)", 3800, 20, models.CategoryWaxing},
	{"Bikinivonalgyanta", 2500, 10, models.CategoryWaxing},
	{"Teljes fazon gyanta", 4000, 30, models.CategoryWaxing},
	{"Hasgyanta", 4000, 10, models.CategoryWaxing},
	{"Férfi hátgyanta", 3500, 15, models.CategoryWaxing},
	{"Férfi mellkasgyanta", 3500, 10, models.CategoryWaxing},

	{"Arcmasszázs", 5000, 25, models.CategoryMassage},
	{"Arc- és dekoltázsmasszázs", 6000, 25, models.CategoryMassage},
	{"Masszázs kezelésben", 2000, 25, models.CategoryMassage},

	{"Radír + maszk", 3500, 15, models.CategoryFacial},
	{"Tini kezelés", 8000, 60, models.CategoryFacial},
	{"Tisztító kezelés", 10000, 60, models.CategoryFacial},
	{"Glycopure kezelés", 9500, 60, models.CategoryFacial},
	{"Bioplasma kezelés", 11500, 60, models.CategoryFacial},
	{"Nutri-Peptide kezelés", 12500, 60, models.CategoryFacial},
	{"Ester C kezelés", 13500, 60, models.CategoryFacial},
	{"New Age G4 kezelés", 17000, 60, models.CategoryFacial},
}
