package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore persists accounts. Create hashes the password.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Get(ctx context.Context, id uuid.UUID) (models.User, error)
	Create(ctx context.Context, u *models.User) error
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *GormUserStore) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *GormUserStore) Create(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return insertError("create user", err, ErrEmailTaken)
	}
	return nil
}

func (s *GormUserStore) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", &at).Error
}

// MemoryUserStore keeps accounts in process.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryUserStore) Get(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

// Create runs the same hook GORM would.
func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	if err := u.BeforeCreate(nil); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) TouchLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	s.users[id] = u
	return nil
}

// RegisterInput is a new customer account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// AuthService issues tokens for customer and admin accounts.
type AuthService struct {
	users  UserStore
	logger *zap.Logger
}

func NewAuthService(users UserStore, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register creates a customer account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return models.User{}, "", invalid("phone", "phone number must be in international format")
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, "", err
	}

	u := models.User{
		Email:    in.Email,
		Password: in.Password,
		Name:     strings.TrimSpace(in.Name),
		Phone:    utils.NormalizePhone(in.Phone),
		Role:     utils.RoleCustomer,
		IsActive: true,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return models.User{}, "", err
	}
	token, err := issueToken(u)
	if err != nil {
		return models.User{}, "", err
	}
	s.logger.Info("user registered", zap.String("id", u.ID.String()))
	return u, token, nil
}

// Login checks the password and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}
	if !u.IsActive || !utils.CheckPasswordHash(password, u.Password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := issueToken(u)
	if err != nil {
		return models.User{}, "", err
	}
	if err := s.users.TouchLogin(ctx, u.ID, time.Now()); err != nil {
		s.logger.Warn("failed to record login", zap.String("id", u.ID.String()), zap.Error(err))
	}
	return u, token, nil
}

func (s *AuthService) Get(ctx context.Context, id string) (models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return s.users.Get(ctx, uid)
}

// EnsureAdmin creates the admin account on first start.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, no admin account ensured")
		return nil
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	admin := models.User{Email: email, Password: password, Name: "Admin", Role: utils.RoleAdmin, IsActive: true}
	if err := s.users.Create(ctx, &admin); err != nil {
		return err
	}
	s.logger.Info("admin account created", zap.String("email", admin.Email))
	return nil
}

func issueToken(u models.User) (string, error) {
	return utils.GenerateToken(u.ID.String(), u.Name, u.Email, u.Role)
}
