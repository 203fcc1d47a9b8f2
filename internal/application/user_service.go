package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sheet-auth/internal/domain/entity"
	repo "github.com/oksasatya/sheet-auth/internal/domain/repository"
	"github.com/oksasatya/sheet-auth/pkg/helpers"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service composes the user table, password hashing and token issuing.
// All read-modify-write cycles on the store go through mu, which makes the
// service the single writer for the table inside this process.
type Service struct {
	Store    repo.UserStore
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
	HashCost int
	Now      func() time.Time

	mu        sync.RWMutex
	dummyHash string
}

// NewService hashes the timing dummy up front so no login pays for it.
// A zero hashCost selects helpers.DefaultPasswordCost.
func NewService(store repo.UserStore, jwt *helpers.JWTManager, logger *logrus.Logger, hashCost int) *Service {
	s := &Service{
		Store:    store,
		JWT:      jwt,
		Logger:   logger,
		HashCost: hashCost,
		Now:      time.Now,
	}
	h, err := s.hash("dummy-password-for-timing")
	if err != nil {
		helpers.LogError(logger, "hash timing dummy failed", err, nil)
	}
	s.dummyHash = h
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Register appends a new user unless the normalized email is already present.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if entity.FindByEmail(users, email) >= 0 {
		return nil, ErrEmailTaken
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := entity.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Store.SaveAll(append(users, u)); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"email": email})
	return &u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	s.mu.RLock()
	users, err := s.Store.LoadAll()
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	i := entity.FindByEmail(users, email)
	if i < 0 {
		// burn one comparison so both failure paths take the same time
		helpers.CompareHashAndPassword(s.dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	u := users[i]
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Login authenticates and issues a signed token carrying {email, name}.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, string, time.Time, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.JWT.GenerateToken(u.Email, u.Name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("generate token failed")
		}
		return nil, "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResponse{Name: u.Name, Email: u.Email}, token, exp, nil
}

func (s *Service) hash(plain string) (string, error) {
	if s.HashCost == 0 {
		return helpers.HashPassword(plain)
	}
	return helpers.HashPasswordWithCost(plain, s.HashCost)
}
