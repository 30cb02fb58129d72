package service

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode"

	"github.com/userbase/userbase-go/internal/crypto"
	"github.com/userbase/userbase-go/internal/model"
	"github.com/userbase/userbase-go/internal/repository"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrInvalidPhone      = errors.New("phone number must be at least 10 digits")
	ErrInvalidProfession = errors.New("profession must be Engineer or Doctor")
	ErrEmailTaken        = errors.New("email already taken")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration and login.
type AuthService struct {
	store      UserStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret []byte, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		store:      store,
		jwtSecret:  secret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register validates the request, hashes the password and stores the new user.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	if err := validateRegistration(req); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Profession:   model.Profession(req.Profession),
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return user.Response(), nil
}

// Login authenticates a user and returns a signed session token. An unknown
// email and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  user.Response(),
	}, nil
}

func validateRegistration(req model.RegisterRequest) error {
	if req.Name == "" {
		return ErrNameRequired
	}
	if !emailPattern.MatchString(req.Email) {
		return ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !validPhone(req.Phone) {
		return ErrInvalidPhone
	}
	if !model.Profession(req.Profession).Valid() {
		return ErrInvalidProfession
	}
	return nil
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 10
}
