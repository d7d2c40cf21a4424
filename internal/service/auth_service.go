package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rvidal/doorway/internal/domain"
	"github.com/rvidal/doorway/internal/repository"
	"github.com/rvidal/doorway/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrWeakPassword       = errors.New("password too short")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	userRepo repository.UserRepository
	codec    *token.Codec
}

func NewAuthService(userRepo repository.UserRepository, codec *token.Codec) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		codec:    codec,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User        *domain.User
	AccessToken string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, ErrMissingFields
	}

	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	// Check if email is taken
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Name:         input.Name,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent signups for the same email land here
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	accessToken, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*domain.User, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	userID, err := s.codec.Subject(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		// A token whose subject is gone reads the same as a bad token
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}
