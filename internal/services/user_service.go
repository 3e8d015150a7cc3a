package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"weighbridge-backend/internal/auth"
	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/repositories"
)

// AuthErrorCode classifies a failed sign-in
type AuthErrorCode string

const (
	AuthInvalidCredential AuthErrorCode = "invalid-credential"
	AuthInvalidEmail      AuthErrorCode = "invalid-email"
	AuthOther             AuthErrorCode = "other"
)

var authMessages = map[AuthErrorCode]string{
	AuthInvalidCredential: "البريد الإلكتروني أو كلمة المرور غير صحيحة",
	AuthInvalidEmail:      "صيغة البريد الإلكتروني غير صحيحة",
	AuthOther:             "حدث خطأ أثناء تسجيل الدخول. يرجى المحاولة مرة أخرى.",
}

// AuthError is a classified sign-in failure. Error() returns the message shown to the user.
type AuthError struct {
	Code AuthErrorCode
	Err  error
}

func (e *AuthError) Error() string {
	return authMessages[e.Code]
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ClassifyAuthError maps any sign-in failure onto one of the three user-facing classes.
// Unknown users and wrong passwords are deliberately indistinguishable.
func ClassifyAuthError(err error) *AuthError {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, errWrongPassword):
		return &AuthError{Code: AuthInvalidCredential, Err: err}
	case errors.Is(err, errBadEmail):
		return &AuthError{Code: AuthInvalidEmail, Err: err}
	default:
		return &AuthError{Code: AuthOther, Err: err}
	}
}

var (
	errWrongPassword = errors.New("wrong password")
	errBadEmail      = errors.New("malformed email")
)

// UserStore is the persistence UserService needs
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserService struct {
	Repo       UserStore
	JWTManager *auth.JWTManager
}

func NewUserService(repo UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

// ValidEmail reports whether s is a bare address (no display name)
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Signup creates a new user with hashed password
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}
	if !ValidEmail(req.Email) {
		return nil, &AuthError{Code: AuthInvalidEmail, Err: errBadEmail}
	}

	if existing, err := s.Repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials. Every failure is returned as an *AuthError.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if !ValidEmail(email) {
		return nil, ClassifyAuthError(errBadEmail)
	}

	var user *models.User
	if userID, ok := cache.GetCachedAuth(ctx, email, req.Password); ok {
		cached, err := s.Repo.Get(ctx, int(userID))
		if err == nil && cached.Email == email {
			user = cached
		}
	}

	if user == nil {
		found, err := s.Repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, ClassifyAuthError(err)
		}
		if !auth.VerifyPassword(found.PasswordHash, req.Password) {
			return nil, ClassifyAuthError(errWrongPassword)
		}
		user = found
		cache.CacheAuth(ctx, email, req.Password, int64(user.ID))
	}

	if !user.IsActive {
		return nil, ClassifyAuthError(errors.New("account suspended"))
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, ClassifyAuthError(err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}
