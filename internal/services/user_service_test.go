package services

import (
	"context"
	"errors"
	"testing"

	"weighbridge-backend/internal/auth"
	"weighbridge-backend/internal/config"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/repositories"
)

type memoryUsers struct {
	byID  map[int]*models.User
	fail  error
	getID int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[int]*models.User{}}
}

func (m *memoryUsers) Create(_ context.Context, u *models.User) error {
	m.getID++
	u.ID = m.getID
	m.byID[u.ID] = u
	return nil
}

func (m *memoryUsers) Get(_ context.Context, id int) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func newTestUserService(t *testing.T) (*UserService, *memoryUsers) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test"
	cfg.JWT.ExpirationHours = 1
	users := newMemoryUsers()
	svc := NewUserService(users, auth.NewJWTManager(cfg))
	if _, err := svc.Signup(context.Background(), &models.SignupRequest{
		Name: "Operator", Email: "op@example.com", Password: "correct",
	}); err != nil {
		t.Fatal(err)
	}
	return svc, users
}

func TestLoginClassification(t *testing.T) {
	svc, users := newTestUserService(t)

	tests := []struct {
		name     string
		email    string
		password string
		dbErr    error
		code     AuthErrorCode
		message  string
	}{
		{"wrong password", "op@example.com", "wrong", nil, AuthInvalidCredential, "البريد الإلكتروني أو كلمة المرور غير صحيحة"},
		{"unknown user", "nobody@example.com", "x", nil, AuthInvalidCredential, "البريد الإلكتروني أو كلمة المرور غير صحيحة"},
		{"malformed email", "not-an-email", "x", nil, AuthInvalidEmail, "صيغة البريد الإلكتروني غير صحيحة"},
		{"store outage", "op@example.com", "wrong", errors.New("connection refused"), AuthOther, "حدث خطأ أثناء تسجيل الدخول. يرجى المحاولة مرة أخرى."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users.fail = tt.dbErr
			defer func() { users.fail = nil }()

			_, err := svc.Login(context.Background(), &models.LoginRequest{Email: tt.email, Password: tt.password})
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("error %v is not an *AuthError", err)
			}
			if authErr.Code != tt.code {
				t.Errorf("code = %s, want %s", authErr.Code, tt.code)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestUserService(t)
	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: " op@example.com ", Password: "correct"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" || resp.User.Email != "op@example.com" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	svc, _ := newTestUserService(t)
	_, err := svc.Signup(context.Background(), &models.SignupRequest{Name: "x", Email: "op@example.com", Password: "y"})
	if err == nil {
		t.Error("duplicate signup accepted")
	}
}
