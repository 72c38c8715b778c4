package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fotostream/identity-api/internal/core/domain"
	"github.com/fotostream/identity-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn      func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn         func(ctx context.Context, id int64) (*domain.User, error)
	listUsersFn  func(ctx context.Context) (*ports.UserListResult, error)
	listRolesFn  func(ctx context.Context) ([]domain.Role, error)
	createRoleFn func(ctx context.Context, name string) (*domain.Role, error)
	assignRoleFn func(ctx context.Context, userID, roleID int64) (*ports.AssignRoleResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, id int64) (*domain.User, error) {
	return s.meFn(ctx, id)
}

func (s *stubAuthService) ListUsers(ctx context.Context) (*ports.UserListResult, error) {
	return s.listUsersFn(ctx)
}

func (s *stubAuthService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.listRolesFn(ctx)
}

func (s *stubAuthService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	return s.createRoleFn(ctx, name)
}

func (s *stubAuthService) AssignRole(ctx context.Context, userID, roleID int64) (*ports.AssignRoleResult, error) {
	return s.assignRoleFn(ctx, userID, roleID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	expires := time.Now().Add(10_000 * time.Hour).UTC()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			if input.Email != "a@x.com" || input.Password != "secret-password" || input.Name != "A" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthResult{
				User:      domain.User{ID: 1, Email: input.Email, Name: input.Name, Role: domain.DefaultRoleName},
				Token:     "token123",
				ExpiresAt: expires,
			}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"email":"a@x.com","password":"secret-password","name":"A"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "a@x.com" || user["name"] != "A" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, present := user["password"]; present {
		t.Fatalf("password leaked in response: %+v", user)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}

	scadenza, ok := resp["scadenza"].(string)
	if !ok {
		t.Fatalf("expected scadenza in response")
	}
	parsed, err := time.Parse(time.RFC3339, scadenza)
	if err != nil {
		t.Fatalf("scadenza not RFC3339: %v", err)
	}
	if !parsed.After(time.Now()) {
		t.Fatalf("scadenza not in the future: %v", parsed)
	}
}

func TestAuthHandler_Register_FailureIsGeneric(t *testing.T) {
	// Duplicate email and storage breakage surface identically: a generic
	// 500 "registration failed", the endpoint's historical contract.
	for name, failure := range map[string]error{
		"duplicate email": domain.ErrEmailTaken,
		"storage error":   errors.New("connection reset"),
	} {
		e := newTestEcho()
		stub := &stubAuthService{
			registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
				return nil, failure
			},
		}
		handler := NewAuthHandler(stub, zerolog.Nop())

		body := strings.NewReader(`{"email":"b@x.com","password":"secret-password","name":"B"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Register(c)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", name, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: invalid json: %v", name, err)
		}
		if resp["error"] != "registration failed" {
			t.Fatalf("%s: unexpected error body: %+v", name, resp)
		}
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"email":"not-an-email","password":"short","name":""}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	expires := time.Now().Add(480 * time.Hour).UTC()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@x.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{
				User:      domain.User{ID: 7, Email: email, Name: "Alice", Role: domain.RoleAdmin},
				Token:     "token123",
				ExpiresAt: expires,
			}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@x.com","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@x.com" || user["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, ok := resp["scadenza"].(string); !ok {
		t.Fatalf("expected scadenza in response")
	}
}

func TestAuthHandler_Login_FailureIsOpaque(t *testing.T) {
	// Unknown email, wrong password and even storage breakage must produce
	// byte-identical response bodies.
	bodies := make(map[string]string)
	for name, failure := range map[string]error{
		"bad credentials": domain.ErrAuthenticationFailed,
		"storage error":   errors.New("connection reset"),
	} {
		e := newTestEcho()
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
				return nil, failure
			},
		}
		handler := NewAuthHandler(stub, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"x@x.com","password":"pw"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Login(c)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
		bodies[name] = rec.Body.String()
	}

	if bodies["bad credentials"] != bodies["storage error"] {
		t.Fatalf("login failure bodies differ: %q vs %q", bodies["bad credentials"], bodies["storage error"])
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id != 7 {
				t.Fatalf("unexpected id: %d", id)
			}
			return &domain.User{ID: 7, Email: "alice@x.com", Name: "Alice", Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("id", int64(7))
	c.Set("role", domain.RoleUser)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Fatalf("me response mentions a password field: %s", rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@x.com" || user["name"] != "Alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, id int64) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
