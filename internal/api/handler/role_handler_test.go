package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fotostream/identity-api/internal/core/domain"
)

func TestRoleHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		listRolesFn: func(ctx context.Context) ([]domain.Role, error) {
			return []domain.Role{
				{ID: 1, Name: domain.RoleUser},
				{ID: 2, Name: domain.RoleAdmin},
			}, nil
		},
	}
	handler := NewRoleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(2) {
		t.Fatalf("expected total 2, got %v", resp["total"])
	}
	roles, ok := resp["totalRoles"].([]any)
	if !ok || len(roles) != 2 {
		t.Fatalf("expected 2 roles in totalRoles, got %v", resp["totalRoles"])
	}
}

func TestRoleHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		createRoleFn: func(ctx context.Context, name string) (*domain.Role, error) {
			if name != "editor" {
				t.Fatalf("unexpected name: %q", name)
			}
			return &domain.Role{ID: 3, Name: "editor"}, nil
		},
	}
	handler := NewRoleHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/roles", strings.NewReader(`{"name":"editor"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	role, ok := resp["createdRole"].(map[string]any)
	if !ok || role["name"] != "editor" {
		t.Fatalf("unexpected createdRole payload: %+v", resp)
	}
	if resp["message"] != "role editor created" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestRoleHandler_Create_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		createRoleFn: func(ctx context.Context, name string) (*domain.Role, error) {
			return nil, domain.ErrRoleExists
		},
	}
	handler := NewRoleHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/roles", strings.NewReader(`{"name":"editor"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); !errors.Is(err, domain.ErrRoleExists) {
		t.Fatalf("expected ErrRoleExists to propagate, got %v", err)
	}
}

func TestRoleHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		createRoleFn: func(ctx context.Context, name string) (*domain.Role, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewRoleHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/roles", strings.NewReader(`{"name":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}
