package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/ports"
)

type stubUserService struct {
	createFn        func(ctx context.Context, actor string, input ports.NewUserInput) (string, error)
	setRolesFn      func(ctx context.Context, actor, username string, roles []string) (int64, error)
	updateProfileFn func(ctx context.Context, actor, targetID string, update ports.ProfileUpdate) (int64, error)
}

func (s *stubUserService) CreateUser(ctx context.Context, actor string, input ports.NewUserInput) (string, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubUserService) DeleteUser(context.Context, string, string) (int64, error) {
	return 0, domain.ErrUserNotFound
}

func (s *stubUserService) ListUsers(context.Context) ([]domain.UserSummary, error) {
	return []domain.UserSummary{}, nil
}

func (s *stubUserService) ListUserDetails(context.Context) ([]domain.Identity, error) {
	return []domain.Identity{}, nil
}

func (s *stubUserService) GetUser(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) GetUserByUsername(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) SetRoles(ctx context.Context, actor, username string, roles []string) (int64, error) {
	return s.setRolesFn(ctx, actor, username, roles)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, actor, targetID string, update ports.ProfileUpdate) (int64, error) {
	return s.updateProfileFn(ctx, actor, targetID, update)
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, actor string, input ports.NewUserInput) (string, error) {
			if actor != "root" {
				t.Fatalf("expected actor root, got %q", actor)
			}
			if input.Username != "alice" || input.FullName != "Alice Doe" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "42", nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"longenough","full_name":"Alice Doe","roles":["viewer"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/create", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "root")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "42" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Create_ShortPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, actor string, input ports.NewUserInput) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"short","full_name":"Alice Doe"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/create", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "root")

	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Create_NoActorClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, actor string, input ports.NewUserInput) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"longenough","full_name":"Alice Doe"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/create", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_EditProfile_ForwardsPathID(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, actor, targetID string, update ports.ProfileUpdate) (int64, error) {
			if targetID != "7" {
				t.Fatalf("expected path id 7, got %q", targetID)
			}
			if update.ID != "7" {
				t.Fatalf("expected payload id 7, got %q", update.ID)
			}
			return 1, nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"id":"7","full_name":"New Name"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/user/edituserprofile/7", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set("username", "root")

	if err := handler.EditProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["affected"] != float64(1) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_AssignRoles_EmptySet(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		setRolesFn: func(ctx context.Context, actor, username string, roles []string) (int64, error) {
			if username != "user" {
				t.Fatalf("expected username user, got %q", username)
			}
			if len(roles) != 0 {
				t.Fatalf("expected empty role set, got %v", roles)
			}
			return 1, nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"user","roles":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/assignroles", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "root")

	if err := handler.AssignRoles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
