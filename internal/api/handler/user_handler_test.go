package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

type recordingUserService struct {
	ports.UserService
	profileIn *ports.ProfileInput
	createIn  *ports.UserInput
	createErr error
	deleted   string
}

func (s *recordingUserService) UpdateProfile(_ context.Context, in ports.ProfileInput) (*domain.User, error) {
	s.profileIn = &in
	return &domain.User{ID: "u1", Email: "alice@example.com", Name: in.Name, Role: domain.RoleUser}, nil
}

func (s *recordingUserService) Create(_ context.Context, in ports.UserInput) (*domain.User, error) {
	s.createIn = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.User{ID: "u2", Email: in.Email, Role: domain.Role(in.Role)}, nil
}

func (s *recordingUserService) Delete(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

func TestUserHandler_UpdateProfile_PassesNoRole(t *testing.T) {
	svc := &recordingUserService{}
	h := NewUserHandler(svc)

	c, rec := newContext(http.MethodPut, "/api/users/profile", `{"name":"Alice B","role":"ADMIN","preferences":{"language":"es"}}`)
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.profileIn.Password != "" {
		t.Fatalf("expected empty password, got %q", svc.profileIn.Password)
	}
	prefs := svc.profileIn.Preferences
	if prefs == nil || prefs.Language != "es" || prefs.Currency != "" || prefs.Notifications != nil {
		t.Fatalf("expected only language in the patch, got %+v", prefs)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["role"] != "USER" {
		t.Fatalf("role must be unchanged, got %v", resp["role"])
	}
}

func TestUserHandler_UpdateProfile_Validation(t *testing.T) {
	h := NewUserHandler(&recordingUserService{})

	c, _ := newContext(http.MethodPut, "/api/users/profile", `{"password":"x"}`)
	var he *echo.HTTPError
	if err := h.UpdateProfile(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Create(t *testing.T) {
	svc := &recordingUserService{}
	h := NewUserHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/admin/users", `{"email":"bob@example.com","password":"pw123","role":"ADMIN"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || svc.createIn.Role != "ADMIN" {
		t.Fatalf("unexpected result %d %+v", rec.Code, svc.createIn)
	}
}

func TestUserHandler_Create_InvalidRoleIsReturned(t *testing.T) {
	h := NewUserHandler(&recordingUserService{createErr: domain.ErrInvalidRole})

	c, _ := newContext(http.MethodPost, "/api/admin/users", `{"email":"bob@example.com","password":"pw123","role":"ROOT"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &recordingUserService{}
	h := NewUserHandler(svc)

	c, rec := newContext(http.MethodDelete, "/api/admin/users/u7", "")
	c.SetParamNames("id")
	c.SetParamValues("u7")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || svc.deleted != "u7" {
		t.Fatalf("unexpected result %d %q", rec.Code, svc.deleted)
	}
}
