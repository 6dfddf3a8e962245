package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"contest_hub/internal/common"
	"contest_hub/internal/domain/model"
)

func TestRegisterForcesUserRole(t *testing.T) {
	var stored *model.Role
	repo := &mockRoleRepo{
		CreateFunc: func(ctx context.Context, role *model.Role) error {
			stored = role
			return nil
		},
	}
	svc := NewRoleService(repo)

	role, created, err := svc.Register(context.Background(), RegisterRequest{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !created {
		t.Fatal("expected role record to be created")
	}
	if role.Role != model.RoleUser {
		t.Errorf("expected role %q, got %q", model.RoleUser, role.Role)
	}
	if stored.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %q", stored.Email)
	}
	if stored.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}
}

func TestRegisterDuplicateIsNoOp(t *testing.T) {
	repo := &mockRoleRepo{
		CreateFunc: func(ctx context.Context, role *model.Role) error {
			return fmt.Errorf("duplicate: %w", common.ErrConflict)
		},
	}
	svc := NewRoleService(repo)

	role, created, err := svc.Register(context.Background(), RegisterRequest{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("duplicate register must not error, got %v", err)
	}
	if created || role != nil {
		t.Error("duplicate register must not create or return a record")
	}
}

func TestRegisterRequiresEmail(t *testing.T) {
	svc := NewRoleService(&mockRoleRepo{})

	_, _, err := svc.Register(context.Background(), RegisterRequest{})
	if !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestUpdateRoleRejectsUnknownValue(t *testing.T) {
	repo := &mockRoleRepo{
		UpdateRoleFunc: func(ctx context.Context, id, role string) (int64, error) {
			t.Fatal("repository must not be reached with an invalid role")
			return 0, nil
		},
	}
	svc := NewRoleService(repo)

	err := svc.UpdateRole(context.Background(), "0b826d39-8df9-4d2a-90f4-2a0bbbc7a755", "superuser")
	if !errors.Is(err, common.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateRoleUnknownID(t *testing.T) {
	repo := &mockRoleRepo{
		UpdateRoleFunc: func(ctx context.Context, id, role string) (int64, error) {
			return 0, nil
		},
	}
	svc := NewRoleService(repo)

	err := svc.UpdateRole(context.Background(), "0b826d39-8df9-4d2a-90f4-2a0bbbc7a755", model.RoleAdmin)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListRolesPassesEmailFilter(t *testing.T) {
	repo := &mockRoleRepo{
		ListFunc: func(ctx context.Context, email string) ([]model.Role, error) {
			if email != "a@x.com" {
				t.Errorf("expected email filter a@x.com, got %q", email)
			}
			return []model.Role{{Email: "a@x.com", Role: model.RoleUser}}, nil
		},
	}
	svc := NewRoleService(repo)

	roles, err := svc.List(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(roles) != 1 {
		t.Errorf("expected 1 role, got %d", len(roles))
	}
}
