package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contest_hub/internal/common"
	"contest_hub/internal/domain/model"
	"contest_hub/internal/domain/repository"

	"github.com/google/uuid"
)

type RoleService struct {
	roleRepo repository.RoleRepository
}

func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

type RegisterRequest struct {
	Email string `json:"email"`
	// Role is intentionally not accepted: everyone registers as a user and
	// only an admin-guarded operation can change that.
}

// Register creates the role record for a first-time login. An existing email
// is a successful no-op; the stored record (including an escalated role) is
// never touched.
func (s *RoleService) Register(ctx context.Context, req RegisterRequest) (*model.Role, bool, error) {
	if req.Email == "" {
		return nil, false, fmt.Errorf("email is required: %w", common.ErrBadRequest)
	}

	role := &model.Role{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to register user: %w", err)
	}
	return role, true, nil
}

func (s *RoleService) List(ctx context.Context, email string) ([]model.Role, error) {
	roles, err := s.roleRepo.List(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, id, role string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("malformed role id %q: %w", id, common.ErrNotFound)
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("unknown role %q: %w", role, common.ErrValidation)
	}
	updated, err := s.roleRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if updated == 0 {
		return common.ErrNotFound
	}
	return nil
}
