package service

import (
	"context"
	"time"

	"contest_hub/internal/common"
	"contest_hub/internal/domain/model"
	"contest_hub/internal/domain/repository"
)

// mockContestRepo implements repository.ContestRepository for testing.
type mockContestRepo struct {
	CreateFunc       func(ctx context.Context, contest *model.Contest) error
	FindByIDFunc     func(ctx context.Context, id string) (*model.Contest, error)
	ListFunc         func(ctx context.Context, filter repository.ContestFilter, limit, offset int) ([]model.Contest, int, error)
	ListAllFunc      func(ctx context.Context, filter repository.ContestFilter) ([]model.Contest, error)
	UpdateFieldsFunc func(ctx context.Context, id, creatorEmail string, patch repository.ContestPatch) (int64, error)
	UpdateStatusFunc func(ctx context.Context, id string, status model.ContestStatus) (int64, error)
	DeleteFunc       func(ctx context.Context, id string) (int64, error)
}

func (m *mockContestRepo) Create(ctx context.Context, contest *model.Contest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contest)
	}
	return nil
}

func (m *mockContestRepo) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, common.ErrNotFound
}

func (m *mockContestRepo) List(ctx context.Context, filter repository.ContestFilter, limit, offset int) ([]model.Contest, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockContestRepo) ListAll(ctx context.Context, filter repository.ContestFilter) ([]model.Contest, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockContestRepo) UpdateFields(ctx context.Context, id, creatorEmail string, patch repository.ContestPatch) (int64, error) {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, creatorEmail, patch)
	}
	return 0, nil
}

func (m *mockContestRepo) UpdateStatus(ctx context.Context, id string, status model.ContestStatus) (int64, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return 0, nil
}

func (m *mockContestRepo) Delete(ctx context.Context, id string) (int64, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return 0, nil
}

// mockRoleRepo implements repository.RoleRepository for testing.
type mockRoleRepo struct {
	CreateFunc      func(ctx context.Context, role *model.Role) error
	FindByEmailFunc func(ctx context.Context, email string) (*model.Role, error)
	FindByIDFunc    func(ctx context.Context, id string) (*model.Role, error)
	ListFunc        func(ctx context.Context, email string) ([]model.Role, error)
	UpdateRoleFunc  func(ctx context.Context, id, role string) (int64, error)
}

func (m *mockRoleRepo) Create(ctx context.Context, role *model.Role) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, role)
	}
	return nil
}

func (m *mockRoleRepo) FindByEmail(ctx context.Context, email string) (*model.Role, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, common.ErrNotFound
}

func (m *mockRoleRepo) FindByID(ctx context.Context, id string) (*model.Role, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, common.ErrNotFound
}

func (m *mockRoleRepo) List(ctx context.Context, email string) ([]model.Role, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockRoleRepo) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return 0, nil
}

// mockPaymentRepo implements repository.PaymentRepository for testing.
type mockPaymentRepo struct {
	RecordConfirmedFunc     func(ctx context.Context, payment *model.Payment) error
	FindByTransactionIDFunc func(ctx context.Context, transactionID string) (*model.Payment, error)
	ListByEmailFunc         func(ctx context.Context, email string) ([]model.Payment, error)
}

func (m *mockPaymentRepo) RecordConfirmed(ctx context.Context, payment *model.Payment) error {
	if m.RecordConfirmedFunc != nil {
		return m.RecordConfirmedFunc(ctx, payment)
	}
	return nil
}

func (m *mockPaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	if m.FindByTransactionIDFunc != nil {
		return m.FindByTransactionIDFunc(ctx, transactionID)
	}
	return nil, common.ErrNotFound
}

func (m *mockPaymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	if m.ListByEmailFunc != nil {
		return m.ListByEmailFunc(ctx, email)
	}
	return nil, nil
}

// mockSessionRecorder implements SessionRecorder for testing.
type mockSessionRecorder struct {
	SaveFunc  func(ctx context.Context, sessionID string, session interface{}, ttl time.Duration) error
	SaveCalls int
	LastID    string
	LastTTL   time.Duration
}

func (m *mockSessionRecorder) Save(ctx context.Context, sessionID string, session interface{}, ttl time.Duration) error {
	m.SaveCalls++
	m.LastID = sessionID
	m.LastTTL = ttl
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, sessionID, session, ttl)
	}
	return nil
}
