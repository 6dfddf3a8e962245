package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"contest_hub/internal/api/middleware"
	"contest_hub/internal/app/service"
	"contest_hub/internal/common"
	"contest_hub/internal/common/security"
	"contest_hub/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// roleRepoStub enforces email uniqueness like the real store.
type roleRepoStub struct {
	roles []model.Role
}

func (s *roleRepoStub) Create(ctx context.Context, role *model.Role) error {
	for _, r := range s.roles {
		if r.Email == role.Email {
			return fmt.Errorf("duplicate: %w", common.ErrConflict)
		}
	}
	s.roles = append(s.roles, *role)
	return nil
}

func (s *roleRepoStub) FindByEmail(ctx context.Context, email string) (*model.Role, error) {
	for _, r := range s.roles {
		if r.Email == email {
			return &r, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *roleRepoStub) FindByID(ctx context.Context, id string) (*model.Role, error) {
	for _, r := range s.roles {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *roleRepoStub) List(ctx context.Context, email string) ([]model.Role, error) {
	if email == "" {
		return s.roles, nil
	}
	matching := []model.Role{}
	for _, r := range s.roles {
		if r.Email == email {
			matching = append(matching, r)
		}
	}
	return matching, nil
}

func (s *roleRepoStub) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	for i, r := range s.roles {
		if r.ID == id {
			s.roles[i].Role = role
			return 1, nil
		}
	}
	return 0, nil
}

func newRoleRouter(repo *roleRepoStub) http.Handler {
	h := NewRoleHandler(service.NewRoleService(repo))
	guard := middleware.NewGuard(repo)

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Post("/roles", h.Register)
	r.Get("/roles", h.List)
	r.With(guard.RequireAuth, guard.RequireAdmin).Patch("/roles/{id}", h.UpdateRole)
	return r
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	_, tokenString, err := security.TokenAuth.Encode(map[string]interface{}{"email": email})
	if err != nil {
		t.Fatalf("failed to encode token: %v", err)
	}
	return tokenString
}

func TestRegisterEndpointIdempotent(t *testing.T) {
	repo := &roleRepoStub{}
	router := newRoleRouter(repo)

	payload := []byte(`{"email":"a@x.com","role":"admin"}`)

	req := httptest.NewRequest(http.MethodPost, "/roles", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	// Client-supplied role must be ignored.
	if repo.roles[0].Role != model.RoleUser {
		t.Errorf("expected forced role user, got %q", repo.roles[0].Role)
	}

	req = httptest.NewRequest(http.MethodPost, "/roles", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on duplicate, got %d", rec.Code)
	}
	if len(repo.roles) != 1 {
		t.Errorf("expected exactly 1 role record, got %d", len(repo.roles))
	}
}

func TestUpdateRoleEndpointForbiddenForNonAdmin(t *testing.T) {
	target := model.Role{ID: uuid.NewString(), Email: "victim@x.com", Role: model.RoleUser}
	caller := model.Role{ID: uuid.NewString(), Email: "user@x.com", Role: model.RoleUser}
	repo := &roleRepoStub{roles: []model.Role{target, caller}}
	router := newRoleRouter(repo)

	body := bytes.NewReader([]byte(`{"role":"admin"}`))
	req := httptest.NewRequest(http.MethodPatch, "/roles/"+target.ID, body)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user@x.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if repo.roles[0].Role != model.RoleUser {
		t.Errorf("role must not change, got %q", repo.roles[0].Role)
	}
}

func TestUpdateRoleEndpointAsAdmin(t *testing.T) {
	target := model.Role{ID: uuid.NewString(), Email: "promotee@x.com", Role: model.RoleUser}
	admin := model.Role{ID: uuid.NewString(), Email: "admin@x.com", Role: model.RoleAdmin}
	repo := &roleRepoStub{roles: []model.Role{target, admin}}
	router := newRoleRouter(repo)

	body := bytes.NewReader([]byte(`{"role":"admin"}`))
	req := httptest.NewRequest(http.MethodPatch, "/roles/"+target.ID, body)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin@x.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.roles[0].Role != model.RoleAdmin {
		t.Errorf("expected promoted role admin, got %q", repo.roles[0].Role)
	}
}

func TestListRolesEndpoint(t *testing.T) {
	repo := &roleRepoStub{roles: []model.Role{
		{ID: uuid.NewString(), Email: "a@x.com", Role: model.RoleUser},
		{ID: uuid.NewString(), Email: "b@x.com", Role: model.RoleAdmin},
	}}
	router := newRoleRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/roles?email=b@x.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var roles []model.Role
	if err := json.Unmarshal(rec.Body.Bytes(), &roles); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(roles) != 1 || roles[0].Email != "b@x.com" {
		t.Errorf("expected only b@x.com, got %+v", roles)
	}
}
