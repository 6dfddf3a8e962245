package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contest_hub/internal/common"
	"contest_hub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByEmail(ctx context.Context, email string) (*model.Role, error)
	FindByID(ctx context.Context, id string) (*model.Role, error)
	List(ctx context.Context, email string) ([]model.Role, error)
	UpdateRole(ctx context.Context, id, role string) (int64, error)
}

type pgRoleRepository struct {
	db *sql.DB
}

func NewPgRoleRepository(db *sql.DB) RoleRepository {
	return &pgRoleRepository{db: db}
}

func (r *pgRoleRepository) Create(ctx context.Context, role *model.Role) error {
	query := `INSERT INTO roles (id, email, role, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, role.ID, role.Email, role.Role, role.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // UNIQUE (email)
			return fmt.Errorf("role record for this email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgRoleRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRoleRepository) FindByEmail(ctx context.Context, email string) (*model.Role, error) {
	query := `SELECT id, email, role, created_at FROM roles WHERE email = $1`
	role := &model.Role{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&role.ID, &role.Email, &role.Role, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoleRepository.FindByEmail: %w", err)
	}
	return role, nil
}

func (r *pgRoleRepository) FindByID(ctx context.Context, id string) (*model.Role, error) {
	query := `SELECT id, email, role, created_at FROM roles WHERE id = $1`
	role := &model.Role{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&role.ID, &role.Email, &role.Role, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoleRepository.FindByID: %w", err)
	}
	return role, nil
}

func (r *pgRoleRepository) List(ctx context.Context, email string) ([]model.Role, error) {
	query := `SELECT id, email, role, created_at FROM roles`
	var args []interface{}
	if email != "" {
		query += ` WHERE email = $1`
		args = append(args, email)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgRoleRepository.List: %w", err)
	}
	defer rows.Close()

	roles := []model.Role{}
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Email, &role.Role, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgRoleRepository.List scan: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRoleRepository.List: %w", err)
	}
	return roles, nil
}

func (r *pgRoleRepository) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	query := `UPDATE roles SET role = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return 0, fmt.Errorf("pgRoleRepository.UpdateRole: %w", err)
	}
	return result.RowsAffected()
}
