package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"contest_hub/internal/common"
	"contest_hub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ContestFilter narrows list queries. Zero values mean "no constraint".
type ContestFilter struct {
	Status       model.ContestStatus
	CreatorEmail string
}

// ContestPatch carries the editable fields. Status and the creator are
// deliberately absent: status has its own path and ownership never changes.
type ContestPatch struct {
	Name            string   `json:"name"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price"`
	Prize           string   `json:"prize"`
	TaskInstruction string   `json:"task_instruction"`
	Type            string   `json:"type"`
	Deadline        string   `json:"deadline"`
}

type ContestRepository interface {
	Create(ctx context.Context, contest *model.Contest) error
	FindByID(ctx context.Context, id string) (*model.Contest, error)
	List(ctx context.Context, filter ContestFilter, limit, offset int) ([]model.Contest, int, error)
	ListAll(ctx context.Context, filter ContestFilter) ([]model.Contest, error)
	UpdateFields(ctx context.Context, id, creatorEmail string, patch ContestPatch) (int64, error)
	UpdateStatus(ctx context.Context, id string, status model.ContestStatus) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

const contestColumns = `id, name, slug, creator_email, image, description, price, prize,
	       task_instruction, type, deadline, status, participants_count, created_at`

func (r *pgContestRepository) Create(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO contests (id, name, slug, creator_email, image, description, price, prize, task_instruction, type, deadline, status, participants_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Slug, c.CreatorEmail, c.Image, c.Description, c.Price, c.Prize,
		c.TaskInstruction, c.Type, c.Deadline, c.Status, c.ParticipantsCount, c.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // UNIQUE (creator_email, name)
			return fmt.Errorf("contest with this creator and name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgContestRepository) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests WHERE id = $1`
	contest := &model.Contest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&contest.ID, &contest.Name, &contest.Slug, &contest.CreatorEmail, &contest.Image,
		&contest.Description, &contest.Price, &contest.Prize, &contest.TaskInstruction,
		&contest.Type, &contest.Deadline, &contest.Status, &contest.ParticipantsCount,
		&contest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindByID: %w", err)
	}
	return contest, nil
}

func buildContestFilter(filter ContestFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Status != "" {
		conditions = append(conditions, "status = $"+strconv.Itoa(argID))
		args = append(args, filter.Status)
		argID++
	}
	if filter.CreatorEmail != "" {
		conditions = append(conditions, "creator_email = $"+strconv.Itoa(argID))
		args = append(args, filter.CreatorEmail)
		argID++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns a page of contests plus the total matching count. Ordering is
// by creation time so pages are stable under insertion-heavy load.
func (r *pgContestRepository) List(ctx context.Context, filter ContestFilter, limit, offset int) ([]model.Contest, int, error) {
	where, args := buildContestFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM contests` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.List count: %w", err)
	}

	query := `SELECT ` + contestColumns + ` FROM contests` + where +
		` ORDER BY created_at, id LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.List: %w", err)
	}
	defer rows.Close()

	contests, err := scanContests(rows)
	if err != nil {
		return nil, 0, err
	}
	return contests, total, nil
}

func (r *pgContestRepository) ListAll(ctx context.Context, filter ContestFilter) ([]model.Contest, error) {
	where, args := buildContestFilter(filter)
	query := `SELECT ` + contestColumns + ` FROM contests` + where + ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListAll: %w", err)
	}
	defer rows.Close()

	return scanContests(rows)
}

func scanContests(rows *sql.Rows) ([]model.Contest, error) {
	contests := []model.Contest{}
	for rows.Next() {
		var c model.Contest
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.CreatorEmail, &c.Image, &c.Description, &c.Price,
			&c.Prize, &c.TaskInstruction, &c.Type, &c.Deadline, &c.Status,
			&c.ParticipantsCount, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanContests: %w", err)
		}
		contests = append(contests, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanContests: %w", err)
	}
	return contests, nil
}

// UpdateFields applies the editable-field patch. The filter requires both the
// id and the creator's email to match, so a non-owner request affects zero
// rows.
func (r *pgContestRepository) UpdateFields(ctx context.Context, id, creatorEmail string, patch ContestPatch) (int64, error) {
	var sets []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = $"+strconv.Itoa(argID))
		args = append(args, value)
		argID++
	}

	if patch.Name != "" {
		set("name", patch.Name)
	}
	if patch.Image != "" {
		set("image", patch.Image)
	}
	if patch.Description != "" {
		set("description", patch.Description)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Prize != "" {
		set("prize", patch.Prize)
	}
	if patch.TaskInstruction != "" {
		set("task_instruction", patch.TaskInstruction)
	}
	if patch.Type != "" {
		set("type", patch.Type)
	}
	if patch.Deadline != "" {
		set("deadline", patch.Deadline)
	}

	if len(sets) == 0 {
		return 0, fmt.Errorf("no editable fields in patch: %w", common.ErrBadRequest)
	}

	query := `UPDATE contests SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(argID) + ` AND creator_email = $` + strconv.Itoa(argID+1)
	args = append(args, id, creatorEmail)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.UpdateFields: %w", err)
	}
	return result.RowsAffected()
}

func (r *pgContestRepository) UpdateStatus(ctx context.Context, id string, status model.ContestStatus) (int64, error) {
	query := `UPDATE contests SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.UpdateStatus: %w", err)
	}
	return result.RowsAffected()
}

func (r *pgContestRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM contests WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.Delete: %w", err)
	}
	return result.RowsAffected()
}
