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
	"github.com/gosimple/slug"
)

const (
	DefaultPage = 1
	DefaultSize = 10
)

type ContestService struct {
	contestRepo repository.ContestRepository
}

func NewContestService(contestRepo repository.ContestRepository) *ContestService {
	return &ContestService{contestRepo: contestRepo}
}

type CreateContestRequest struct {
	Name            string  `json:"name"`
	CreatorEmail    string  `json:"creator_email"`
	Image           string  `json:"image"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Prize           string  `json:"prize"`
	TaskInstruction string  `json:"task_instruction"`
	Type            string  `json:"type"`
	Deadline        string  `json:"deadline"`
	// Status is intentionally not accepted: submissions always start pending.
}

type ListContestsQuery struct {
	Status string
	Email  string
	Page   int
	Size   int
}

type ContestPage struct {
	Contests []model.Contest `json:"contests"`
	Count    int             `json:"count"`
	Page     int             `json:"page"`
	Size     int             `json:"size"`
}

// Create inserts a new contest with a server-stamped creation time and a
// forced pending status. The (creator_email, name) unique index is the
// duplicate signal: a conflict means the contest already exists, which is a
// successful no-op, not an error.
func (s *ContestService) Create(ctx context.Context, req CreateContestRequest) (*model.Contest, bool, error) {
	if req.Name == "" || req.CreatorEmail == "" {
		return nil, false, fmt.Errorf("name and creator_email are required: %w", common.ErrBadRequest)
	}

	contest := &model.Contest{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Slug:              slug.Make(req.Name),
		CreatorEmail:      req.CreatorEmail,
		Image:             req.Image,
		Description:       req.Description,
		Price:             req.Price,
		Prize:             req.Prize,
		TaskInstruction:   req.TaskInstruction,
		Type:              req.Type,
		Deadline:          req.Deadline,
		Status:            model.StatusPending,
		ParticipantsCount: 0,
		CreatedAt:         time.Now(),
	}

	if err := s.contestRepo.Create(ctx, contest); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to create contest: %w", err)
	}
	return contest, true, nil
}

// List returns one page of contests plus the total matching count. Page and
// size fall back to defaults rather than failing, so malformed query values
// never produce an error.
func (s *ContestService) List(ctx context.Context, query ListContestsQuery) (*ContestPage, error) {
	page := query.Page
	if page <= 0 {
		page = DefaultPage
	}
	size := query.Size
	if size <= 0 {
		size = DefaultSize
	}

	filter := repository.ContestFilter{
		Status:       model.ContestStatus(query.Status),
		CreatorEmail: query.Email,
	}
	contests, total, err := s.contestRepo.List(ctx, filter, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}

	return &ContestPage{
		Contests: contests,
		Count:    total,
		Page:     page,
		Size:     size,
	}, nil
}

// ListAll is the unpaginated variant with the same filter semantics.
func (s *ContestService) ListAll(ctx context.Context, status, email string) ([]model.Contest, error) {
	filter := repository.ContestFilter{
		Status:       model.ContestStatus(status),
		CreatorEmail: email,
	}
	contests, err := s.contestRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	return contests, nil
}

func (s *ContestService) Get(ctx context.Context, id string) (*model.Contest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("malformed contest id %q: %w", id, common.ErrNotFound)
	}
	contest, err := s.contestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch contest: %w", err)
	}
	return contest, nil
}

// Edit applies the field whitelist for the contest's creator. The ownership
// filter lives in the data layer: the update matches on both id and the
// verified principal's email, so a non-owner edit affects zero rows and
// surfaces as not found.
func (s *ContestService) Edit(ctx context.Context, id, principalEmail string, patch repository.ContestPatch) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("malformed contest id %q: %w", id, common.ErrNotFound)
	}
	updated, err := s.contestRepo.UpdateFields(ctx, id, principalEmail, patch)
	if err != nil {
		return fmt.Errorf("failed to edit contest: %w", err)
	}
	if updated == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *ContestService) UpdateStatus(ctx context.Context, id string, status model.ContestStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("malformed contest id %q: %w", id, common.ErrNotFound)
	}
	if !status.Valid() {
		return fmt.Errorf("unknown contest status %q: %w", status, common.ErrValidation)
	}
	updated, err := s.contestRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update contest status: %w", err)
	}
	if updated == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *ContestService) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, fmt.Errorf("malformed contest id %q: %w", id, common.ErrNotFound)
	}
	deleted, err := s.contestRepo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete contest: %w", err)
	}
	if deleted == 0 {
		return 0, common.ErrNotFound
	}
	return deleted, nil
}
