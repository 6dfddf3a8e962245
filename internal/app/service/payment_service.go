package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"contest_hub/internal/common"
	"contest_hub/internal/domain/model"
	"contest_hub/internal/domain/repository"

	"github.com/google/uuid"
)

type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

type RecordPaymentRequest struct {
	ContestID     string  `json:"contest_id"`
	ContestName   string  `json:"contest_name"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
}

// Record stores a confirmed payment and bumps the contest's participant
// counter. The provider's transaction id is the idempotency key, so a retried
// confirmation (e.g. a redelivered callback) is a successful no-op and the
// counter is incremented exactly once.
func (s *PaymentService) Record(ctx context.Context, principalEmail string, req RecordPaymentRequest) (*model.Payment, bool, error) {
	if req.TransactionID == "" || req.ContestID == "" {
		return nil, false, fmt.Errorf("contest_id and transaction_id are required: %w", common.ErrBadRequest)
	}
	if _, err := uuid.Parse(req.ContestID); err != nil {
		return nil, false, fmt.Errorf("malformed contest id %q: %w", req.ContestID, common.ErrBadRequest)
	}

	payment := &model.Payment{
		ID:            uuid.NewString(),
		ContestID:     req.ContestID,
		ContestName:   req.ContestName,
		Amount:        req.Amount,
		Email:         principalEmail,
		TransactionID: req.TransactionID,
		PaymentStatus: model.PaymentStatusPaid,
		PaidAt:        time.Now(),
	}

	if err := s.paymentRepo.RecordConfirmed(ctx, payment); err != nil {
		if errors.Is(err, common.ErrConflict) {
			log.Printf("WARN: duplicate confirmation for transaction %s, ignoring", req.TransactionID)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to record payment: %w", err)
	}
	return payment, true, nil
}

// ListForPrincipal returns the caller's own payment history.
func (s *PaymentService) ListForPrincipal(ctx context.Context, principalEmail string) ([]model.Payment, error) {
	payments, err := s.paymentRepo.ListByEmail(ctx, principalEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
