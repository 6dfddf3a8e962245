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

type PaymentRepository interface {
	RecordConfirmed(ctx context.Context, payment *model.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
}

type pgPaymentRepository struct {
	db *sql.DB
}

func NewPgPaymentRepository(db *sql.DB) PaymentRepository {
	return &pgPaymentRepository{db: db}
}

// RecordConfirmed inserts the payment and increments the contest's
// participant counter in one transaction, so a crash between the two writes
// cannot leave the counter understated. A duplicate transaction id aborts
// with ErrConflict before any increment happens.
func (r *pgPaymentRepository) RecordConfirmed(ctx context.Context, p *model.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgPaymentRepository.RecordConfirmed begin: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `INSERT INTO payments (id, contest_id, contest_name, amount, email, transaction_id, payment_status, paid_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.ExecContext(ctx, insertQuery,
		p.ID, p.ContestID, p.ContestName, p.Amount, p.Email, p.TransactionID, p.PaymentStatus, p.PaidAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // UNIQUE (transaction_id)
			return fmt.Errorf("payment with this transaction id already stored: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgPaymentRepository.RecordConfirmed insert: %w", err)
	}

	incrementQuery := `UPDATE contests SET participants_count = participants_count + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, incrementQuery, p.ContestID); err != nil {
		return fmt.Errorf("pgPaymentRepository.RecordConfirmed increment: %w", err)
	}

	return tx.Commit()
}

func (r *pgPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	query := `SELECT id, contest_id, contest_name, amount, email, transaction_id, payment_status, paid_at
	          FROM payments WHERE transaction_id = $1`
	payment := &model.Payment{}
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&payment.ID, &payment.ContestID, &payment.ContestName, &payment.Amount,
		&payment.Email, &payment.TransactionID, &payment.PaymentStatus, &payment.PaidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPaymentRepository.FindByTransactionID: %w", err)
	}
	return payment, nil
}

func (r *pgPaymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	query := `SELECT id, contest_id, contest_name, amount, email, transaction_id, payment_status, paid_at
	          FROM payments WHERE email = $1 ORDER BY paid_at, id`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("pgPaymentRepository.ListByEmail: %w", err)
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(
			&p.ID, &p.ContestID, &p.ContestName, &p.Amount, &p.Email,
			&p.TransactionID, &p.PaymentStatus, &p.PaidAt,
		); err != nil {
			return nil, fmt.Errorf("pgPaymentRepository.ListByEmail scan: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPaymentRepository.ListByEmail: %w", err)
	}
	return payments, nil
}
