package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"profast/internal/model"
)

// ErrParcelNotFoundOrPaid is returned when the conditional status transition
// matches no parcel: either the id is unknown or the parcel is already Paid.
var ErrParcelNotFoundOrPaid = errors.New("parcel not found or already paid")

type PaymentService struct {
	db *sql.DB
}

func NewPaymentService(db *sql.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Record marks the parcel Paid and writes the payment record in a single
// transaction. The conditional update is the authorization gate: it matches
// only an Unpaid parcel, so exactly one of two concurrent payment attempts
// can succeed, and no record is ever written without the transition.
func (s *PaymentService) Record(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	if uuid.Validate(p.ParcelID) != nil {
		return nil, ErrParcelNotFoundOrPaid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE parcels SET payment_status = $1 WHERE id = $2 AND payment_status = $3`,
		model.PaymentStatusPaid, p.ParcelID, model.PaymentStatusUnpaid)
	if err != nil {
		return nil, fmt.Errorf("update parcel status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrParcelNotFoundOrPaid
	}

	p.PaidAt = time.Now().UTC()
	p.PaidAtString = p.PaidAt.Format(time.RFC1123)

	row := tx.QueryRowContext(ctx, `
		INSERT INTO payments (parcel_id, user_email, amount, payment_method, transaction_id, paid_at, paid_at_string)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.ParcelID, p.UserEmail, p.Amount, p.PaymentMethod, p.TransactionID, p.PaidAt, p.PaidAtString)

	if err := row.Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return p, nil
}

// ListByUser returns the payment history for one payer, newest paid first.
func (s *PaymentService) ListByUser(ctx context.Context, email string) ([]model.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parcel_id, user_email, amount, payment_method, transaction_id, paid_at, paid_at_string
		FROM payments
		WHERE user_email = $1
		ORDER BY paid_at DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		var method, paidAtString sql.NullString
		if err := rows.Scan(&p.ID, &p.ParcelID, &p.UserEmail, &p.Amount, &method, &p.TransactionID, &p.PaidAt, &paidAtString); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.PaymentMethod = method.String
		p.PaidAtString = paidAtString.String
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return payments, nil
}

// FindUnreconciled returns parcels marked Paid that have no payment record.
// Normal operation never produces these; they indicate out-of-band edits or
// rows written before the transactional path existed.
func (s *PaymentService) FindUnreconciled(ctx context.Context, limit int) ([]model.Parcel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.tracking_id, p.created_by, p.created_at
		FROM parcels p
		LEFT JOIN payments pay ON pay.parcel_id = p.id
		WHERE p.payment_status = $1 AND pay.id IS NULL
		ORDER BY p.created_at ASC
		LIMIT $2
	`, model.PaymentStatusPaid, limit)
	if err != nil {
		return nil, fmt.Errorf("query unreconciled: %w", err)
	}
	defer rows.Close()

	var parcels []model.Parcel
	for rows.Next() {
		var p model.Parcel
		if err := rows.Scan(&p.ID, &p.TrackingID, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unreconciled: %w", err)
		}
		p.PaymentStatus = model.PaymentStatusPaid
		parcels = append(parcels, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return parcels, nil
}
