package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"profast/internal/model"
)

var ErrParcelNotFound = errors.New("parcel not found")

type ParcelService struct {
	db *sql.DB
}

func NewParcelService(db *sql.DB) *ParcelService {
	return &ParcelService{db: db}
}

const parcelColumns = `id, tracking_id, title, type, weight, cost,
	sender_name, sender_contact, sender_address,
	receiver_name, receiver_contact, receiver_address,
	created_by, payment_status, created_at`

// List returns all parcels, newest first, optionally filtered by owner.
func (s *ParcelService) List(ctx context.Context, createdBy string) ([]model.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels`
	args := []any{}
	if createdBy != "" {
		query += ` WHERE created_by = $1`
		args = append(args, createdBy)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parcels: %w", err)
	}
	defer rows.Close()

	var parcels []model.Parcel
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parcel: %w", err)
		}
		parcels = append(parcels, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return parcels, nil
}

func (s *ParcelService) GetByID(ctx context.Context, id string) (*model.Parcel, error) {
	// The id column is uuid-typed; reject malformed ids before they reach
	// the database as a syntax error.
	if uuid.Validate(id) != nil {
		return nil, ErrParcelNotFound
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+parcelColumns+` FROM parcels WHERE id = $1`, id)

	p, err := scanParcel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParcelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get parcel: %w", err)
	}
	return p, nil
}

func (s *ParcelService) Create(ctx context.Context, p *model.Parcel) (*model.Parcel, error) {
	if p.PaymentStatus == "" {
		p.PaymentStatus = model.PaymentStatusUnpaid
	}
	p.TrackingID = newTrackingID()

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO parcels (tracking_id, title, type, weight, cost,
			sender_name, sender_contact, sender_address,
			receiver_name, receiver_contact, receiver_address,
			created_by, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`, p.TrackingID, p.Title, p.Type, p.Weight, p.Cost,
		p.SenderName, p.SenderContact, p.SenderAddress,
		p.ReceiverName, p.ReceiverContact, p.ReceiverAddress,
		p.CreatedBy, p.PaymentStatus)

	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert parcel: %w", err)
	}

	return p, nil
}

// Delete removes the parcel only if it belongs to owner. Returns the number
// of rows removed (0 or 1).
func (s *ParcelService) Delete(ctx context.Context, id, owner string) (int64, error) {
	if uuid.Validate(id) != nil {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM parcels WHERE id = $1 AND created_by = $2`, id, owner)
	if err != nil {
		return 0, fmt.Errorf("delete parcel: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func newTrackingID() string {
	id := uuid.New().String()
	return "PF-" + strings.ToUpper(id[:8])
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParcel(row rowScanner) (*model.Parcel, error) {
	var p model.Parcel
	var title, ptype, senderName, senderContact, senderAddress sql.NullString
	var receiverName, receiverContact, receiverAddress sql.NullString
	var weight sql.NullFloat64
	var cost sql.NullInt64

	err := row.Scan(&p.ID, &p.TrackingID, &title, &ptype, &weight, &cost,
		&senderName, &senderContact, &senderAddress,
		&receiverName, &receiverContact, &receiverAddress,
		&p.CreatedBy, &p.PaymentStatus, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	p.Title = title.String
	p.Type = ptype.String
	p.Weight = weight.Float64
	p.Cost = cost.Int64
	p.SenderName = senderName.String
	p.SenderContact = senderContact.String
	p.SenderAddress = senderAddress.String
	p.ReceiverName = receiverName.String
	p.ReceiverContact = receiverContact.String
	p.ReceiverAddress = receiverAddress.String

	return &p, nil
}
