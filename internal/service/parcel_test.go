package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"profast/internal/model"
)

const (
	parcelID      = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	otherParcelID = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"
)

var parcelTestColumns = []string{
	"id", "tracking_id", "title", "type", "weight", "cost",
	"sender_name", "sender_contact", "sender_address",
	"receiver_name", "receiver_contact", "receiver_address",
	"created_by", "payment_status", "created_at",
}

func newParcelServiceWithMock(t *testing.T) (*ParcelService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewParcelService(db), mock, db
}

func addParcelRow(rows *sqlmock.Rows, id, owner, status string, createdAt time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "PF-ABCD1234", "Books", "document", 1.5, int64(500),
		"Sender", "0170000000", "Dhaka",
		"Receiver", "0180000000", "Sylhet",
		owner, status, createdAt)
}

func TestParcelList_All(t *testing.T) {
	svc, mock, db := newParcelServiceWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(parcelTestColumns)
	addParcelRow(rows, parcelID, "a@b.com", model.PaymentStatusUnpaid, now)
	addParcelRow(rows, otherParcelID, "c@d.com", model.PaymentStatusPaid, now.Add(-time.Hour))

	mock.ExpectQuery(`(?s)SELECT .+ FROM parcels ORDER BY created_at DESC`).
		WillReturnRows(rows)

	parcels, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, parcels, 2)
	require.Equal(t, parcelID, parcels[0].ID)
	require.Equal(t, "c@d.com", parcels[1].CreatedBy)
}

func TestParcelList_FilteredByOwner(t *testing.T) {
	svc, mock, db := newParcelServiceWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(parcelTestColumns)
	addParcelRow(rows, parcelID, "a@b.com", model.PaymentStatusUnpaid, time.Now().UTC())

	mock.ExpectQuery(`(?s)SELECT .+ FROM parcels WHERE created_by = \$1 ORDER BY created_at DESC`).
		WithArgs("a@b.com").
		WillReturnRows(rows)

	parcels, err := svc.List(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	require.Equal(t, "a@b.com", parcels[0].CreatedBy)
}

func TestParcelGetByID_Found(t *testing.T) {
	svc, mock, db := newParcelServiceWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(parcelTestColumns)
	addParcelRow(rows, parcelID, "a@b.com", model.PaymentStatusUnpaid, time.Now().UTC())

	mock.ExpectQuery(`(?s)SELECT .+ FROM parcels WHERE id = \$1`).
		WithArgs(parcelID).
		WillReturnRows(rows)

	p, err := svc.GetByID(context.Background(), parcelID)
	require.NoError(t, err)
	require.Equal(t, parcelID, p.ID)
	require.Equal(t, "PF-ABCD1234", p.TrackingID)
	require.Equal(t, model.PaymentStatusUnpaid, p.PaymentStatus)
}

func TestParcelGetByID_NotFound(t *testing.T) {
	svc, mock, db := newParcelServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM parcels WHERE id = \$1`).
		WithArgs(parcelID).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetByID(context.Background(), parcelID)
	require.ErrorIs(t, err, ErrParcelNotFound)
}

func TestParcelGetByID_MalformedID(t *testing.T) {
	svc, _, db := newParcelServiceWithMock(t)
	defer db.Close()

	// No query expectation: a malformed id must never reach the database.
	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrParcelNotFound)
}

func TestParcelCreate(t *testing.T) {
	svc, mock, db := newParcelServiceWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO parcels`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(parcelID, now))

	p, err := svc.Create(context.Background(), &model.Parcel{
		Title:     "Books",
		CreatedBy: "a@b.com",
	})
	require.NoError(t, err)
	require.Equal(t, parcelID, p.ID)
	require.Equal(t, model.PaymentStatusUnpaid, p.PaymentStatus)
	require.NotEmpty(t, p.TrackingID)
	require.Regexp(t, `^PF-[0-9A-F]{8}$`, p.TrackingID)
}

func TestParcelDelete(t *testing.T) {
	svc, mock, db := newParcelServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM parcels WHERE id = \$1 AND created_by = \$2`).
		WithArgs(parcelID, "a@b.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := svc.Delete(context.Background(), parcelID, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestParcelDelete_NotOwnedOrAbsent(t *testing.T) {
	svc, mock, db := newParcelServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM parcels WHERE id = \$1 AND created_by = \$2`).
		WithArgs(parcelID, "c@d.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := svc.Delete(context.Background(), parcelID, "c@d.com")
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestParcelDelete_MalformedID(t *testing.T) {
	svc, _, db := newParcelServiceWithMock(t)
	defer db.Close()

	count, err := svc.Delete(context.Background(), "nope", "a@b.com")
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
