package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"profast/internal/mw"
)

const testParcelID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func newMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, db
}

// asCaller attaches a verified identity the way AuthMiddleware would.
func asCaller(r *http.Request, email string) *http.Request {
	ctx := context.WithValue(r.Context(), mw.EmailCtxKey, email)
	return r.WithContext(ctx)
}
