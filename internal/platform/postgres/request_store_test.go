package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/store"
)

var requestColumnNames = []string{"user_id", "ad_id", "status", "created_at"}

func testRequest(t *testing.T) *domain.AdRequest {
	t.Helper()
	return &domain.AdRequest{
		UserID:    uuid.New(),
		AdID:      uuid.New(),
		Status:    domain.RequestStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRequestStoreCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresRequestStore(db, nil)
	req := testRequest(t)

	mock.ExpectExec("INSERT INTO requests").
		WithArgs(req.UserID, req.AdID, req.Status, req.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestStoreCreate_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresRequestStore(db, nil)
	req := testRequest(t)

	mock.ExpectExec("INSERT INTO requests").
		WillReturnError(&pgconn.PgError{
			Code:           uniqueViolationCode,
			ConstraintName: "requests_pkey",
		})

	err = s.Create(context.Background(), req)
	assert.ErrorIs(t, err, store.ErrDuplicateRequest)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestStoreCreate_UnknownAd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresRequestStore(db, nil)
	req := testRequest(t)

	mock.ExpectExec("INSERT INTO requests").
		WillReturnError(&pgconn.PgError{
			Code:           foreignKeyViolationCode,
			ConstraintName: "requests_ad_id_fkey",
		})

	err = s.Create(context.Background(), req)
	assert.ErrorIs(t, err, store.ErrInvalidReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestStoreListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresRequestStore(db, nil)
	userID := uuid.New()

	rows := sqlmock.NewRows(requestColumnNames).
		AddRow(userID, uuid.New(), domain.RequestStatusPending, time.Now().UTC()).
		AddRow(userID, uuid.New(), domain.RequestStatusAccepted, time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM requests WHERE user_id").
		WithArgs(userID).
		WillReturnRows(rows)

	requests, err := s.ListByUser(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestStoreListByUser_StatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresRequestStore(db, nil)
	userID := uuid.New()

	rows := sqlmock.NewRows(requestColumnNames).
		AddRow(userID, uuid.New(), domain.RequestStatusPending, time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM requests WHERE user_id = (.+) AND status").
		WithArgs(userID, domain.RequestStatusPending).
		WillReturnRows(rows)

	requests, err := s.ListByUser(context.Background(), userID, domain.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, domain.RequestStatusPending, requests[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestStoreListByUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresRequestStore(db, nil)
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM requests WHERE user_id").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(requestColumnNames))

	requests, err := s.ListByUser(context.Background(), userID, "")
	require.NoError(t, err)
	assert.NotNil(t, requests)
	assert.Empty(t, requests)
	assert.NoError(t, mock.ExpectationsWereMet())
}
