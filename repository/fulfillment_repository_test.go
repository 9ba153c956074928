package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"musemint-backend/models"
	"musemint-backend/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestClaim_FirstDeliveryWins(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFulfillmentRepo(gormDB)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "fulfillments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectCommit()

	f := &models.Fulfillment{
		SessionID:     "cs_test_1",
		CustomerEmail: "jane@example.com",
		AmountTotal:   100,
		Currency:      "usd",
		Product:       "MuseMint Toolkit",
	}
	err := repo.Claim(context.Background(), f)
	assert.NoError(t, err)
}

func TestClaim_DuplicateSessionRejected(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFulfillmentRepo(gormDB)

	// ON CONFLICT DO NOTHING returns no rows for an already-claimed session.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "fulfillments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	f := &models.Fulfillment{SessionID: "cs_test_1", AmountTotal: 100, Currency: "usd"}
	err := repo.Claim(context.Background(), f)
	assert.ErrorIs(t, err, repository.ErrAlreadyFulfilled)
}

func TestMarkReceiptSent(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFulfillmentRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "fulfillments"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkReceiptSent(context.Background(), "cs_test_1", time.Now())
	assert.NoError(t, err)
}

func TestMarkLedgerLogged(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFulfillmentRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "fulfillments"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkLedgerLogged(context.Background(), "cs_test_1", time.Now())
	assert.NoError(t, err)
}

func TestGetBySessionID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFulfillmentRepo(gormDB)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "customer_email", "amount_total", "currency", "product", "created_at", "updated_at"}).
		AddRow(id, "cs_test_1", "jane@example.com", 100, "usd", "MuseMint Toolkit", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "fulfillments"`)).
		WithArgs("cs_test_1", 1).
		WillReturnRows(rows)

	f, err := repo.GetBySessionID(context.Background(), "cs_test_1")
	assert.NoError(t, err)
	assert.Equal(t, "cs_test_1", f.SessionID)
	assert.Equal(t, int64(100), f.AmountTotal)
}

func TestGetBySessionID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFulfillmentRepo(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "fulfillments"`)).
		WithArgs("cs_missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	f, err := repo.GetBySessionID(context.Background(), "cs_missing")
	assert.Error(t, err)
	assert.Nil(t, f)
}

func TestCount(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFulfillmentRepo(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "fulfillments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
