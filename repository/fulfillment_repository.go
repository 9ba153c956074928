package repository

import (
	"context"
	"errors"
	"time"

	"musemint-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadyFulfilled is returned by Claim when the session id has been
// claimed before. Callers must perform no side effects in that case.
var ErrAlreadyFulfilled = errors.New("session already fulfilled")

type FulfillmentRepository interface {
	// Claim atomically inserts the fulfillment row, relying on the unique
	// index on session_id. At most one caller ever wins for a given
	// session, even under concurrent duplicate webhook deliveries.
	Claim(ctx context.Context, f *models.Fulfillment) error
	MarkReceiptSent(ctx context.Context, sessionID string, at time.Time) error
	MarkLedgerLogged(ctx context.Context, sessionID string, at time.Time) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.Fulfillment, error)
	Count(ctx context.Context) (int64, error)
}

type gormFulfillmentRepo struct {
	db *gorm.DB
}

func NewGormFulfillmentRepo(db *gorm.DB) FulfillmentRepository {
	return &gormFulfillmentRepo{db: db}
}

func (r *gormFulfillmentRepo) Claim(ctx context.Context, f *models.Fulfillment) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(f)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyFulfilled
	}
	return nil
}

func (r *gormFulfillmentRepo) MarkReceiptSent(ctx context.Context, sessionID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Fulfillment{}).
		Where("session_id = ?", sessionID).
		Update("receipt_sent_at", &at).Error
}

func (r *gormFulfillmentRepo) MarkLedgerLogged(ctx context.Context, sessionID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Fulfillment{}).
		Where("session_id = ?", sessionID).
		Update("ledger_logged_at", &at).Error
}

func (r *gormFulfillmentRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Fulfillment, error) {
	var f models.Fulfillment
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *gormFulfillmentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Fulfillment{}).Count(&n).Error
	return n, err
}
