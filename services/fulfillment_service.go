package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"musemint-backend/models"
	aws_pkg "musemint-backend/pkg/aws"
	"musemint-backend/repository"
	"musemint-backend/sender"

	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// FulfillmentService performs the per-sale side effects for a completed
// checkout session: claim the session in the store, send the receipt,
// append the ledger row, publish the sale event.
type FulfillmentService interface {
	// FulfillCheckout returns an error only when the fulfillment could not
	// be claimed in the store (nothing was dispatched; the provider may
	// retry safely). Side-effect failures after a successful claim are
	// logged and swallowed.
	FulfillCheckout(ctx context.Context, sess *stripe.CheckoutSession) error
}

type fulfillmentServiceImpl struct {
	repo        repository.FulfillmentRepository
	emailSender sender.EmailSender
	ledger      LedgerClient
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewFulfillmentService(
	repo repository.FulfillmentRepository,
	emailSender sender.EmailSender,
	ledger LedgerClient,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) FulfillmentService {
	return &fulfillmentServiceImpl{
		repo:        repo,
		emailSender: emailSender,
		ledger:      ledger,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

func (s *fulfillmentServiceImpl) FulfillCheckout(ctx context.Context, sess *stripe.CheckoutSession) error {
	f := &models.Fulfillment{
		SessionID:     sess.ID,
		CustomerEmail: customerEmail(sess),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		Product:       sess.Metadata["product"],
	}

	if err := s.repo.Claim(ctx, f); err != nil {
		if errors.Is(err, repository.ErrAlreadyFulfilled) {
			s.logger.Info("Skipping duplicate checkout webhook",
				zap.String("session_id", sess.ID),
			)
			return nil
		}
		return fmt.Errorf("failed to claim fulfillment for session %s: %w", sess.ID, err)
	}

	now := time.Now()

	if f.CustomerEmail == "" {
		s.logger.Warn("No customer email on completed session, skipping receipt",
			zap.String("session_id", sess.ID),
		)
	} else if _, err := s.emailSender.SendEmail(ctx, f.CustomerEmail, "Your MuseMint receipt", receiptBody(f)); err != nil {
		s.logger.Error("Receipt email failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
	} else if err := s.repo.MarkReceiptSent(ctx, sess.ID, now); err != nil {
		s.logger.Warn("Failed to stamp receipt_sent_at", zap.String("session_id", sess.ID), zap.Error(err))
	}

	row := models.LedgerRow{
		Sheet:     "sales",
		SessionID: sess.ID,
		Email:     f.CustomerEmail,
		Amount:    float64(f.AmountTotal) / 100,
		Currency:  f.Currency,
		Product:   f.Product,
		Timestamp: now.UTC(),
	}
	if err := s.ledger.AppendRow(ctx, row); err != nil {
		s.logger.Error("Ledger append failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
	} else if err := s.repo.MarkLedgerLogged(ctx, sess.ID, now); err != nil {
		s.logger.Warn("Failed to stamp ledger_logged_at", zap.String("session_id", sess.ID), zap.Error(err))
	}

	s.publishSaleEvent(ctx, f, now)

	s.logger.Info("Fulfillment completed",
		zap.String("session_id", sess.ID),
		zap.String("fulfillment_id", f.ID.String()),
		zap.Int64("amount_total", f.AmountTotal),
		zap.String("currency", f.Currency),
	)
	return nil
}

// publishSaleEvent marshals a SaleEvent and publishes it to SNS.
func (s *fulfillmentServiceImpl) publishSaleEvent(ctx context.Context, f *models.Fulfillment, now time.Time) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}
	event := models.SaleEvent{
		Type:          "sale_completed",
		SessionID:     f.SessionID,
		FulfillmentID: f.ID.String(),
		CustomerEmail: f.CustomerEmail,
		Amount:        f.AmountTotal,
		Currency:      f.Currency,
		Product:       f.Product,
		Timestamp:     now.UTC(),
	}
	payload, _ := json.Marshal(event)
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
		s.logger.Error("Failed to publish sale event to SNS",
			zap.String("session_id", f.SessionID),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Sale event published to SNS", zap.String("session_id", f.SessionID))
}

func customerEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.CustomerEmail
}

func receiptBody(f *models.Fulfillment) string {
	product := f.Product
	if product == "" {
		product = "your MuseMint purchase"
	}
	return fmt.Sprintf(
		"<p>Thanks for your purchase!</p><p>%s &mdash; %.2f %s</p><p>Reference: %s</p>",
		product, float64(f.AmountTotal)/100, f.Currency, f.SessionID,
	)
}
