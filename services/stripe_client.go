package services

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// StripeClient is the surface the controllers depend on, so tests can
// substitute a fake gateway.
type StripeClient interface {
	CreateCheckoutSession(quantity int64) (*stripe.CheckoutSession, *ServiceError)
	GetCheckoutSession(id string) (*stripe.CheckoutSession, *ServiceError)
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

type StripeService struct {
	SecretKey   string
	WebhookKey  string
	PriceID     string
	ProductName string
	SiteBaseURL string
}

func NewStripeService(secretKey, webhookKey, priceID, productName, siteBaseURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		SecretKey:   secretKey,
		WebhookKey:  webhookKey,
		PriceID:     priceID,
		ProductName: productName,
		SiteBaseURL: siteBaseURL,
	}
}

// CreateCheckoutSession creates a one-time payment session for the
// configured price. The price id is never caller-supplied.
func (s *StripeService) CreateCheckoutSession(quantity int64) (*stripe.CheckoutSession, *ServiceError) {
	if s.SecretKey == "" || s.PriceID == "" {
		return nil, configurationError("Stripe is not configured")
	}
	if quantity < 1 || quantity > 10 {
		return nil, validationError("quantity must be between 1 and 10")
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.PriceID),
				Quantity: stripe.Int64(quantity),
			},
		},
		SuccessURL: stripe.String(s.SiteBaseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.SiteBaseURL + "/cancel"),
	}
	params.AddMetadata("product", s.ProductName)

	sess, err := session.New(params)
	if err != nil {
		return nil, upstreamError(stripeMessage(err))
	}
	return sess, nil
}

// GetCheckoutSession retrieves a session read-only for the success page.
func (s *StripeService) GetCheckoutSession(id string) (*stripe.CheckoutSession, *ServiceError) {
	if s.SecretKey == "" {
		return nil, configurationError("Stripe is not configured")
	}
	sess, err := session.Get(id, nil)
	if err != nil {
		return nil, upstreamError(stripeMessage(err))
	}
	return sess, nil
}

// ParseWebhook verifies the Stripe-Signature header against the raw,
// untouched request body. Verification is over the literal bytes, so the
// body must not be decoded before this call.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	if s.WebhookKey == "" {
		return event, errors.New("webhook signing secret not configured")
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}

func stripeMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
