package models

// CheckoutRequest is the optional body of POST /checkout/session. The
// price itself is never user-supplied; only the quantity is.
type CheckoutRequest struct {
	Quantity int64 `json:"quantity"`
}

// CheckoutResponse carries the provider-issued session id and hosted
// checkout URL back to the browser.
type CheckoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Receipt is the read-only view of a checkout session shown on the
// success page.
type Receipt struct {
	SessionID     string `json:"session_id"`
	Status        string `json:"status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Product       string `json:"product,omitempty"`
}
