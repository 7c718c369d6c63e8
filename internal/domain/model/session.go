package model

// CheckoutSession mirrors a hosted checkout session created at the
// payment provider. The customer completes payment on the provider's page.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionState describes provider-side state of a hosted session.
type SessionState string

const (
	SessionStateOpen      SessionState = "open"
	SessionStateCompleted SessionState = "completed"
	SessionStateExpired   SessionState = "expired"
)

// PaymentEvent is a verified webhook event from the payment provider.
type PaymentEvent struct {
	ID        string
	Type      string
	SessionID string
}

// EventCheckoutCompleted is the only event type that mutates order state.
const EventCheckoutCompleted = "checkout.session.completed"
