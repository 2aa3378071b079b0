package services

import (
	"context"
	"sync"
	"time"
)

// MockPaymentGateway is an in-memory PaymentGateway for testing.
// It records every session request and can be configured to fail or to
// delegate to custom functions.
type MockPaymentGateway struct {
	mu sync.Mutex

	// CreateSessionFunc overrides CreateCheckoutSession when set.
	CreateSessionFunc func(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)

	// ConstructEventFunc overrides ConstructWebhookEvent when set.
	ConstructEventFunc func(payload []byte, sigHeader string) (*WebhookEvent, error)

	// CreateSessionError makes CreateCheckoutSession fail when set.
	CreateSessionError error

	// CreatedSessions records the parameters of every session request.
	CreatedSessions []CheckoutSessionParams
}

// NewMockPaymentGateway creates a mock gateway that succeeds by default.
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

// CreateCheckoutSession records the request and returns a canned session.
func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	m.mu.Lock()
	m.CreatedSessions = append(m.CreatedSessions, params)
	m.mu.Unlock()

	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, params)
	}
	if m.CreateSessionError != nil {
		return nil, m.CreateSessionError
	}

	return &CheckoutSession{
		ID:  "sess_mock_" + time.Now().Format("150405.000000000"),
		URL: "https://pay.example.com/session/" + params.OrderID,
	}, nil
}

// ConstructWebhookEvent delegates to ConstructEventFunc or rejects everything.
func (m *MockPaymentGateway) ConstructWebhookEvent(payload []byte, sigHeader string) (*WebhookEvent, error) {
	if m.ConstructEventFunc != nil {
		return m.ConstructEventFunc(payload, sigHeader)
	}
	return nil, ErrInvalidSignature
}

// LastSession returns the most recently recorded session params, if any.
func (m *MockPaymentGateway) LastSession() (CheckoutSessionParams, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.CreatedSessions) == 0 {
		return CheckoutSessionParams{}, false
	}
	return m.CreatedSessions[len(m.CreatedSessions)-1], true
}
