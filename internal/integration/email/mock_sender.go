package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// MockEmailSender records emails instead of delivering them. It is used when no
// provider key is configured and by the tests.
type MockEmailSender struct {
	mu          sync.Mutex
	sent        []adapter.SendEmailInput
	failWith    error
	isPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send implements adapter.EmailSender.
func (m *MockEmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.isPermanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "mock delivery failure", m.failWith)
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{
		ResendID: fmt.Sprintf("mock-%d", len(m.sent)),
	}, nil
}

// SetFailure makes every following Send fail with err.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
	m.isPermanent = permanent
}

// Sent returns a copy of the emails delivered so far.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]adapter.SendEmailInput, len(m.sent))
	copy(out, m.sent)
	return out
}

// Reset clears sent emails and the failure configuration.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failWith = nil
	m.isPermanent = false
}

var _ adapter.EmailSender = (*MockEmailSender)(nil)
