package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// ResendConfig holds the Resend account and sender identity.
type ResendConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	ReplyTo   string
}

// ResendClient delivers invoice and receipt emails through Resend.
type ResendClient struct {
	client  *resend.Client
	from    string
	replyTo string
}

// NewResendClient creates a new Resend client.
func NewResendClient(cfg ResendConfig) *ResendClient {
	return &ResendClient{
		client:  resend.NewClient(cfg.APIKey),
		from:    formatAddress(cfg.FromName, cfg.FromEmail),
		replyTo: cfg.ReplyTo,
	}
}

// Send delivers one message. Provider failures come back as EmailError so the
// worker can tell retryable ones apart.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{formatAddress(input.Name, input.To)},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}
	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}
	for _, a := range input.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, classifyResendError(err)
	}

	return &adapter.SendEmailResult{
		ResendID: sent.Id,
	}, nil
}

// classifyResendError treats rejected requests (401, 403, 422 and validation
// failures) as permanent. Rate limits and server errors are retried.
func classifyResendError(err error) *domainerror.EmailError {
	errStr := strings.ToLower(err.Error())

	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(errStr, pattern) {
			return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "email rejected by provider", err)
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "email provider unavailable", err)
}

func formatAddress(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

var _ adapter.EmailSender = (*ResendClient)(nil)
