// Package mail provides the queue-backed mailer and the worker-side
// delivery handler for transactional mail.
package mail

import (
	"context"
	"log/slog"

	"pkgdir/internal/feature/account/domain/entity"
	"pkgdir/internal/feature/account/usecase"
	"pkgdir/internal/platform/queue"
)

// Template identifiers understood by the delivery side.
const (
	TemplateActivationInstructions    = "activation_instructions"
	TemplateActivationConfirmation    = "activation_confirmation"
	TemplatePasswordResetInstructions = "password_reset_instructions"
)

// QueueMailer implements usecase.Mailer by enqueueing delivery tasks.
// Enqueue failures are logged and dropped; mail is fire-and-forget
// from the caller's point of view.
type QueueMailer struct {
	client *queue.Client
}

// Compile-time check that QueueMailer implements Mailer.
var _ usecase.Mailer = (*QueueMailer)(nil)

// NewQueueMailer creates a new QueueMailer instance.
func NewQueueMailer(client *queue.Client) *QueueMailer {
	return &QueueMailer{client: client}
}

// ActivationInstructions queues the signup activation mail.
func (m *QueueMailer) ActivationInstructions(ctx context.Context, u *entity.User, token string) {
	m.send(ctx, TemplateActivationInstructions, u, token)
}

// ActivationConfirmation queues the post-activation confirmation mail.
func (m *QueueMailer) ActivationConfirmation(ctx context.Context, u *entity.User) {
	m.send(ctx, TemplateActivationConfirmation, u, "")
}

// PasswordResetInstructions queues the password reset mail.
func (m *QueueMailer) PasswordResetInstructions(ctx context.Context, u *entity.User, token string) {
	m.send(ctx, TemplatePasswordResetInstructions, u, token)
}

func (m *QueueMailer) send(ctx context.Context, template string, u *entity.User, token string) {
	err := m.client.EnqueueMail(ctx, queue.MailPayload{
		Template: template,
		UserID:   u.ID,
		Login:    u.Login,
		Email:    u.Email,
		Token:    token,
	})
	if err != nil {
		slog.Error("failed to enqueue mail", "template", template, "user_id", u.ID, "error", err)
	}
}
