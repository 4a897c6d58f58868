// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// QueuePaymentOverdueInput represents the input for queueing an overdue-plan reminder.
type QueuePaymentOverdueInput struct {
	ClientName  string
	ClientEmail string
	Status      string
	PlanTier    string
	DueDate     string // already formatted for display (DD/MM/YYYY)
	DaysOverdue int
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueuePaymentOverdueEmail queues an overdue-plan reminder email.
	QueuePaymentOverdueEmail(ctx context.Context, input QueuePaymentOverdueInput) error
}
