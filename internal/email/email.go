// Package email provides outbound email delivery. A single Sender
// interface hides the transport; production uses SMTP while development
// and tests use the log and in-memory senders.
package email

import "context"

// Message is a fully composed email ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender is responsible for actually sending an email.
// Delivery is fire-and-forget from the caller's perspective: a failed send
// surfaces as an error but never rolls back state the caller already
// committed.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
