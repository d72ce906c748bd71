// Package email sends transactional mail. Delivery is best-effort: the
// task runner invokes the notifier after the originating transaction has
// committed, and failures are logged rather than surfaced to clients.
package email

import "context"

// VerificationData carries everything the verification message needs.
type VerificationData struct {
	// Email is the recipient address.
	Email string

	// GivenName personalizes the greeting.
	GivenName string

	// VerifyURL is the full link the recipient follows to verify.
	VerifyURL string
}

// Notifier sends account emails to users.
type Notifier interface {
	// SendVerification delivers the email verification message.
	// Returns an error if the message could not be handed to the
	// mail transport.
	SendVerification(ctx context.Context, data VerificationData) error
}
