// Package sms abstracts the SMS vendor. Delivery is always best-effort: the
// caller logs failures and never propagates them.
package sms

import "context"

// Sender delivers a single text message.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
