package redis

import "context"

// OTPStoreInterface defines the interface for one-time code operations.
type OTPStoreInterface interface {
	Issue(ctx context.Context, phoneHash string) (string, error)
	Verify(ctx context.Context, phoneHash, code string) (bool, error)
}

// MagicLinkStoreInterface defines the interface for email login tokens.
type MagicLinkStoreInterface interface {
	Issue(ctx context.Context, claim MagicLinkClaim) (string, error)
	Redeem(ctx context.Context, token string) (*MagicLinkClaim, error)
}

// Ensure concrete types implement interfaces.
var (
	_ OTPStoreInterface       = (*OTPStore)(nil)
	_ MagicLinkStoreInterface = (*MagicLinkStore)(nil)
)
