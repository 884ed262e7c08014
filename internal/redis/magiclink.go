package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	magicLinkPrefix = "magiclink:"
	magicLinkTTL    = 15 * time.Minute
)

// MagicLinkClaim is the pending email login stored behind a one-shot token.
// Name and City are set only for first-time registrations and are used to
// create the account when the link is redeemed.
type MagicLinkClaim struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	City  string `json:"city,omitempty"`
}

// MagicLinkStore holds short-lived email login tokens.
type MagicLinkStore struct {
	client *redis.Client
}

// NewMagicLinkStore creates a new MagicLinkStore.
func NewMagicLinkStore(client *redis.Client) *MagicLinkStore {
	return &MagicLinkStore{client: client}
}

// Issue stores a claim behind a fresh opaque token.
func (s *MagicLinkStore) Issue(ctx context.Context, claim MagicLinkClaim) (string, error) {
	data, err := json.Marshal(claim)
	if err != nil {
		return "", err
	}

	token := uuid.New().String()
	if err := s.client.Set(ctx, magicLinkPrefix+token, data, magicLinkTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Redeem consumes a token, returning its claim. Returns nil when the token
// is unknown or already used.
func (s *MagicLinkStore) Redeem(ctx context.Context, token string) (*MagicLinkClaim, error) {
	key := magicLinkPrefix + token
	data, err := s.client.GetDel(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var claim MagicLinkClaim
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}
