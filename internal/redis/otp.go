package redis

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	otpPrefix = "otp:"
	otpTTL    = 5 * time.Minute
)

// TestOTPCode is the fixed code accepted when the OTP store runs in test
// mode, so local and CI flows work without a live SMS vendor.
const TestOTPCode = "123456"

// OTPStore issues and verifies one-time phone verification codes. Codes are
// keyed by phone hash and expire after otpTTL; a successful verify consumes
// the code.
type OTPStore struct {
	client   *redis.Client
	testMode bool
}

// NewOTPStore creates a new OTPStore. In test mode, Verify accepts
// TestOTPCode for any phone.
func NewOTPStore(client *redis.Client, testMode bool) *OTPStore {
	return &OTPStore{client: client, testMode: testMode}
}

// Issue generates a six-digit code for the phone hash and stores it with a
// TTL, replacing any unconsumed previous code.
func (s *OTPStore) Issue(ctx context.Context, phoneHash string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.client.Set(ctx, otpPrefix+phoneHash, code, otpTTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks a submitted code against the stored one and consumes it on
// success.
func (s *OTPStore) Verify(ctx context.Context, phoneHash, code string) (bool, error) {
	if s.testMode && subtle.ConstantTimeCompare([]byte(code), []byte(TestOTPCode)) == 1 {
		return true, nil
	}

	key := otpPrefix + phoneHash
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	// Single use.
	_ = s.client.Del(ctx, key).Err()
	return true, nil
}
