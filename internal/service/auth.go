package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"albaniarides/internal/auth"
	"albaniarides/internal/crypto"
	"albaniarides/internal/domain"
	"albaniarides/internal/redis"
	"albaniarides/internal/repository"
	"albaniarides/internal/validate"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// AuthService handles registration, login and verification for both
// phone (OTP over SMS) and email (magic link) accounts.
type AuthService struct {
	userRepo repository.UserRepository
	otp      redis.OTPStoreInterface
	links    redis.MagicLinkStoreInterface
	cipher   *crypto.PhoneCipher
	tokens   *auth.TokenIssuer
	notifier *NotificationService
	baseURL  string
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	otp redis.OTPStoreInterface,
	links redis.MagicLinkStoreInterface,
	cipher *crypto.PhoneCipher,
	tokens *auth.TokenIssuer,
	notifier *NotificationService,
	baseURL string,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otp:      otp,
		links:    links,
		cipher:   cipher,
		tokens:   tokens,
		notifier: notifier,
		baseURL:  baseURL,
	}
}

// AuthResult is a verified login: the account plus its bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates a phone account and sends the first verification code.
// The account stays unverified until VerifyOTP succeeds.
func (s *AuthService) Register(ctx context.Context, phone, name, city string) error {
	phone = validate.NormalizePhone(phone)
	if !validate.IsAlbanianPhone(phone) {
		return ErrInvalidPhone
	}
	name = strings.TrimSpace(name)
	if len(name) < minNameLength || len(name) > maxNameLength {
		return ErrInvalidName
	}

	phoneHash := crypto.HashPhone(phone)
	_, err := s.userRepo.GetByPhoneHash(ctx, phoneHash)
	if err == nil {
		return ErrPhoneTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}

	encrypted, err := s.cipher.Encrypt(phone)
	if err != nil {
		return fmt.Errorf("encrypt phone: %w", err)
	}

	user := &domain.User{
		ID:             uuid.New().String(),
		Name:           name,
		PhoneHash:      phoneHash,
		PhoneEncrypted: encrypted,
		City:           strings.TrimSpace(city),
		Rating:         domain.DefaultRating,
		CreatedAt:      time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrPhoneTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	registrations.Inc()

	return s.sendOTP(ctx, phone, phoneHash)
}

// Login sends a fresh verification code to an existing phone account.
func (s *AuthService) Login(ctx context.Context, phone string) error {
	phone = validate.NormalizePhone(phone)
	if !validate.IsAlbanianPhone(phone) {
		return ErrInvalidPhone
	}

	phoneHash := crypto.HashPhone(phone)
	user, err := s.userRepo.GetByPhoneHash(ctx, phoneHash)
	if err != nil {
		return err
	}
	if user.Suspended() {
		return ErrAccountSuspended
	}

	return s.sendOTP(ctx, phone, phoneHash)
}

// VerifyOTP checks the submitted code and, when valid, marks the account
// verified and issues a bearer token. Codes are single-use.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (*AuthResult, error) {
	phone = validate.NormalizePhone(phone)
	if !validate.IsAlbanianPhone(phone) {
		return nil, ErrInvalidPhone
	}

	phoneHash := crypto.HashPhone(phone)
	ok, err := s.otp.Verify(ctx, phoneHash, code)
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	user, err := s.userRepo.GetByPhoneHash(ctx, phoneHash)
	if err != nil {
		return nil, err
	}
	if user.Suspended() {
		return nil, ErrAccountSuspended
	}

	if user.VerifiedAt.IsZero() {
		if err := s.userRepo.SetVerified(ctx, user.ID, time.Now()); err != nil {
			return nil, fmt.Errorf("mark verified: %w", err)
		}
	}

	token, err := s.tokens.Issue(user.ID, phone)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	logins.Inc()
	return &AuthResult{User: user, Token: token}, nil
}

// EmailLogin starts an email flow. With a name it registers a new account,
// without one it logs an existing account in; either way the user receives
// a single-use magic link.
func (s *AuthService) EmailLogin(ctx context.Context, email, name, city string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validate.IsEmail(email) {
		return ErrInvalidEmail
	}

	name = strings.TrimSpace(name)
	if name != "" {
		if len(name) < minNameLength || len(name) > maxNameLength {
			return ErrInvalidName
		}
		_, err := s.userRepo.GetByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup user: %w", err)
		}
	} else {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user.Suspended() {
			return ErrAccountSuspended
		}
	}

	token, err := s.links.Issue(ctx, redis.MagicLinkClaim{
		Email: email,
		Name:  name,
		City:  strings.TrimSpace(city),
	})
	if err != nil {
		return fmt.Errorf("issue magic link: %w", err)
	}

	link := fmt.Sprintf("%s/v1/auth/callback?token=%s", s.baseURL, token)
	s.notifier.SendMagicLink(ctx, email, link)
	return nil
}

// RedeemMagicLink consumes a magic-link token, creating the account on
// first use, and issues a bearer token.
func (s *AuthService) RedeemMagicLink(ctx context.Context, token string) (*AuthResult, error) {
	claim, err := s.links.Redeem(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("redeem magic link: %w", err)
	}
	if claim == nil {
		return nil, ErrInvalidMagicLink
	}

	user, err := s.userRepo.GetByEmail(ctx, claim.Email)
	if errors.Is(err, repository.ErrNotFound) && claim.Name != "" {
		user = &domain.User{
			ID:        uuid.New().String(),
			Name:      claim.Name,
			Email:     claim.Email,
			City:      claim.City,
			Rating:    domain.DefaultRating,
			CreatedAt: time.Now(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrEmailTaken
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
		registrations.Inc()
	} else if err != nil {
		return nil, err
	}
	if user.Suspended() {
		return nil, ErrAccountSuspended
	}

	if user.VerifiedAt.IsZero() {
		if err := s.userRepo.SetVerified(ctx, user.ID, time.Now()); err != nil {
			return nil, fmt.Errorf("mark verified: %w", err)
		}
	}

	jwt, err := s.tokens.Issue(user.ID, "")
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	logins.Inc()
	return &AuthResult{User: user, Token: jwt}, nil
}

func (s *AuthService) sendOTP(ctx context.Context, phone, phoneHash string) error {
	code, err := s.otp.Issue(ctx, phoneHash)
	if err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}
	s.notifier.SendOTP(ctx, phone, code)
	return nil
}
