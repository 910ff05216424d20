package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

const (
	resetCodeTTL      = 15 * time.Minute
	minPasswordLength = 6
)

var ErrInvalidResetCode = fmt.Errorf("%w: invalid or expired code", ErrInvalidInput)

type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ResetStore.GetValid returns (nil, nil) when no unused code matches before now.
type ResetStore interface {
	Create(ctx context.Context, accountID, code string, expiresAt time.Time) error
	GetValid(ctx context.Context, email, code string, now time.Time) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id int64) error
	DeleteByAccountID(ctx context.Context, accountID string) error
}

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, code string) error
}

type PasswordResetService struct {
	accounts AccountStore
	resets   ResetStore
	mailer   Mailer
	now      func() time.Time
	newCode  func() (string, error)
}

func NewPasswordResetService(accounts AccountStore, resets ResetStore, mailer Mailer) *PasswordResetService {
	return &PasswordResetService{
		accounts: accounts,
		resets:   resets,
		mailer:   mailer,
		now:      time.Now,
		newCode:  sixDigitCode,
	}
}

// Request mails a fresh code to the account, replacing earlier ones.
// Unknown emails succeed silently.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return upstream("get account", err)
	}
	if account == nil {
		return nil
	}

	if err := s.resets.DeleteByAccountID(ctx, account.ID); err != nil {
		log.Printf("[password-reset] failed to delete old codes for account %s: %v", account.ID, err)
	}

	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	if err := s.resets.Create(ctx, account.ID, code, s.now().Add(resetCodeTTL)); err != nil {
		return upstream("save reset code", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, account.Email, code); err != nil {
		return upstream("send reset email", err)
	}
	log.Printf("[password-reset] code sent to account %s", account.ID)
	return nil
}

// Confirm sets a new password when the code is valid, then burns the code.
func (s *PasswordResetService) Confirm(ctx context.Context, email, code, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" || password == "" {
		return fmt.Errorf("%w: email, code and password are required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	reset, err := s.resets.GetValid(ctx, email, code, s.now())
	if err != nil {
		return upstream("get reset code", err)
	}
	if reset == nil {
		return ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.accounts.UpdatePassword(ctx, reset.AccountID, string(hash)); err != nil {
		return upstream("update password", err)
	}
	if err := s.resets.MarkUsed(ctx, reset.ID); err != nil {
		return upstream("mark reset code used", err)
	}
	return nil
}

func sixDigitCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
	return fmt.Sprintf("%06d", n%1000000), nil
}
