package domain

import "time"

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ConfirmForgotPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// PasswordReset is a single-use emailed code for one account.
type PasswordReset struct {
	ID        int64
	AccountID string
	Code      string
	ExpiresAt time.Time
	Used      bool
}
