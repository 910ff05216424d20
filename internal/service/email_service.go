package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

var errMailNotConfigured = errors.New("email delivery is not configured")

// EmailService sends transactional mail through the Resend HTTP API.
type EmailService struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

func NewEmailService(apiKey, from string) *EmailService {
	return &EmailService{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *EmailService) SendPasswordReset(ctx context.Context, to, code string) error {
	if s.apiKey == "" {
		return errMailNotConfigured
	}

	var html strings.Builder
	if err := resetEmail.Execute(&html, struct {
		Code    string
		Minutes int
	}{code, int(resetCodeTTL.Minutes())}); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"from":    s.from,
		"to":      []string{to},
		"subject": "FoodMind password reset code",
		"html":    html.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend api error %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

var resetEmail = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;background:#f4f4f4;padding:20px;">
  <div style="max-width:480px;margin:0 auto;background:#fff;border-radius:8px;padding:32px;">
    <h2 style="color:#333;">FoodMind password reset</h2>
    <p>Use this code to choose a new password:</p>
    <div style="text-align:center;margin:24px 0;">
      <span style="font-size:36px;font-weight:bold;letter-spacing:8px;color:#2e7d32;">{{.Code}}</span>
    </div>
    <p>The code expires in <strong>{{.Minutes}} minutes</strong>.</p>
    <p>If you did not ask for this, you can ignore this email.</p>
  </div>
</body>
</html>`))
