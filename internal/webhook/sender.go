// Package webhook posts finished records back to the caller's endpoint.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Cpaul777/docai-parse-codes/internal/common"
)

const secretHeader = "x-webhook-secret"

// Sender delivers record payloads to a single configured URL. A zero URL
// disables delivery; Send becomes a no-op so callers do not have to branch.
type Sender struct {
	url    string
	secret string
	client *http.Client
	logger *slog.Logger
}

func NewSender(cfg common.WebhookConfig, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Sender{
		url:    cfg.URL,
		secret: cfg.Secret,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Enabled reports whether a delivery URL is configured.
func (s *Sender) Enabled() bool { return s.url != "" }

// Send posts the JSON payload. Non-2xx responses are returned as errors so
// the caller can decide whether delivery failure is fatal.
func (s *Sender) Send(ctx context.Context, payload []byte) error {
	if !s.Enabled() {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return common.WrapError(err, "build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	if s.secret != "" {
		req.Header.Set(secretHeader, s.secret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return common.WrapError(err, "deliver webhook")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return common.NewAppError("WEBHOOK_FAILED", fmt.Sprintf("webhook returned %d", resp.StatusCode), common.ErrInternal)
	}
	s.logger.Debug("webhook delivered", "status", resp.StatusCode)
	return nil
}
