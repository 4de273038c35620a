package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"pkgdir/internal/platform/queue"
	"pkgdir/internal/shared/ratelimiter"
)

// gatewayRateLimit caps outbound calls to the mail gateway so a burst
// of signups cannot flood it.
const gatewayRateLimit = 60

// Deliverer hands a composed message to the mail transport.
type Deliverer interface {
	Deliver(ctx context.Context, p queue.MailPayload) error
}

// WebhookDeliverer posts messages to an external mail gateway. In stub
// mode (no gateway configured) it logs the message instead, which is
// what development environments run with.
type WebhookDeliverer struct {
	baseURL    string
	secret     string
	httpClient *http.Client
	limiter    ratelimiter.Limiter
	stubMode   bool
}

// NewWebhookDeliverer creates a new WebhookDeliverer instance.
// An empty baseURL enables stub mode.
func NewWebhookDeliverer(baseURL, secret string) *WebhookDeliverer {
	return &WebhookDeliverer{
		baseURL:    baseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    ratelimiter.NewRateLimiter(gatewayRateLimit, time.Minute),
		stubMode:   baseURL == "",
	}
}

// Deliver sends one message through the gateway.
func (d *WebhookDeliverer) Deliver(ctx context.Context, p queue.MailPayload) error {
	if d.stubMode {
		slog.Info("mail (stub mode)", "template", p.Template, "to", p.Email, "login", p.Login)
		return nil
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/deliver", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Mail-Secret", d.secret)
	req.Header.Set("Content-Type", "application/json")

	d.limiter.WaitIfNeeded()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail gateway returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// NewDeliverTaskHandler returns the worker handler for mail:deliver
// tasks. Errors propagate to asynq so deliveries retry.
func NewDeliverTaskHandler(d Deliverer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p queue.MailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("malformed mail payload: %w", err)
		}
		return d.Deliver(ctx, p)
	}
}
