// Package queue wraps the asynq client and server used for
// fire-and-forget background dispatch (transactional mail, activity
// recording).
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Task type constants.
const (
	TaskMailDeliver    = "mail:deliver"
	TaskActivityRecord = "activity:record"
)

// MailPayload is the body of a mail:deliver task.
type MailPayload struct {
	Template string `json:"template"`
	UserID   uint   `json:"user_id"`
	Login    string `json:"login"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
}

// ActivityPayload is the body of an activity:record task.
type ActivityPayload struct {
	Event                string `json:"event"`
	ActorID              uint   `json:"actor_id"`
	SubjectType          string `json:"subject_type"`
	SubjectID            uint   `json:"subject_id"`
	SecondarySubjectType string `json:"secondary_subject_type,omitempty"`
	SecondarySubjectID   uint   `json:"secondary_subject_id,omitempty"`
}

// Client enqueues background tasks.
type Client struct {
	inner *asynq.Client
}

// NewClient creates a task client against the given Redis address.
func NewClient(addr, password string) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password}),
	}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.inner.Close()
}

// EnqueueMail queues a mail delivery. Retried up to 3 times by the
// worker; retained a day for inspection.
func (c *Client) EnqueueMail(ctx context.Context, p MailPayload) error {
	return c.enqueue(ctx, TaskMailDeliver, p)
}

// EnqueueActivity queues an activity record write.
func (c *Client) EnqueueActivity(ctx context.Context, p ActivityPayload) error {
	return c.enqueue(ctx, TaskActivityRecord, p)
}

func (c *Client) enqueue(ctx context.Context, typ string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", typ, err)
	}
	task := asynq.NewTask(typ, data,
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if _, err := c.inner.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", typ, err)
	}
	return nil
}

// slogAdapter bridges slog.Logger to the asynq.Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(args ...interface{}) { a.logger.Debug(fmt.Sprint(args...)) }
func (a *slogAdapter) Info(args ...interface{})  { a.logger.Info(fmt.Sprint(args...)) }
func (a *slogAdapter) Warn(args ...interface{})  { a.logger.Warn(fmt.Sprint(args...)) }
func (a *slogAdapter) Error(args ...interface{}) { a.logger.Error(fmt.Sprint(args...)) }
func (a *slogAdapter) Fatal(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// NewServer builds the worker server processing background tasks.
func NewServer(addr, password string, logger *slog.Logger) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr, Password: password},
		asynq.Config{
			Concurrency:     5,
			ShutdownTimeout: 30 * time.Second,
			Logger:          &slogAdapter{logger: logger},
		},
	)
}

// NewMux registers the task handlers.
func NewMux(mail, activity asynq.HandlerFunc) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskMailDeliver, mail)
	mux.HandleFunc(TaskActivityRecord, activity)
	return mux
}
