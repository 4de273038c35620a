// Package notify publishes activity events to the background queue
// and records them on the worker side.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	activityentity "pkgdir/internal/feature/activity/domain/entity"
	ratingusecase "pkgdir/internal/feature/rating/usecase"
	"pkgdir/internal/platform/queue"
)

// QueueNotifier implements the rating feature's Notifier by
// enqueueing activity:record tasks. Enqueue failures are logged and
// dropped; notification is fire-and-forget for the caller.
type QueueNotifier struct {
	client *queue.Client
}

// Compile-time check that QueueNotifier implements Notifier.
var _ ratingusecase.Notifier = (*QueueNotifier)(nil)

// NewQueueNotifier creates a new QueueNotifier instance.
func NewQueueNotifier(client *queue.Client) *QueueNotifier {
	return &QueueNotifier{client: client}
}

// RatingPosted publishes a new_package_rating event with the rating as
// subject and the rated package as secondary subject.
func (n *QueueNotifier) RatingPosted(ctx context.Context, actorID, ratingID, packageID uint) {
	err := n.client.EnqueueActivity(ctx, queue.ActivityPayload{
		Event:                activityentity.EventNewPackageRating,
		ActorID:              actorID,
		SubjectType:          activityentity.SubjectRating,
		SubjectID:            ratingID,
		SecondarySubjectType: activityentity.SubjectPackage,
		SecondarySubjectID:   packageID,
	})
	if err != nil {
		slog.Error("failed to enqueue activity", "event", activityentity.EventNewPackageRating,
			"actor_id", actorID, "error", err)
	}
}

// ActivityRecorder is the slice of the activity feature the worker
// needs to persist events.
type ActivityRecorder interface {
	Record(ctx context.Context, a *activityentity.Activity) error
}

// NewRecordTaskHandler returns the worker handler for activity:record
// tasks.
func NewRecordTaskHandler(recorder ActivityRecorder) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p queue.ActivityPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("malformed activity payload: %w", err)
		}
		return recorder.Record(ctx, &activityentity.Activity{
			Event:                p.Event,
			ActorID:              p.ActorID,
			SubjectType:          p.SubjectType,
			SubjectID:            p.SubjectID,
			SecondarySubjectType: p.SecondarySubjectType,
			SecondarySubjectID:   p.SecondarySubjectID,
		})
	}
}
