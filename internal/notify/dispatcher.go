package notify

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the slice of asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher hands post-commit events to the task queue. It is a separate
// failure domain: every error here is logged and swallowed.
type Dispatcher struct {
	client Enqueuer
	log    *zap.Logger
}

func NewDispatcher(client Enqueuer, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		log:    log.With(zap.String("component", "notify_dispatcher")),
	}
}

// Dispatch enqueues the event for asynchronous delivery. It never returns an
// error; a failed enqueue loses the notification, not the booking.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.log.Error("Failed to marshal notification event", zap.Error(err))
		return
	}

	task := asynq.NewTask(TypeNotifyPush, payload)
	if _, err := d.client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		d.log.Warn("Failed to enqueue notification",
			zap.Error(err),
			zap.String("kind", string(event.Kind)),
			zap.String("booking_id", event.BookingID.String()),
		)
		return
	}

	d.log.Debug("Notification enqueued",
		zap.String("kind", string(event.Kind)),
		zap.String("booking_id", event.BookingID.String()),
	)
}
