package notify

import (
	"context"
	"encoding/json"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes queued notification events and delivers them over LINE.
// Admin events go to the configured admin recipient; user events go to the
// user's linked LINE account, or are recorded as skipped when no binding
// exists. Every attempt is written to the notify log.
type Worker struct {
	repo *repository.Repository
	line LinePusher
	cfg  utils.LineConfig
	log  *zap.Logger
}

func NewWorker(repo *repository.Repository, line LinePusher, cfg utils.LineConfig, log *zap.Logger) *Worker {
	return &Worker{
		repo: repo,
		line: line,
		cfg:  cfg,
		log:  log.With(zap.String("component", "notify_worker")),
	}
}

// Run starts the asynq server and blocks until it stops.
func (w *Worker) Run(redisOpt asynq.RedisClientOpt) error {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotifyPush, w.HandleNotifyPush)

	return srv.Run(mux)
}

func (w *Worker) HandleNotifyPush(ctx context.Context, t *asynq.Task) error {
	var event Event
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		// malformed payload, retrying cannot help
		w.log.Error("Failed to unmarshal notification event", zap.Error(err))
		return nil
	}

	switch event.Kind {
	case KindAdmin:
		return w.deliverAdmin(ctx, event)
	case KindUser:
		return w.deliverUser(ctx, event)
	default:
		w.log.Warn("Unknown notification kind", zap.String("kind", string(event.Kind)))
		return nil
	}
}

func (w *Worker) deliverAdmin(ctx context.Context, event Event) error {
	if w.cfg.AdminUserID == "" {
		w.writeLog(ctx, event, false, true, "no admin recipient configured")
		return nil
	}

	if err := w.line.Push(ctx, w.cfg.AdminUserID, event.Summary); err != nil {
		w.log.Warn("Admin notification failed",
			zap.Error(err),
			zap.String("booking_id", event.BookingID.String()),
		)
		w.writeLog(ctx, event, false, false, err.Error())
		return err
	}

	w.writeLog(ctx, event, true, false, "")
	return nil
}

func (w *Worker) deliverUser(ctx context.Context, event Event) error {
	lineUserID, err := w.repo.LineBinding.FindLineUserID(ctx, event.UserID)
	if err != nil {
		return err
	}

	if lineUserID == "" {
		// user never linked LINE; skipped, not an error
		w.writeLog(ctx, event, true, true, "no line binding")
		return nil
	}

	if err := w.line.Push(ctx, lineUserID, event.Summary); err != nil {
		w.log.Warn("User notification failed",
			zap.Error(err),
			zap.String("user_id", event.UserID),
		)
		w.writeLog(ctx, event, false, false, err.Error())
		return err
	}

	w.writeLog(ctx, event, true, false, "")
	return nil
}

func (w *Worker) writeLog(ctx context.Context, event Event, ok, skipped bool, detail string) {
	entry := &entity.NotifyLog{
		ID:        uuid.New(),
		Kind:      entity.NotifyKind(event.Kind),
		UserID:    event.UserID,
		SlotID:    event.SlotID,
		BookingID: event.BookingID,
		OK:        ok,
		Skipped:   skipped,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	if err := w.repo.NotifyLog.Create(ctx, entry); err != nil {
		w.log.Warn("Failed to write notify log", zap.Error(err))
	}
}
