package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func testEvent(kind Kind) Event {
	return Event{
		Kind:      kind,
		SlotID:    uuid.New(),
		BookingID: uuid.New(),
		UserID:    "user-1",
		Summary:   "Consultation with Room A at 2026-09-07 09:00",
	}
}

func TestDispatchEnqueuesTask(t *testing.T) {
	enq := &fakeEnqueuer{}
	d := NewDispatcher(enq, zap.NewNop())

	d.Dispatch(context.Background(), testEvent(KindAdmin))

	require.Len(t, enq.tasks, 1)
	require.Equal(t, TypeNotifyPush, enq.tasks[0].Type())
}

func TestDispatchSwallowsEnqueueFailure(t *testing.T) {
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	d := NewDispatcher(enq, zap.NewNop())

	// must not panic or surface the error to the caller
	d.Dispatch(context.Background(), testEvent(KindUser))
	require.Empty(t, enq.tasks)
}

type fakePusher struct {
	pushed []string // recipients
	err    error
}

func (f *fakePusher) Push(ctx context.Context, to, text string) error {
	if f.err != nil {
		return f.err
	}
	f.pushed = append(f.pushed, to)
	return nil
}

type fakeBindingRepo struct {
	bindings map[string]string
}

func (f *fakeBindingRepo) FindLineUserID(ctx context.Context, userID string) (string, error) {
	return f.bindings[userID], nil
}

func (f *fakeBindingRepo) Bind(ctx context.Context, userID, lineUserID string) error {
	f.bindings[userID] = lineUserID
	return nil
}

type fakeNotifyLogRepo struct {
	entries []*entity.NotifyLog
}

func (f *fakeNotifyLogRepo) Create(ctx context.Context, log *entity.NotifyLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeNotifyLogRepo) FindRecent(ctx context.Context, limit int) ([]*entity.NotifyLog, error) {
	return f.entries, nil
}

func newTestWorker(adminID string, pusher *fakePusher, bindings map[string]string) (*Worker, *fakeNotifyLogRepo) {
	logs := &fakeNotifyLogRepo{}
	repo := &repository.Repository{
		LineBinding: &fakeBindingRepo{bindings: bindings},
		NotifyLog:   logs,
	}
	cfg := utils.LineConfig{AdminUserID: adminID}
	return NewWorker(repo, pusher, cfg, zap.NewNop()), logs
}

func TestHandleNotifyPushAdmin(t *testing.T) {
	pusher := &fakePusher{}
	worker, logs := newTestWorker("admin-line-id", pusher, nil)

	task := asynq.NewTask(TypeNotifyPush, mustMarshal(t, testEvent(KindAdmin)))
	require.NoError(t, worker.HandleNotifyPush(context.Background(), task))

	require.Equal(t, []string{"admin-line-id"}, pusher.pushed)
	require.Len(t, logs.entries, 1)
	require.True(t, logs.entries[0].OK)
	require.False(t, logs.entries[0].Skipped)
}

func TestHandleNotifyPushAdminUnconfigured(t *testing.T) {
	pusher := &fakePusher{}
	worker, logs := newTestWorker("", pusher, nil)

	task := asynq.NewTask(TypeNotifyPush, mustMarshal(t, testEvent(KindAdmin)))
	require.NoError(t, worker.HandleNotifyPush(context.Background(), task))

	require.Empty(t, pusher.pushed)
	require.Len(t, logs.entries, 1)
	require.True(t, logs.entries[0].Skipped)
}

func TestHandleNotifyPushUserWithBinding(t *testing.T) {
	pusher := &fakePusher{}
	worker, logs := newTestWorker("admin-line-id", pusher, map[string]string{"user-1": "line-u1"})

	task := asynq.NewTask(TypeNotifyPush, mustMarshal(t, testEvent(KindUser)))
	require.NoError(t, worker.HandleNotifyPush(context.Background(), task))

	require.Equal(t, []string{"line-u1"}, pusher.pushed)
	require.Len(t, logs.entries, 1)
	require.True(t, logs.entries[0].OK)
}

func TestHandleNotifyPushUserWithoutBinding(t *testing.T) {
	pusher := &fakePusher{}
	worker, logs := newTestWorker("admin-line-id", pusher, nil)

	task := asynq.NewTask(TypeNotifyPush, mustMarshal(t, testEvent(KindUser)))
	require.NoError(t, worker.HandleNotifyPush(context.Background(), task))

	// no binding is a skip, not a retryable failure
	require.Empty(t, pusher.pushed)
	require.Len(t, logs.entries, 1)
	require.True(t, logs.entries[0].Skipped)
}

func TestHandleNotifyPushDeliveryFailure(t *testing.T) {
	pusher := &fakePusher{err: errors.New("line api 500")}
	worker, logs := newTestWorker("admin-line-id", pusher, nil)

	task := asynq.NewTask(TypeNotifyPush, mustMarshal(t, testEvent(KindAdmin)))
	require.Error(t, worker.HandleNotifyPush(context.Background(), task))

	require.Len(t, logs.entries, 1)
	require.False(t, logs.entries[0].OK)
	require.Equal(t, "line api 500", logs.entries[0].Detail)
}

func TestHandleNotifyPushMalformedPayload(t *testing.T) {
	pusher := &fakePusher{}
	worker, logs := newTestWorker("admin-line-id", pusher, nil)

	task := asynq.NewTask(TypeNotifyPush, []byte("not json"))
	// malformed payloads are dropped, not retried
	require.NoError(t, worker.HandleNotifyPush(context.Background(), task))
	require.Empty(t, logs.entries)
}

func mustMarshal(t *testing.T, event Event) []byte {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return payload
}
