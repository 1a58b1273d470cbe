package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/virilis/backend/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type sentEmail struct {
	to, name, description string
}

type fakeMailer struct {
	welcome   []sentEmail
	reminders []sentEmail
	err       error
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, to, name string) error {
	f.welcome = append(f.welcome, sentEmail{to: to, name: name})
	return f.err
}

func (f *fakeMailer) SendReminderEmail(_ context.Context, to, name, description string, _ time.Time) error {
	f.reminders = append(f.reminders, sentEmail{to: to, name: name, description: description})
	return f.err
}

type fakeReminderStore map[int64]*model.ReminderDelivery

func (f fakeReminderStore) GetDelivery(_ context.Context, id int64) (*model.ReminderDelivery, error) {
	d, ok := f[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func newTestService(store fakeReminderStore) (*JobService, *fakeEnqueuer, *fakeMailer) {
	logger := zerolog.Nop()
	enq := &fakeEnqueuer{}
	mailer := &fakeMailer{}
	return &JobService{client: enq, logger: &logger, mailer: mailer, reminders: store}, enq, mailer
}

func TestEnqueueWelcomeEmail(t *testing.T) {
	svc, enq, _ := newTestService(nil)

	require.NoError(t, svc.EnqueueWelcomeEmail(context.Background(), "john@example.com", "John"))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskWelcome, enq.tasks[0].Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "john@example.com", Name: "John"}, p)
}

func TestScheduleReminder(t *testing.T) {
	at := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("schedules an active reminder", func(t *testing.T) {
		svc, enq, _ := newTestService(nil)

		err := svc.ScheduleReminder(context.Background(), &model.Reminder{Base: model.Base{ID: 7}, DateTime: at})
		require.NoError(t, err)
		require.Len(t, enq.tasks, 1)

		var p ReminderDuePayload
		require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
		assert.Equal(t, int64(7), p.ReminderID)
		assert.True(t, p.DateTime.Equal(at))
	})

	t.Run("skips snoozed reminder", func(t *testing.T) {
		svc, enq, _ := newTestService(nil)

		err := svc.ScheduleReminder(context.Background(), &model.Reminder{Base: model.Base{ID: 7}, DateTime: at, Snoozed: true})
		require.NoError(t, err)
		assert.Empty(t, enq.tasks)
	})

	t.Run("duplicate firing is not an error", func(t *testing.T) {
		svc, enq, _ := newTestService(nil)
		enq.err = asynq.ErrTaskIDConflict

		err := svc.ScheduleReminder(context.Background(), &model.Reminder{Base: model.Base{ID: 7}, DateTime: at})
		assert.NoError(t, err)
	})

	t.Run("redis failure is returned", func(t *testing.T) {
		svc, enq, _ := newTestService(nil)
		enq.err = errors.New("dial tcp: connection refused")

		err := svc.ScheduleReminder(context.Background(), &model.Reminder{Base: model.Base{ID: 7}, DateTime: at})
		assert.Error(t, err)
	})
}

func TestHandleReminderDueTask(t *testing.T) {
	at := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)

	delivery := func(snoozed bool, dateTime time.Time) *model.ReminderDelivery {
		return &model.ReminderDelivery{
			Reminder: model.Reminder{
				Base:        model.Base{ID: 3},
				Description: "Take zinc",
				DateTime:    dateTime,
				Snoozed:     snoozed,
			},
			UserName:  "John",
			UserEmail: "john@example.com",
		}
	}

	task, err := NewReminderDueTask(3, at)
	require.NoError(t, err)

	tests := []struct {
		name      string
		store     fakeReminderStore
		wantSends int
	}{
		{name: "due reminder is sent", store: fakeReminderStore{3: delivery(false, at)}, wantSends: 1},
		{name: "deleted reminder is skipped", store: fakeReminderStore{}, wantSends: 0},
		{name: "snoozed reminder is skipped", store: fakeReminderStore{3: delivery(true, at)}, wantSends: 0},
		{name: "rescheduled reminder is skipped", store: fakeReminderStore{3: delivery(false, at.Add(time.Hour))}, wantSends: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, mailer := newTestService(tt.store)

			require.NoError(t, svc.handleReminderDueTask(context.Background(), task))
			assert.Len(t, mailer.reminders, tt.wantSends)
		})
	}

	t.Run("mailer failure is retried", func(t *testing.T) {
		svc, _, mailer := newTestService(fakeReminderStore{3: delivery(false, at)})
		mailer.err = errors.New("resend unavailable")

		assert.Error(t, svc.handleReminderDueTask(context.Background(), task))
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		svc, _, _ := newTestService(nil)

		err := svc.handleReminderDueTask(context.Background(), asynq.NewTask(TaskReminderDue, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	svc, _, mailer := newTestService(nil)

	task, err := NewWelcomeEmailTask("jane@example.com", "Jane")
	require.NoError(t, err)

	require.NoError(t, svc.handleWelcomeEmailTask(context.Background(), task))
	require.Len(t, mailer.welcome, 1)
	assert.Equal(t, sentEmail{to: "jane@example.com", name: "Jane"}, mailer.welcome[0])
}

func TestReminderTaskID(t *testing.T) {
	first := time.Date(2030, 1, 1, 10, 0, 0, 200_000_000, time.UTC)
	moved := first.Add(500 * time.Millisecond)

	assert.NotEqual(t, reminderTaskID(7, first), reminderTaskID(7, moved))
	assert.NotEqual(t, reminderTaskID(7, first), reminderTaskID(8, first))
	assert.Equal(t, reminderTaskID(7, first), reminderTaskID(7, first.In(time.FixedZone("KST", 9*60*60))))
}
