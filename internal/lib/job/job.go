// Package job runs background work on asynq.
//
// The HTTP process enqueues through JobService; the same process runs
// the worker that delivers welcome and reminder emails.
package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/virilis/backend/internal/config"
	"github.com/virilis/backend/internal/lib/email"
	"github.com/virilis/backend/internal/model"
)

// Mailer delivers the emails produced by jobs.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendReminderEmail(ctx context.Context, to, name, description string, at time.Time) error
}

// ReminderStore loads a reminder together with its owner's contact details.
type ReminderStore interface {
	GetDelivery(ctx context.Context, reminderID int64) (*model.ReminderDelivery, error)
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type JobService struct {
	client enqueuer
	server *asynq.Server
	logger *zerolog.Logger

	mailer    Mailer
	reminders ReminderStore
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// InitHandlers wires the dependencies task handlers need. It must run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, reminders ReminderStore) {
	j.mailer = email.NewClient(cfg, logger)
	j.reminders = reminders
}

// Start registers task handlers and starts the worker in the background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskReminderDue, j.handleReminderDueTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// Stop waits for running tasks and releases Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if j.client != nil {
		if err := j.client.Close(); err != nil {
			j.logger.Error().Err(err).Msg("failed to close job client")
		}
	}
}
