package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/assignment"

	"github.com/robfig/cron/v3"
)

// StaleCancellationReason is recorded on assignments cancelled by the sweep.
const StaleCancellationReason = "not accepted in time"

// StaleAssignmentFinder lists assignments still waiting for acceptance.
type StaleAssignmentFinder interface {
	Handle(ctx context.Context, query queries.GetStaleAssignmentsQuery) ([]queries.GetActiveAssignmentsQueryResponse, error)
}

// AssignmentTransitioner applies a status change to one assignment.
type AssignmentTransitioner interface {
	Handle(ctx context.Context, cmd commands.TransitionAssignmentCommand) error
}

// StaleAssignmentConfig tunes the sweep.
type StaleAssignmentConfig struct {
	// Schedule is a cron spec with a seconds field, or a descriptor such as "@every 1m".
	Schedule string
	// After is how long an assignment may stay unaccepted.
	After time.Duration
	// BatchSize caps the assignments cancelled per run.
	BatchSize int
}

// StaleAssignmentJob cancels assignments that no partner accepted in time,
// which releases their orders for another assignment.
type StaleAssignmentJob struct {
	finder       StaleAssignmentFinder
	transitioner AssignmentTransitioner
	config       StaleAssignmentConfig
	now          func() time.Time
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewStaleAssignmentJob creates the job. It does not run until Start.
func NewStaleAssignmentJob(
	finder StaleAssignmentFinder,
	transitioner AssignmentTransitioner,
	config StaleAssignmentConfig,
	logger *slog.Logger,
) *StaleAssignmentJob {
	return &StaleAssignmentJob{
		finder:       finder,
		transitioner: transitioner,
		config:       config,
		now:          func() time.Time { return time.Now().UTC() },
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "stale_assignment_job"),
	}
}

// Start schedules the sweep.
func (j *StaleAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		ctx := context.Background()

		cancelled, err := j.Run(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale assignment sweep failed", "error", err, "cancelled", cancelled)
			return
		}
		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Stale assignments cancelled", "cancelled", cancelled)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.config.Schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale assignment job started",
		"schedule", j.config.Schedule,
		"after", j.config.After.String(),
	)
	return nil
}

// Stop unschedules the sweep and waits for a running one to finish.
func (j *StaleAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale assignment job stopped")
}

// Run performs one sweep and returns how many assignments it cancelled.
// An assignment accepted between the lookup and the cancellation is skipped.
// A failure on one assignment does not stop the others.
func (j *StaleAssignmentJob) Run(ctx context.Context) (int, error) {
	now := j.now()

	query, err := queries.NewGetStaleAssignmentsQuery(now.Add(-j.config.After), j.config.BatchSize)
	if err != nil {
		return 0, err
	}

	stale, err := j.finder.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	var (
		cancelled int
		failures  []error
	)
	for _, a := range stale {
		cmd, err := commands.NewTransitionAssignmentCommand(a.ID, assignment.Cancelled, now, StaleCancellationReason)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		err = j.transitioner.Handle(ctx, cmd)
		switch {
		case err == nil:
			cancelled++
		case errors.Is(err, assignment.ErrIllegalTransition):
			j.logger.DebugContext(ctx, "Assignment moved on before cancellation", "assignment_id", a.ID.String())
		default:
			failures = append(failures, fmt.Errorf("cancel assignment %s: %w", a.ID, err))
		}
	}

	return cancelled, errors.Join(failures...)
}
