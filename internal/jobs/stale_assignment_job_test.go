package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sweepAt = time.Date(2025, 8, 1, 21, 0, 0, 0, time.UTC)

type MockStaleAssignmentFinder struct {
	mock.Mock
}

func (m *MockStaleAssignmentFinder) Handle(
	ctx context.Context,
	query queries.GetStaleAssignmentsQuery,
) ([]queries.GetActiveAssignmentsQueryResponse, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).([]queries.GetActiveAssignmentsQueryResponse)
	return result, args.Error(1)
}

type MockAssignmentTransitioner struct {
	mock.Mock
}

func (m *MockAssignmentTransitioner) Handle(ctx context.Context, cmd commands.TransitionAssignmentCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func newTestJob(finder *MockStaleAssignmentFinder, transitioner *MockAssignmentTransitioner) *StaleAssignmentJob {
	job := NewStaleAssignmentJob(finder, transitioner, StaleAssignmentConfig{
		Schedule:  "@every 1h",
		After:     10 * time.Minute,
		BatchSize: 50,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	job.now = func() time.Time { return sweepAt }
	return job
}

func staleRows(n int) []queries.GetActiveAssignmentsQueryResponse {
	rows := make([]queries.GetActiveAssignmentsQueryResponse, n)
	for i := range rows {
		rows[i] = queries.GetActiveAssignmentsQueryResponse{
			ID:         kernel.NewUUID(),
			OrderID:    kernel.NewUUID(),
			PartnerID:  kernel.NewUUID(),
			Status:     assignment.Assigned,
			AssignedAt: sweepAt.Add(-time.Hour),
		}
	}
	return rows
}

func cancels(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.TransitionAssignmentCommand) bool {
		return cmd.AssignmentID() == id &&
			cmd.Target() == assignment.Cancelled &&
			cmd.At().Equal(sweepAt) &&
			cmd.Reason() == StaleCancellationReason
	})
}

func TestStaleAssignmentJob_Run_CancelsEveryStaleAssignment(t *testing.T) {
	finder := &MockStaleAssignmentFinder{}
	transitioner := &MockAssignmentTransitioner{}
	rows := staleRows(2)

	finder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetStaleAssignmentsQuery) bool {
		return q.AssignedBefore().Equal(sweepAt.Add(-10*time.Minute)) && q.Limit() == 50
	})).Return(rows, nil).Once()
	transitioner.On("Handle", mock.Anything, cancels(rows[0].ID)).Return(nil).Once()
	transitioner.On("Handle", mock.Anything, cancels(rows[1].ID)).Return(nil).Once()

	cancelled, err := newTestJob(finder, transitioner).Run(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)
	finder.AssertExpectations(t)
	transitioner.AssertExpectations(t)
}

func TestStaleAssignmentJob_Run_SkipsAssignmentsAcceptedMeanwhile(t *testing.T) {
	finder := &MockStaleAssignmentFinder{}
	transitioner := &MockAssignmentTransitioner{}
	rows := staleRows(2)

	finder.On("Handle", mock.Anything, mock.Anything).Return(rows, nil).Once()
	transitioner.On("Handle", mock.Anything, cancels(rows[0].ID)).Return(assignment.ErrIllegalTransition).Once()
	transitioner.On("Handle", mock.Anything, cancels(rows[1].ID)).Return(nil).Once()

	cancelled, err := newTestJob(finder, transitioner).Run(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
}

func TestStaleAssignmentJob_Run_ContinuesPastFailures(t *testing.T) {
	finder := &MockStaleAssignmentFinder{}
	transitioner := &MockAssignmentTransitioner{}
	rows := staleRows(3)

	finder.On("Handle", mock.Anything, mock.Anything).Return(rows, nil).Once()
	transitioner.On("Handle", mock.Anything, cancels(rows[0].ID)).Return(nil).Once()
	transitioner.On("Handle", mock.Anything, cancels(rows[1].ID)).
		Return(errs.NewUnavailableError("commit", errors.New("connection reset"))).Once()
	transitioner.On("Handle", mock.Anything, cancels(rows[2].ID)).Return(nil).Once()

	cancelled, err := newTestJob(finder, transitioner).Run(t.Context())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Contains(t, err.Error(), rows[1].ID.String())
	assert.Equal(t, 2, cancelled)
	transitioner.AssertExpectations(t)
}

func TestStaleAssignmentJob_Run_FinderFailure(t *testing.T) {
	finder := &MockStaleAssignmentFinder{}
	transitioner := &MockAssignmentTransitioner{}
	finder.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewUnavailableError("list stale assignments", errors.New("timeout"))).Once()

	cancelled, err := newTestJob(finder, transitioner).Run(t.Context())

	assert.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Zero(t, cancelled)
	transitioner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestStaleAssignmentJob_Run_InvalidBatchSize(t *testing.T) {
	finder := &MockStaleAssignmentFinder{}
	transitioner := &MockAssignmentTransitioner{}
	job := newTestJob(finder, transitioner)
	job.config.BatchSize = 0

	_, err := job.Run(t.Context())

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	finder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestStaleAssignmentJob_Start_RejectsBadSchedule(t *testing.T) {
	job := newTestJob(&MockStaleAssignmentFinder{}, &MockAssignmentTransitioner{})
	job.config.Schedule = "every now and then"

	assert.Error(t, job.Start())
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := NewJobManager(&MockStaleAssignmentFinder{}, &MockAssignmentTransitioner{}, StaleAssignmentConfig{
		Schedule:  "@every 1h",
		After:     10 * time.Minute,
		BatchSize: 10,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
