package commands_test

import (
	"errors"
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 8, 1, 21, 0, 0, 0, time.UTC)

func onlinePartner(t *testing.T) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(kernel.NewUUID(), "Alice")
	require.NoError(t, err)
	p.SetAvailability(true, true)
	return p
}

func createdOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		money(t, "42"), kernel.ZeroMoney(), "", placedAt)
	require.NoError(t, err)
	return o
}

// assignedPair returns an order in assigned state and its assignment moved to status.
func assignedPair(t *testing.T, p *partner.Partner, status assignment.Status) (*order.Order, *assignment.Assignment) {
	t.Helper()
	o := createdOrder(t)
	require.NoError(t, o.Assign(p.ID()))

	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), p.ID(), money(t, "3.50"), "", t0)
	require.NoError(t, err)

	at := t0
	for _, next := range []assignment.Status{assignment.Accepted, assignment.PickedUp, assignment.Delivered} {
		if a.Status() == status {
			break
		}
		at = at.Add(time.Minute)
		require.NoError(t, a.Transition(next, at, ""))
	}
	require.Equal(t, status, a.Status())
	return o, a
}

func TestCreateAssignmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newDispatchFixture()
	p := onlinePartner(t)
	o := createdOrder(t)
	assignmentID := kernel.NewUUID()

	cmd, err := commands.NewCreateAssignmentCommand(assignmentID, o.ID(), p.ID(), money(t, "4.99"), "gate code 42", t0)
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil),
		f.partners.On("Get", ctx, p.ID()).Return(p, nil),
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil),
		f.assignments.On("Add", ctx, mock.MatchedBy(func(a *assignment.Assignment) bool {
			return a.ID().IsEqual(assignmentID) &&
				a.Status() == assignment.Assigned &&
				a.Timeline().AssignedAt.Equal(t0) &&
				a.DeliveryFee().String() == "4.99" &&
				a.Notes() == "gate code 42"
		})).Return(nil),
		f.orders.On("Update", ctx, o).Return(nil),
		f.uow.On("Commit", ctx).Return(nil),
		f.uow.On("Rollback", ctx).Return(nil),
	)

	err = commands.NewCreateAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, o.Status())
	assert.True(t, o.Partner().IsEqual(p.ID()))
	f.assertExpectations(t)
}

func TestCreateAssignmentCommandHandler_Handle_PartnerUnavailable(t *testing.T) {
	tests := []struct {
		name           string
		online, active bool
	}{
		{"offline", false, true},
		{"inactive", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newDispatchFixture()
			p := onlinePartner(t)
			p.SetAvailability(tt.online, tt.active)

			cmd, err := commands.NewCreateAssignmentCommand(kernel.NewUUID(), kernel.NewUUID(), p.ID(), money(t, "1"), "", t0)
			require.NoError(t, err)

			f.uow.On("Begin", ctx).Return(nil)
			f.partners.On("Get", ctx, p.ID()).Return(p, nil)
			f.uow.On("Rollback", ctx).Return(nil)

			err = commands.NewCreateAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

			require.ErrorIs(t, err, partner.ErrPartnerUnavailable)
			f.assignments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestCreateAssignmentCommandHandler_Handle_OrderAlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	f := newDispatchFixture()
	p := onlinePartner(t)
	o, _ := assignedPair(t, p, assignment.Assigned)

	cmd, err := commands.NewCreateAssignmentCommand(kernel.NewUUID(), o.ID(), p.ID(), money(t, "1"), "", t0)
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil)
	f.partners.On("Get", ctx, p.ID()).Return(p, nil)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil)
	f.uow.On("Rollback", ctx).Return(nil)

	err = commands.NewCreateAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderNotAssignable)
	f.assertExpectations(t)
}

func TestTransitionAssignmentCommandHandler_Handle_Accept(t *testing.T) {
	ctx := t.Context()
	f := newDispatchFixture()
	p := onlinePartner(t)
	_, a := assignedPair(t, p, assignment.Assigned)

	cmd, err := commands.NewTransitionAssignmentCommand(a.ID(), assignment.Accepted, t0.Add(time.Second), "")
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil),
		f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil),
		f.assignments.On("Update", ctx, a).Return(nil),
		f.uow.On("Commit", ctx).Return(nil),
		f.uow.On("Rollback", ctx).Return(nil),
	)

	err = commands.NewTransitionAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Accepted, a.Status())
	f.partners.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestTransitionAssignmentCommandHandler_Handle_StoresMicrosecondTimestamps(t *testing.T) {
	ctx := t.Context()
	f := newDispatchFixture()
	p := onlinePartner(t)
	_, a := assignedPair(t, p, assignment.Assigned)
	reported := t0.Add(time.Second + 1500*time.Nanosecond)

	cmd, err := commands.NewTransitionAssignmentCommand(a.ID(), assignment.Accepted, reported, "")
	require.NoError(t, err)
	assert.Equal(t, t0.Add(time.Second+time.Microsecond), cmd.At())

	f.uow.On("Begin", ctx).Return(nil)
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil)
	f.assignments.On("Update", ctx, a).Return(nil)
	f.uow.On("Commit", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil)

	err = commands.NewTransitionAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, a.Timeline().AcceptedAt)
	assert.Equal(t, cmd.At(), *a.Timeline().AcceptedAt)
	assert.Zero(t, a.Timeline().AcceptedAt.Nanosecond()%int(time.Microsecond))
	f.assertExpectations(t)
}

func TestNewAssignmentCommands_TruncateToStoredPrecision(t *testing.T) {
	reported := t0.Add(999 * time.Nanosecond)

	create, err := commands.NewCreateAssignmentCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), money(t, "1"), "", reported)
	require.NoError(t, err)
	assert.Equal(t, t0, create.AssignedAt())

	transition, err := commands.NewTransitionAssignmentCommand(kernel.NewUUID(), assignment.Accepted, reported, "")
	require.NoError(t, err)
	assert.Equal(t, t0, transition.At())
}

func TestTransitionAssignmentCommandHandler_Handle_DeliveredCountsOnce(t *testing.T) {
	ctx := t.Context()
	f := newDispatchFixture()
	p := onlinePartner(t)
	o, a := assignedPair(t, p, assignment.PickedUp)

	cmd, err := commands.NewTransitionAssignmentCommand(a.ID(), assignment.Delivered, t0.Add(10*time.Minute), "")
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil),
		f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil),
		f.partners.On("GetForUpdate", ctx, p.ID()).Return(p, nil),
		f.partners.On("Update", ctx, p).Return(nil).Once(),
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil),
		f.orders.On("Update", ctx, o).Return(nil),
		f.assignments.On("Update", ctx, a).Return(nil),
		f.uow.On("Commit", ctx).Return(nil),
		f.uow.On("Rollback", ctx).Return(nil),
	)

	err = commands.NewTransitionAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalDeliveries())
	assert.Equal(t, order.Completed, o.Status())
	f.assertExpectations(t)
}

func TestTransitionAssignmentCommandHandler_Handle_CancelReleasesOrder(t *testing.T) {
	ctx := t.Context()
	f := newDispatchFixture()
	p := onlinePartner(t)
	o, a := assignedPair(t, p, assignment.PickedUp)

	cmd, err := commands.NewTransitionAssignmentCommand(a.ID(), assignment.Cancelled, t0.Add(5*time.Minute), "bike broke")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil)
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil)
	f.orders.On("Update", ctx, o).Return(nil)
	f.assignments.On("Update", ctx, a).Return(nil)
	f.uow.On("Commit", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil)

	err = commands.NewTransitionAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "bike broke", a.CancellationReason())
	assert.Equal(t, order.Created, o.Status())
	assert.Nil(t, o.Partner())
	assert.Equal(t, 0, p.TotalDeliveries())
	f.assertExpectations(t)
}

func TestTransitionAssignmentCommandHandler_Handle_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		from    assignment.Status
		target  assignment.Status
		at      time.Time
		reason  string
		wantErr error
	}{
		{"skip accepted", assignment.Assigned, assignment.PickedUp, t0.Add(time.Hour), "", assignment.ErrIllegalTransition},
		{"leave delivered", assignment.Delivered, assignment.Cancelled, t0.Add(time.Hour), "late", assignment.ErrIllegalTransition},
		{"clock skew", assignment.Accepted, assignment.PickedUp, t0.Add(30 * time.Second), "", assignment.ErrNonMonotonicTimestamp},
		{"cancel without reason", assignment.PickedUp, assignment.Cancelled, t0.Add(time.Hour), "", errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newDispatchFixture()
			_, a := assignedPair(t, onlinePartner(t), tt.from)

			cmd, err := commands.NewTransitionAssignmentCommand(a.ID(), tt.target, tt.at, tt.reason)
			require.NoError(t, err)

			f.uow.On("Begin", ctx).Return(nil)
			f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil)
			f.uow.On("Rollback", ctx).Return(nil)

			err = commands.NewTransitionAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.from, a.Status())
			f.assignments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestTransitionAssignmentCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newDispatchFixture()
	id := kernel.NewUUID()

	cmd, err := commands.NewTransitionAssignmentCommand(id, assignment.Accepted, t0, "")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil)
	f.assignments.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("assignment", id))
	f.uow.On("Rollback", ctx).Return(nil)

	err = commands.NewTransitionAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
}

func TestNewTransitionAssignmentCommand_Invalid(t *testing.T) {
	_, err := commands.NewTransitionAssignmentCommand(kernel.NewUUID(), assignment.Unknown, time.Time{}, "")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRecordTipCommandHandler_Handle(t *testing.T) {
	t.Run("adds tip after pickup", func(t *testing.T) {
		ctx := t.Context()
		f := newDispatchFixture()
		_, a := assignedPair(t, onlinePartner(t), assignment.PickedUp)
		require.NoError(t, a.RecordTip(money(t, "1.50")))

		cmd, err := commands.NewRecordTipCommand(a.ID(), money(t, "2"))
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil)
		f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil)
		f.assignments.On("Update", ctx, a).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.uow.On("Rollback", ctx).Return(nil)

		tips, err := commands.NewRecordTipCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "3.50", tips.String())
		f.assertExpectations(t)
	})

	t.Run("rejects tip before pickup", func(t *testing.T) {
		ctx := t.Context()
		f := newDispatchFixture()
		_, a := assignedPair(t, onlinePartner(t), assignment.Accepted)

		cmd, err := commands.NewRecordTipCommand(a.ID(), money(t, "2"))
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil)
		f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil)
		f.uow.On("Rollback", ctx).Return(nil)

		_, err = commands.NewRecordTipCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, assignment.ErrTipNotAllowed)
		f.assertExpectations(t)
	})
}

func TestRateDeliveryCommandHandler_Handle(t *testing.T) {
	t.Run("rates assignment and partner", func(t *testing.T) {
		ctx := t.Context()
		f := newDispatchFixture()
		p := onlinePartner(t)
		_, a := assignedPair(t, p, assignment.Delivered)

		cmd, err := commands.NewRateDeliveryCommand(a.ID(), 4)
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil)
		f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil)
		f.partners.On("GetForUpdate", ctx, p.ID()).Return(p, nil)
		f.assignments.On("Update", ctx, a).Return(nil)
		f.partners.On("Update", ctx, p).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.uow.On("Rollback", ctx).Return(nil)

		err = commands.NewRateDeliveryCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 4, *a.Rating())
		assert.Equal(t, "4", p.Rating().String())
		assert.Equal(t, 1, p.RatingsCount())
		f.assertExpectations(t)
	})

	t.Run("second rating is refused", func(t *testing.T) {
		ctx := t.Context()
		f := newDispatchFixture()
		_, a := assignedPair(t, onlinePartner(t), assignment.Delivered)
		require.NoError(t, a.Rate(5))

		cmd, err := commands.NewRateDeliveryCommand(a.ID(), 1)
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil)
		f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil)
		f.uow.On("Rollback", ctx).Return(nil)

		err = commands.NewRateDeliveryCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, assignment.ErrAlreadyRated)
		f.assertExpectations(t)
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		ctx := t.Context()
		f := newDispatchFixture()
		id := kernel.NewUUID()
		storeErr := errs.NewUnavailableError("load assignment", errors.New("timeout"))

		cmd, err := commands.NewRateDeliveryCommand(id, 3)
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil)
		f.assignments.On("GetForUpdate", ctx, id).Return(nil, storeErr)
		f.uow.On("Rollback", ctx).Return(nil)

		err = commands.NewRateDeliveryCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnavailable)
		f.assertExpectations(t)
	})
}
