package order_test

import (
	"fmt"
	"testing"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Created))
		assert.Equal(t, 2, int(order.Assigned))
		assert.Equal(t, 3, int(order.Completed))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Created, order.Assigned, order.Completed} {
			t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(4), order.Status(100)} {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_StringAndParse(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Created, "created"},
		{order.Assigned, "assigned"},
		{order.Completed, "completed"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())

			parsed, err := order.ParseStatus(tc.expected)
			require.NoError(t, err)
			assert.Equal(t, tc.status, parsed)
		})
	}

	assert.Equal(t, "unknown", order.Status(100).String())
	_, err := order.ParseStatus("unknown")
	require.Error(t, err)
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("assign only from created", func(t *testing.T) {
		next, err := order.Created.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, next)

		for _, from := range []order.Status{order.Unknown, order.Assigned, order.Completed} {
			next, err := from.Assign()
			require.ErrorIs(t, err, order.ErrOrderNotAssignable)
			assert.Equal(t, order.Status(0), next)
		}
	})

	t.Run("complete only from assigned", func(t *testing.T) {
		next, err := order.Assigned.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.Completed, next)

		for _, from := range []order.Status{order.Unknown, order.Created, order.Completed} {
			_, err := from.Complete()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "is not a valid status to complete")
		}
	})

	t.Run("release only from assigned", func(t *testing.T) {
		next, err := order.Assigned.Release()
		require.NoError(t, err)
		assert.Equal(t, order.Created, next)

		for _, from := range []order.Status{order.Unknown, order.Created, order.Completed} {
			_, err := from.Release()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_ValidateCanHavePartner(t *testing.T) {
	require.NoError(t, order.Created.ValidateCanHavePartner(false))
	require.NoError(t, order.Assigned.ValidateCanHavePartner(true))
	require.NoError(t, order.Completed.ValidateCanHavePartner(true))

	require.Error(t, order.Created.ValidateCanHavePartner(true))
	require.Error(t, order.Assigned.ValidateCanHavePartner(false))
	require.Error(t, order.Completed.ValidateCanHavePartner(false))
}
