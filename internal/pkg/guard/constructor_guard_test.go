package guard_test

import (
	"errors"
	"testing"

	"foodorder/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("Coupon must be created via NewCoupon")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errTipNotConstructed := errors.New("tip command must be created via its constructor")

	type tipCommand struct {
		amountCents int
		guard       guard.ConstructorGuard
	}

	newTipCommand := func(amountCents int) (tipCommand, error) {
		if amountCents < 0 {
			return tipCommand{}, errors.New("tip cannot be negative")
		}
		return tipCommand{amountCents: amountCents, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newTipCommand(250)

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errTipNotConstructed))
		assert.Equal(t, 250, cmd.amountCents)
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := tipCommand{amountCents: 250}

		assert.Equal(t, errTipNotConstructed, cmd.guard.Validate(errTipNotConstructed))
	})

	t.Run("copies_keep_the_mark", func(t *testing.T) {
		cmd, _ := newTipCommand(100)
		cp := cmd

		require.NoError(t, cp.guard.Validate(errTipNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	for range b.N {
		_ = g.Validate(err)
	}
}
