package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mytime"
)

func TestStateMachine(t *testing.T) {
	t.Run("Happy path is allowed", func(t *testing.T) {
		path := []State{StateTokenPending, StateTokenReady, StateLocaleLoading, StateLocaleReady, StateSubmitting, StateCaptured}

		ctx := CheckoutContext{State: StateIdle}
		for _, next := range path {
			assert.NoError(t, ctx.transitionTo(next, mytime.ExampleTime), "from %s to %s", ctx.State, next)
		}
		assert.True(t, ctx.State.IsFinal())
	})

	t.Run("Failed is reachable from any non-terminal state", func(t *testing.T) {
		for _, from := range []State{StateTokenPending, StateTokenReady, StateLocaleLoading, StateLocaleReady, StateSubmitting} {
			assert.True(t, from.CanTransitionTo(StateFailed), "from %s", from)
		}
	})

	t.Run("Stale cart falls back from submitting to token pending", func(t *testing.T) {
		assert.True(t, StateSubmitting.CanTransitionTo(StateTokenPending))
	})

	t.Run("Terminal states allow no transitions", func(t *testing.T) {
		for _, target := range []State{StateIdle, StateTokenPending, StateSubmitting, StateFailed} {
			assert.False(t, StateCaptured.CanTransitionTo(target))
			assert.False(t, StateFailed.CanTransitionTo(target))
		}
	})

	t.Run("Illegal transition is reported as conflict", func(t *testing.T) {
		ctx := CheckoutContext{State: StateIdle}

		err := ctx.transitionTo(StateSubmitting, mytime.ExampleTime)

		assert.Error(t, err)
		assert.True(t, myerrors.IsConflict(err))
		assert.Equal(t, StateIdle, ctx.State)
	})

	t.Run("Country change re-enters locale loading", func(t *testing.T) {
		assert.True(t, StateLocaleReady.CanTransitionTo(StateLocaleLoading))
		assert.True(t, StateLocaleLoading.CanTransitionTo(StateLocaleLoading))
	})
}
