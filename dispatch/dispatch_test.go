package dispatch

import (
	"testing"

	"github.com/alepharchives/itweet/twerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeNormalContinue(t *testing.T) {
	result, err := Invoke("HandleStatus", func() Result {
		return Continue("next-state")
	})
	require.NoError(t, err)
	assert.False(t, result.IsStop())
	assert.Equal(t, "next-state", result.State())
}

func TestInvokeNormalStop(t *testing.T) {
	result, err := Invoke("HandleStatus", func() Result {
		return Stop("shutdown", "final-state")
	})
	require.NoError(t, err)
	assert.True(t, result.IsStop())
	assert.Equal(t, "shutdown", result.Reason())
	assert.Equal(t, "final-state", result.State())
}

func TestInvokePanicWithResultIsEquivalentToReturn(t *testing.T) {
	result, err := Invoke("HandleStatus", func() Result {
		panic(Stop("panicked-shutdown", "panicked-state"))
	})
	require.NoError(t, err)
	assert.True(t, result.IsStop())
	assert.Equal(t, "panicked-shutdown", result.Reason())
}

func TestInvokePanicWithOtherValueIsBadReturn(t *testing.T) {
	_, err := Invoke("HandleStatus", func() Result {
		panic("something else entirely")
	})
	require.Error(t, err)
	var bad twerr.BadReturn
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "HandleStatus", bad.Callback)
	assert.Equal(t, "something else entirely", bad.Value)
}

func TestInvokeDoesNotOverlap(t *testing.T) {
	// Invoke is a synchronous call; sequential invocations observe each
	// other's state updates in order, matching the "no callback
	// overlaps another" guarantee.
	state := 0
	for i := 0; i < 5; i++ {
		result, err := Invoke("HandleStatus", func() Result {
			state++
			return Continue(state)
		})
		require.NoError(t, err)
		assert.Equal(t, state, result.State())
	}
	assert.Equal(t, 5, state)
}

func TestInvokeInitResult(t *testing.T) {
	result, err := Invoke("Init", func() InitResult {
		return InitOK("seed-state")
	})
	require.NoError(t, err)
	assert.False(t, result.IsIgnore())
	assert.False(t, result.IsStop())
	assert.Equal(t, "seed-state", result.State())

	result, err = Invoke("Init", func() InitResult {
		return InitIgnore()
	})
	require.NoError(t, err)
	assert.True(t, result.IsIgnore())
}

func TestInvokeCallResult(t *testing.T) {
	result, err := Invoke("HandleCall", func() CallResult {
		return CallOK("reply", "state")
	})
	require.NoError(t, err)
	assert.False(t, result.IsStop())
	assert.Equal(t, "reply", result.Reply())

	result, err = Invoke("HandleCall", func() CallResult {
		return CallStop("bye", "reply", "state")
	})
	require.NoError(t, err)
	assert.True(t, result.IsStop())
	assert.Equal(t, "bye", result.Reason())
	assert.Equal(t, "reply", result.Reply())
}
