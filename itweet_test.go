package itweet

import (
	"testing"
	"time"

	"github.com/alepharchives/itweet/dispatch"
	"github.com/alepharchives/itweet/internal/teststub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRequiresUserAndPassword(t *testing.T) {
	handler := &teststub.Handler{}

	_, err := Start(handler, nil, Options{{Name: "password", Value: "secret"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")

	_, err = Start(handler, nil, Options{{Name: "user", Value: "bob"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestStartAndSampleEndToEnd(t *testing.T) {
	opener := teststub.NewOpener(teststub.Script{
		StatusCode: 200,
		Chunks:     []teststub.Chunk{{Data: []byte(`{"text":"hi"}` + "\r")}},
	})
	handler := &teststub.Handler{}

	client, err := startWithOpener(t, handler, opener)
	require.NoError(t, err)

	require.NoError(t, client.Sample(nil))

	select {
	case <-client.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client session did not terminate in time")
	}
	assert.NoError(t, client.Err())

	name, _, ok := client.CurrentMethod()
	assert.True(t, ok)
	assert.Equal(t, "sample", name)
}

func TestClientCall(t *testing.T) {
	opener := teststub.NewOpener(teststub.Script{StatusCode: 200})
	handler := &teststub.Handler{
		CallResults: []dispatch.CallResult{dispatch.CallOK("pong", "next")},
	}
	client, err := startWithOpener(t, handler, opener)
	require.NoError(t, err)

	reply, err := client.Call("ping", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "pong", reply)

	require.NoError(t, client.Stop(nil))
}

// startWithOpener exercises the facade against a fake transport, the
// same way cmd/itweet-stream's -fake flag does.
func startWithOpener(t *testing.T, handler Handler, opener *teststub.Opener) (*Client, error) {
	t.Helper()
	return Start(handler, nil, Options{
		{Name: "user", Value: "bob"},
		{Name: "password", Value: "secret"},
		{Name: "opener", Value: opener},
	})
}
