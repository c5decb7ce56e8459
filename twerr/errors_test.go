package twerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	for _, tc := range []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing option",
			err:  MissingOption{Name: "user"},
			want: `itweet: missing required option "user"`,
		},
		{
			name: "bad return",
			err:  BadReturn{Callback: "HandleStatus", Value: 42},
			want: "itweet: handler.HandleStatus returned a bad value: 42",
		},
		{
			name: "invalid json",
			err:  NewInvalidJSON([]byte(`{"a":`), cause),
			want: `itweet: invalid JSON record "{\"a\":": decode record: boom`,
		},
		{
			name: "transport open error",
			err:  NewTransportOpenError("filter", cause),
			want: "itweet: opening filter stream failed: open stream: boom",
		},
		{
			name: "transport error",
			err:  NewTransportError(cause),
			want: "itweet: transport error: stream transport: boom",
		},
		{
			name: "user stop",
			err:  UserStop{Reason: "shutdown"},
			want: "itweet: handler stopped the session: shutdown",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestInvalidJSONUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewInvalidJSON([]byte("{"), cause)
	assert.ErrorIs(t, err, cause)
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransportError(cause)
	assert.ErrorIs(t, err, cause)
}
