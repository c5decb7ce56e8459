package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainHeaders(t *testing.T, req *Request) Event {
	t.Helper()
	select {
	case ev := <-req.Events:
		require.Equal(t, EventHeaders, ev.Kind)
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for headers event")
		return Event{}
	}
}

func TestHTTPOpenerDeliversHeadersThenChunksThenEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "1")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello "))
		w.(http.Flusher).Flush()
		w.Write([]byte("world"))
	}))
	defer srv.Close()

	opener := &HTTPOpener{}
	req, err := opener.Open(srv.URL, Credentials{})
	require.NoError(t, err)

	headers := drainHeaders(t, req)
	assert.Equal(t, http.StatusOK, headers.StatusCode)
	assert.Equal(t, "1", headers.Header.Get("X-Test"))

	var body []byte
	for {
		req.Next()
		select {
		case ev := <-req.Events:
			if ev.Kind == EventEnd {
				goto done
			}
			require.Equal(t, EventChunk, ev.Kind)
			body = append(body, ev.Data...)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
done:
	assert.Equal(t, "hello world", string(body))
}

func TestHTTPOpenerReportsNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad creds"}`))
	}))
	defer srv.Close()

	opener := &HTTPOpener{}
	req, err := opener.Open(srv.URL, Credentials{})
	require.NoError(t, err)

	headers := drainHeaders(t, req)
	assert.Equal(t, http.StatusUnauthorized, headers.StatusCode)
}

func TestHTTPOpenerCloseStopsPumpWithoutError(t *testing.T) {
	blockCh := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-blockCh
	}))
	defer srv.Close()
	defer close(blockCh)

	opener := &HTTPOpener{}
	req, err := opener.Open(srv.URL, Credentials{})
	require.NoError(t, err)
	drainHeaders(t, req)

	req.Next()
	require.NoError(t, req.Close())

	select {
	case _, ok := <-req.Events:
		assert.False(t, ok, "events channel should close without emitting an error")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for events channel to close")
	}
}

func TestHTTPOpenerPropagatesDoError(t *testing.T) {
	opener := &HTTPOpener{}
	_, err := opener.Open("http://127.0.0.1:0", Credentials{})
	assert.Error(t, err)
}

var _ io.Closer = (*Request)(nil)
