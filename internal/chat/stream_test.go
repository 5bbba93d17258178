package chat

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSSECleanStream(t *testing.T) {
	fragments := make(chan Fragment, 4)
	fragments <- Fragment{Content: "Grug "}
	fragments <- Fragment{Content: "say "}
	fragments <- Fragment{Content: "hello."}
	close(fragments)

	w := httptest.NewRecorder()
	sent, err := WriteSSE(w, fragments)

	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	body := w.Body.String()
	assert.Contains(t, body, `data: {"content":"Grug "}`+"\n\n")
	assert.Contains(t, body, `data: {"content":"hello."}`+"\n\n")
	assert.True(t, strings.HasSuffix(body, DoneEvent))
}

func TestWriteSSEEmptyStream(t *testing.T) {
	fragments := make(chan Fragment)
	close(fragments)

	w := httptest.NewRecorder()
	sent, err := WriteSSE(w, fragments)

	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, DoneEvent, w.Body.String())
}

func TestWriteSSEMidStreamFailure(t *testing.T) {
	upstreamErr := errors.New("upstream fell over")

	fragments := make(chan Fragment, 3)
	fragments <- Fragment{Content: "partial "}
	fragments <- Fragment{Err: upstreamErr}
	close(fragments)

	w := httptest.NewRecorder()
	sent, err := WriteSSE(w, fragments)

	// Partial output stays flushed; no [DONE] after a failure
	require.Error(t, err)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Equal(t, 1, sent)
	assert.Contains(t, w.Body.String(), "partial")
	assert.NotContains(t, w.Body.String(), "[DONE]")
}

func TestSetStreamHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SetStreamHeaders(w)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
}

func TestClientUnconfigured(t *testing.T) {
	client := NewClient("", "test-model", 8)

	assert.False(t, client.Configured())

	_, err := client.StreamCompletion(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
