package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DoneEvent terminates every successful stream.
const DoneEvent = "data: [DONE]\n\n"

type sseChunk struct {
	Content string `json:"content"`
}

// SetStreamHeaders prepares a response for server-sent events
func SetStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// WriteSSE drains fragments to the response as server-sent events, flushing
// after every fragment so the caller sees output as it arrives. It returns
// the number of fragments written. A nil error means the stream ended
// cleanly and the [DONE] sentinel was sent; an error after a non-zero count
// means partial output was already flushed and the connection should simply
// be closed.
func WriteSSE(w http.ResponseWriter, fragments <-chan Fragment) (int, error) {
	flusher, _ := w.(http.Flusher)
	sent := 0

	for frag := range fragments {
		if frag.Err != nil {
			return sent, frag.Err
		}

		data, err := json.Marshal(sseChunk{Content: frag.Content})
		if err != nil {
			return sent, fmt.Errorf("failed to encode fragment: %w", err)
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return sent, fmt.Errorf("failed to write fragment: %w", err)
		}
		if flusher != nil {
			flusher.Flush()
		}
		sent++
	}

	if _, err := fmt.Fprint(w, DoneEvent); err != nil {
		return sent, fmt.Errorf("failed to write done event: %w", err)
	}
	if flusher != nil {
		flusher.Flush()
	}

	return sent, nil
}
