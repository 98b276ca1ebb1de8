package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamWriter sends server-sent events on an open stream.
type StreamWriter interface {
	// Send writes one event. Multi-line data is split into several data
	// lines. An event type with a line break is refused with
	// ErrInvalidEventType; any other error means the client is gone.
	Send(eventType, data string) error
}

// StreamFunc runs for the lifetime of a stream. r.Context() is cancelled when
// the client disconnects.
type StreamFunc func(r *http.Request, w StreamWriter) error

type streamResponse struct {
	fn StreamFunc
}

func (s streamResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if _, ok := w.(http.Flusher); !ok {
		return ErrStreamingUnsupported
	}
	sse := datastar.NewSSE(w, r)
	return s.fn(r, &sseWriter{sse: sse})
}

// Stream opens a text/event-stream response and hands it to fn.
//
//	return handler.Stream(func(r *http.Request, w handler.StreamWriter) error {
//		return w.Send("message", "hello")
//	})
func Stream(fn StreamFunc) Response {
	return streamResponse{fn: fn}
}

type sseWriter struct {
	sse *datastar.ServerSentEventGenerator
}

func (w *sseWriter) Send(eventType, data string) error {
	if strings.ContainsAny(eventType, "\r\n") {
		return ErrInvalidEventType
	}
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	return w.sse.Send(datastar.EventType(eventType), lines)
}
