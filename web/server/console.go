package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	source      string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger tagged with a source name
func NewWebLogger(source string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		source:      source,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Print(message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     messageLevel(message),
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// messageLevel infers the console level from the conventional message prefix
func messageLevel(message string) string {
	switch {
	case strings.HasPrefix(message, "Error:"):
		return "error"
	case strings.HasPrefix(message, "Warning:"):
		return "warning"
	default:
		return "info"
	}
}

// consoleHub copies every console message to each subscribed event stream.
// A slow subscriber loses messages rather than stalling the others.
type consoleHub struct {
	mu          sync.Mutex
	subscribers map[chan ConsoleMessage]struct{}
}

func newConsoleHub() *consoleHub {
	return &consoleHub{subscribers: make(map[chan ConsoleMessage]struct{})}
}

func (h *consoleHub) subscribe() chan ConsoleMessage {
	ch := make(chan ConsoleMessage, 50)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *consoleHub) unsubscribe(ch chan ConsoleMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

func (h *consoleHub) broadcast(msg ConsoleMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// run forwards messages from the logger channel until ctx is done
func (h *consoleHub) run(ctx context.Context, in <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-in:
			h.broadcast(msg)
		case <-ctx.Done():
			return
		}
	}
}
