package server

import (
	"fmt"
	"net/http"
	"sync"
)

// Feed fans encoded JPEG frames out to stream clients. Each client holds
// at most one pending frame; a slow client skips frames instead of
// delaying the others.
type Feed struct {
	mu     sync.Mutex
	subs   map[chan []byte]struct{}
	latest []byte
	closed bool
}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan []byte]struct{})}
}

// Publish hands frame to every subscriber. frame must not be modified
// afterwards.
func (f *Feed) Publish(frame []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.latest = frame
	for ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- frame:
		default:
		}
	}
}

// Subscribe registers a client. The most recent frame, if any, is
// delivered first. The returned func unsubscribes.
func (f *Feed) Subscribe() (<-chan []byte, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan []byte, 1)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	if f.latest != nil {
		ch <- f.latest
	}
	f.subs[ch] = struct{}{}

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
	}
}

// Clients returns the number of subscribers.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close ends every subscription.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
}

// StreamHandler serves Feed frames as an MJPEG stream.
type StreamHandler struct {
	feed *Feed
}

// NewStreamHandler creates a new StreamHandler over feed.
func NewStreamHandler(feed *Feed) *StreamHandler {
	return &StreamHandler{feed: feed}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frames, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		case buf, ok := <-frames:
			if !ok {
				return
			}

			fmt.Fprintf(w, "--frame\r\n")
			fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
			fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(buf))
			if _, err := w.Write(buf); err != nil {
				return
			}
			fmt.Fprintf(w, "\r\n")

			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}
