// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout cancels the request context after timeout. The handler writes into
// a buffer that is copied to the client when it returns in time; otherwise a
// JSON 503 is sent and anything the handler writes later is discarded.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			panicChan := make(chan any, 1)
			tw := newTimeoutWriter()

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicChan:
				// Re-raise on the serving goroutine so Recoverer sees it.
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.flushTo(w)
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				writeJSONError(w, http.StatusServiceUnavailable, "request timeout")
			}
		})
	}
}

// timeoutWriter buffers the handler's response. Its header map is private to
// the handler goroutine until the handler returns.
type timeoutWriter struct {
	h    http.Header
	wbuf bytes.Buffer

	mu          sync.Mutex
	code        int
	wroteHeader bool
	timedOut    bool
}

func newTimeoutWriter() *timeoutWriter {
	return &timeoutWriter{h: make(http.Header)}
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.code = code
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.code = http.StatusOK
	}
	return tw.wbuf.Write(b)
}

// flushTo copies the buffered response to w. Callers hold mu.
func (tw *timeoutWriter) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, vv := range tw.h {
		dst[k] = vv
	}
	code := tw.code
	if !tw.wroteHeader {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	_, _ = w.Write(tw.wbuf.Bytes())
}
