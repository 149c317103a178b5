// cmd/web/middleware.go
// HTTP middleware used to wrap the router. Each function takes the next
// handler in the chain and returns a handler that runs before it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type contextKey string

const requestIDContextKey = contextKey("request_id")

// maxRequestIDLength bounds a client-supplied X-Request-ID.
const maxRequestIDLength = 64

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// recoverPanic turns a panic in any downstream handler into a 500 response.
// Without it the panicking goroutine would take the connection down with it
// and the client would see an empty reply.
func (app *applicationDependencies) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The deferred function still runs while the stack unwinds from a panic.
		defer func() {
			if err := recover(); err != nil {
				// Ask net/http to close the connection once this response is sent.
				w.Header().Set("Connection", "close")
				// recover() returns any; normalise it to an error for the log line.
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// validRequestID reports whether a client-supplied id is short and made of
// characters that are safe to echo in a header and a log line.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}

// logRequest tags the request with an X-Request-ID and writes one
// access-log line once it completes. A well-formed id sent by the client
// is reused; anything else is replaced by a fresh UUID.
func (app *applicationDependencies) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		// The id goes back to the client and into the context so that
		// handlers and error logs can attach it.
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey, requestID))

		// Handlers that never call WriteHeader answer 200.
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		app.logger.Info("request completed",
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// client holds a per-IP rate limiter and the time it was last seen.
// lastSeen is what the cleanup goroutine uses to evict idle addresses.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimit implements per-IP token-bucket rate limiting with
// golang.org/x/time/rate. Each address gets its own bucket refilled at
// LIMITER_RPS tokens per second with room for LIMITER_BURST tokens.
// A background goroutine drops entries not seen for three minutes.
// When the limiter is disabled the router is returned unwrapped.
func (app *applicationDependencies) rateLimit(next http.Handler) http.Handler {
	if !app.config.Limiter.Enabled {
		return next
	}

	// clients maps an IP address to its limiter; mu guards every access.
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	// Sweep stale addresses once a minute so the map stays bounded.
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RemoteAddr is "host:port"; only the host identifies the client.
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		mu.Lock()
		// First request from this address: give it a full bucket.
		if _, found := clients[ip]; !found {
			clients[ip] = &client{
				limiter: rate.NewLimiter(rate.Limit(app.config.Limiter.RPS), app.config.Limiter.Burst),
			}
		}
		clients[ip].lastSeen = time.Now()

		// Allow takes one token and reports false when the bucket is empty.
		if !clients[ip].limiter.Allow() {
			mu.Unlock()
			app.rateLimitExceededResponse(w, r)
			return
		}
		mu.Unlock()

		next.ServeHTTP(w, r)
	})
}
