package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request id stored by the request id middleware, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (a *API) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// withObservability logs every request once and records it in the HTTP metrics.
// The route label is the matched ServeMux pattern, so ids never become label values.
func (a *API) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snoop := httpsnoop.CaptureMetrics(next, w, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}

		a.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(snoop.Code)).Inc()
		a.metrics.HTTPRequestDuration.WithLabelValues(route).Observe(snoop.Duration.Seconds())

		a.log.InfoContext(r.Context(), "Request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", snoop.Code),
			slog.Duration("duration", snoop.Duration),
			slog.String("request_id", RequestIDFromContext(r.Context())),
		)
	})
}
