package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/members/internal/lib/logger/sl"
	"github.com/UnknownOlympus/members/internal/repository"
)

// NotFoundMessage is the body of every response about an unknown employee.
const NotFoundMessage = "Employee was not found in this company."

// ErrBadRequest marks request input that could not be interpreted.
var ErrBadRequest = errors.New("bad request")

// writeError is the single place where handler errors become HTTP responses.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	log := a.log.With(slog.String("request_id", RequestIDFromContext(ctx)))

	switch {
	case errors.Is(err, repository.ErrEmployeeNotFound):
		a.metrics.EmployeeNotFound.Inc()
		log.DebugContext(ctx, "Employee not found", "path", r.URL.Path)
		writeText(w, http.StatusNotFound, NotFoundMessage)
	case errors.Is(err, ErrBadRequest):
		log.DebugContext(ctx, "Rejected malformed request", "path", r.URL.Path, sl.Err(err))
		writeText(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
	default:
		log.ErrorContext(ctx, "Request failed", "method", r.Method, "path", r.URL.Path, sl.Err(err))
		writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
