// Package api exposes stored employees as the REST collection resource /members.
package api

import (
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/members/internal/metrics"
	"github.com/UnknownOlympus/members/internal/repository"
)

// CollectionPath is the public path segment of the employee collection.
// It deliberately differs from the entity name, so /employees does not resolve.
const CollectionPath = "members"

type API struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

// NewRouter binds the employee operations to the members collection and wraps them
// with request id, logging and metrics middleware.
func NewRouter(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) http.Handler {
	api := &API{
		log:     log.With(slog.String("division", CollectionPath)),
		repo:    repo,
		metrics: metrics,
	}

	collection := "/" + CollectionPath
	item := collection + "/{id}"

	mux := http.NewServeMux()
	mux.Handle(http.MethodGet+" "+collection, api.handle(api.listMembers))
	mux.Handle(http.MethodPost+" "+collection, api.handle(api.createMember))
	mux.Handle(http.MethodGet+" "+item, api.handle(api.getMember))
	mux.Handle(http.MethodPut+" "+item, api.handle(api.replaceMember))
	mux.Handle(http.MethodPatch+" "+item, api.handle(api.patchMember))
	mux.Handle(http.MethodDelete+" "+item, api.handle(api.deleteMember))

	return api.withRequestID(api.withObservability(mux))
}

// handlerFunc is a members operation. A returned error is rendered by writeError.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (a *API) handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			a.writeError(w, r, err)
		}
	})
}
