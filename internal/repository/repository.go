package repository

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/members/internal/metrics"
	"github.com/UnknownOlympus/members/internal/models"
)

// ErrEmployeeNotFound is returned when a lookup by identifier matches no stored employee.
var ErrEmployeeNotFound = errors.New("employee not found")

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context, limit, offset int) ([]models.Employee, error)
	CountEmployees(ctx context.Context) (int, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	SaveEmployee(ctx context.Context, name, position, email, phone string) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, name, position, email, phone string) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) error
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}

// observe records the duration of a query started at startTime.
func (r *Repository) observe(queryType string, startTime time.Time) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}
