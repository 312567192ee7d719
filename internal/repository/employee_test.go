package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/members/internal/metrics"
	"github.com/UnknownOlympus/members/internal/models"
	"github.com/UnknownOlympus/members/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
)

const listEmployeesQuery = `SELECT id, name, position, email, phone FROM employees ORDER BY id LIMIT $1 OFFSET $2`

const countEmployeesQuery = `SELECT COUNT(*) FROM employees`

const saveEmployeeQuery = `
		INSERT INTO employees (name, position, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, position, email, phone;
`

const updateEmployeeQuery = `
		UPDATE employees
		SET name = $2, position = $3, email = $4, phone = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, name, position, email, phone;
`

const getEmployeeByIDQuery = `SELECT id, name, position, email, phone FROM employees WHERE id=$1`

const deleteEmployeeQuery = `DELETE FROM employees WHERE id = $1`

var employeeColumns = []string{"id", "name", "position", "email", "phone"}

func newRepo(t *testing.T) (pgxmock.PgxPoolIface, repository.EmployeeRepoIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, repository.NewEmployeeRepository(mock, metrics.NewMetrics(prometheus.NewRegistry()))
}

func testEmployee(id int) models.Employee {
	return models.Employee{
		ID:       id,
		Name:     "Test User",
		Position: "qa",
		Email:    randomail.GenerateRandomEmail(),
		Phone:    "123456789",
	}
}

func TestListEmployees_Success(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)
	first, second := testEmployee(1), testEmployee(2)

	mock.ExpectQuery(regexp.QuoteMeta(listEmployeesQuery)).
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(first.ID, first.Name, first.Position, first.Email, first.Phone).
			AddRow(second.ID, second.Name, second.Position, second.Email, second.Phone))

	employees, err := repo.ListEmployees(context.Background(), 20, 0)

	require.NoError(t, err)
	assert.Equal(t, []models.Employee{first, second}, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_Empty(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(listEmployeesQuery)).
		WithArgs(10, 30).
		WillReturnRows(pgxmock.NewRows(employeeColumns))

	employees, err := repo.ListEmployees(context.Background(), 10, 30)

	require.NoError(t, err)
	assert.NotNil(t, employees)
	assert.Empty(t, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_QueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(listEmployeesQuery)).
		WithArgs(20, 0).
		WillReturnError(assert.AnError)

	_, err := repo.ListEmployees(context.Background(), 20, 0)

	require.EqualError(t, err, "failed to list employees: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountEmployees(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(countEmployeesQuery)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

		total, err := repo.CountEmployees(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 42, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(countEmployeesQuery)).WillReturnError(assert.AnError)

		_, err := repo.CountEmployees(context.Background())

		require.ErrorIs(t, err, assert.AnError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetEmployeeByID_Success(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)
	expEmployee := testEmployee(123)

	mock.ExpectQuery(regexp.QuoteMeta(getEmployeeByIDQuery)).
		WithArgs(expEmployee.ID).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(expEmployee.ID, expEmployee.Name, expEmployee.Position, expEmployee.Email, expEmployee.Phone))

	actualEmployee, err := repo.GetEmployeeByID(context.Background(), expEmployee.ID)

	require.NoError(t, err)
	assert.Equal(t, expEmployee, actualEmployee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeByID_NotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getEmployeeByIDQuery)).
		WithArgs(9999).
		WillReturnError(pgx.ErrNoRows)

	actualEmployee, err := repo.GetEmployeeByID(context.Background(), 9999)

	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	assert.Equal(t, models.Employee{}, actualEmployee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeByID_QueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getEmployeeByIDQuery)).
		WithArgs(123).
		WillReturnError(assert.AnError)

	_, err := repo.GetEmployeeByID(context.Background(), 123)

	require.EqualError(t, err, "failed to get employee by id: "+assert.AnError.Error())
	assert.NotErrorIs(t, err, repository.ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_Success(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)
	expEmployee := testEmployee(7)

	mock.ExpectQuery(regexp.QuoteMeta(saveEmployeeQuery)).
		WithArgs(expEmployee.Name, expEmployee.Position, expEmployee.Email, expEmployee.Phone).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(expEmployee.ID, expEmployee.Name, expEmployee.Position, expEmployee.Email, expEmployee.Phone))

	created, err := repo.SaveEmployee(
		context.Background(), expEmployee.Name, expEmployee.Position, expEmployee.Email, expEmployee.Phone)

	require.NoError(t, err)
	assert.Equal(t, expEmployee, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_QueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(saveEmployeeQuery)).
		WithArgs("Ana", "", "", "").
		WillReturnError(assert.AnError)

	_, err := repo.SaveEmployee(context.Background(), "Ana", "", "", "")

	require.EqualError(t, err, "failed to save employee: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee_Success(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)
	expEmployee := testEmployee(123)

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(expEmployee.ID, expEmployee.Name, expEmployee.Position, expEmployee.Email, expEmployee.Phone).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(expEmployee.ID, expEmployee.Name, expEmployee.Position, expEmployee.Email, expEmployee.Phone))

	updated, err := repo.UpdateEmployee(context.Background(),
		expEmployee.ID, expEmployee.Name, expEmployee.Position, expEmployee.Email, expEmployee.Phone)

	require.NoError(t, err)
	assert.Equal(t, expEmployee, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(9999, "Ghost", "", "", "").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateEmployee(context.Background(), 9999, "Ghost", "", "", "")

	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee_QueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(1, "Ana", "", "", "").
		WillReturnError(assert.AnError)

	_, err := repo.UpdateEmployee(context.Background(), 1, "Ana", "", "", "")

	require.EqualError(t, err, "failed to update employee data: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
			WithArgs(5).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.DeleteEmployee(context.Background(), 5))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
			WithArgs(5).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.DeleteEmployee(context.Background(), 5)

		require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
			WithArgs(5).
			WillReturnError(assert.AnError)

		err := repo.DeleteEmployee(context.Background(), 5)

		require.EqualError(t, err, "failed to delete employee: "+assert.AnError.Error())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
