package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/members/internal/lib/logger/sl"
	"github.com/UnknownOlympus/members/internal/models"
	"github.com/UnknownOlympus/members/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 1000
	maxBodyBytes    = 1 << 20
)

// PageInfo describes one page of the collection.
type PageInfo struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// CollectionResponse is the body of GET /members.
type CollectionResponse struct {
	Embedded map[string][]models.Employee `json:"_embedded"`
	Page     PageInfo                     `json:"page"`
}

// employeePatch holds the attributes present in a PATCH body.
type employeePatch struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) error {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		return err
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil {
		return err
	}
	if page < 0 || size < 1 {
		return fmt.Errorf("%w: page must be >= 0 and size >= 1", ErrBadRequest)
	}
	size = min(size, maxPageSize)
	if page > math.MaxInt/size {
		return fmt.Errorf("%w: page %d is out of range", ErrBadRequest, page)
	}

	employees, err := a.repo.ListEmployees(r.Context(), size, page*size)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	total, err := a.repo.CountEmployees(r.Context())
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}

	a.writeJSON(w, r, http.StatusOK, CollectionResponse{
		Embedded: map[string][]models.Employee{CollectionPath: employees},
		Page: PageInfo{
			Size:          size,
			TotalElements: total,
			TotalPages:    (total + size - 1) / size,
			Number:        page,
		},
	})
	return nil
}

func (a *API) getMember(w http.ResponseWriter, r *http.Request) error {
	identifier, err := pathID(r)
	if err != nil {
		return err
	}

	employee, err := a.repo.GetEmployeeByID(r.Context(), identifier)
	if err != nil {
		return err
	}

	a.writeJSON(w, r, http.StatusOK, employee)
	return nil
}

func (a *API) createMember(w http.ResponseWriter, r *http.Request) error {
	var body models.Employee
	if err := decodeBody(w, r, &body); err != nil {
		return err
	}

	created, err := a.repo.SaveEmployee(r.Context(), body.Name, body.Position, body.Email, body.Phone)
	if err != nil {
		return err
	}

	w.Header().Set("Location", fmt.Sprintf("/%s/%d", CollectionPath, created.ID))
	a.writeJSON(w, r, http.StatusCreated, created)
	return nil
}

func (a *API) replaceMember(w http.ResponseWriter, r *http.Request) error {
	identifier, err := pathID(r)
	if err != nil {
		return err
	}

	var body models.Employee
	if err = decodeBody(w, r, &body); err != nil {
		return err
	}

	updated, err := a.repo.UpdateEmployee(r.Context(), identifier, body.Name, body.Position, body.Email, body.Phone)
	if err != nil {
		return err
	}

	a.writeJSON(w, r, http.StatusOK, updated)
	return nil
}

func (a *API) patchMember(w http.ResponseWriter, r *http.Request) error {
	identifier, err := pathID(r)
	if err != nil {
		return err
	}

	var patch employeePatch
	if err = decodeBody(w, r, &patch); err != nil {
		return err
	}

	current, err := a.repo.GetEmployeeByID(r.Context(), identifier)
	if err != nil {
		return err
	}
	patch.apply(&current)

	updated, err := a.repo.UpdateEmployee(
		r.Context(), identifier, current.Name, current.Position, current.Email, current.Phone)
	if err != nil {
		return err
	}

	a.writeJSON(w, r, http.StatusOK, updated)
	return nil
}

func (a *API) deleteMember(w http.ResponseWriter, r *http.Request) error {
	identifier, err := pathID(r)
	if err != nil {
		return err
	}

	if err = a.repo.DeleteEmployee(r.Context(), identifier); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (p employeePatch) apply(employee *models.Employee) {
	if p.Name != nil {
		employee.Name = *p.Name
	}
	if p.Position != nil {
		employee.Position = *p.Position
	}
	if p.Email != nil {
		employee.Email = *p.Email
	}
	if p.Phone != nil {
		employee.Phone = *p.Phone
	}
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.ErrorContext(r.Context(), "Failed to write response", sl.Err(err))
	}
}

// pathID parses the {id} segment. Identifiers are int4 in the store, so an integer
// outside that range can never name an employee.
func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	identifier, err := strconv.ParseInt(raw, 10, 32)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return 0, fmt.Errorf("employee id %s: %w", raw, repository.ErrEmployeeNotFound)
	case err != nil:
		return 0, fmt.Errorf("%w: invalid employee id %q", ErrBadRequest, raw)
	}
	return int(identifier), nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, key, raw)
	}
	return value, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: invalid request body: %w", ErrBadRequest, err)
	}
	return nil
}
