package compensation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffhub/internal/domain/org"
)

const (
	testDefaultBase      = 50000.0
	testIncrementPerYear = 1500.0
)

// fakeAuthority implements the accounting contract's salary formula:
// computed = base + increment * years, base from a stored override when one
// exists, else the default.
func fakeAuthority(t *testing.T, overrides map[int64]float64, gotYears *int) http.Handler {
	t.Helper()
	mux := chi.NewRouter()
	mux.Get("/salary/{id}", func(w http.ResponseWriter, r *http.Request) {
		var employeeID int64
		_, err := fmt.Sscanf(chi.URLParam(r, "id"), "%d", &employeeID)
		require.NoError(t, err)

		years := 0
		if raw := r.URL.Query().Get("years"); raw != "" {
			_, err := fmt.Sscanf(raw, "%d", &years)
			require.NoError(t, err)
		}
		if gotYears != nil {
			*gotYears = years
		}

		base := testDefaultBase
		source := "default"
		if stored, ok := overrides[employeeID]; ok {
			base = stored
			source = "mongo"
		}

		payload := SalaryPayload{
			EmployeeID:     employeeID,
			BaseSalary:     base,
			Years:          years,
			ComputedSalary: base + testIncrementPerYear*float64(years),
			Breakdown: SalaryBreakdown{
				BaseSalary:       base,
				Years:            years,
				IncrementPerYear: testIncrementPerYear,
				YearsIncrement:   testIncrementPerYear * float64(years),
			},
			Source: source,
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	})
	return mux
}

func newResolverWithEmployee(t *testing.T, client Client, emp org.Employee) (*Resolver, *org.Employee) {
	t.Helper()
	store := org.NewMemoryStore()
	svc := org.NewService(store, store, store)
	created, err := svc.CreateEmployee(context.Background(), emp)
	require.NoError(t, err)

	resolver := NewResolver(store, client)
	return resolver, created
}

func TestResolveCombinesLocalAndRemote(t *testing.T) {
	var gotYears int
	server := httptest.NewServer(fakeAuthority(t, nil, &gotYears))
	defer server.Close()

	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	resolver, emp := newResolverWithEmployee(t,
		NewHTTPClient(server.URL, time.Second),
		org.Employee{
			LastName:   "Иванов",
			FirstName:  "Иван",
			Patronymic: "Иванович",
			Position:   "Инженер",
			DateHired:  time.Date(2023, time.August, 29, 0, 0, 0, 0, time.UTC),
		})
	resolver.now = func() time.Time { return now }

	combined, err := resolver.Resolve(context.Background(), emp.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, gotYears, "whole-year tenure passed to the authority")
	assert.Equal(t, emp.ID, combined.Employee.ID)
	assert.Equal(t, "Иванов Иван Иванович", combined.Employee.FIO)
	assert.Equal(t, "2023-08-29", combined.Employee.DateHired)

	var salary SalaryPayload
	require.NoError(t, json.Unmarshal(combined.Salary, &salary))
	assert.Equal(t, emp.ID, salary.EmployeeID)
	assert.Equal(t, testDefaultBase+3*testIncrementPerYear, salary.ComputedSalary)
	assert.Equal(t, "default", salary.Source)
	assert.Equal(t, 3*testIncrementPerYear, salary.Breakdown.YearsIncrement)
}

func TestResolveUsesStoredOverride(t *testing.T) {
	overrides := map[int64]float64{}
	server := httptest.NewServer(fakeAuthority(t, overrides, nil))
	defer server.Close()

	resolver, emp := newResolverWithEmployee(t,
		NewHTTPClient(server.URL, time.Second),
		org.Employee{
			LastName:  "Петров",
			FirstName: "Пётр",
			DateHired: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		})
	overrides[emp.ID] = 80000

	combined, err := resolver.Resolve(context.Background(), emp.ID)
	require.NoError(t, err)

	var salary SalaryPayload
	require.NoError(t, json.Unmarshal(combined.Salary, &salary))
	assert.Equal(t, 80000.0, salary.BaseSalary)
	assert.Equal(t, "mongo", salary.Source)
}

func TestResolveUnknownEmployee(t *testing.T) {
	server := httptest.NewServer(fakeAuthority(t, nil, nil))
	defer server.Close()

	store := org.NewMemoryStore()
	resolver := NewResolver(store, NewHTTPClient(server.URL, time.Second))

	_, err := resolver.Resolve(context.Background(), 404)
	assert.ErrorIs(t, err, org.ErrEmployeeNotFound)
}

func TestResolveAuthorityErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver, emp := newResolverWithEmployee(t,
		NewHTTPClient(server.URL, time.Second),
		org.Employee{LastName: "Иванов", FirstName: "Иван", DateHired: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)})

	_, err := resolver.Resolve(context.Background(), emp.ID)

	var authorityErr *AuthorityError
	require.ErrorAs(t, err, &authorityErr)
	assert.Equal(t, http.StatusInternalServerError, authorityErr.StatusCode)
	assert.Contains(t, authorityErr.Body, "boom")
}

func TestResolveAuthorityUnreachable(t *testing.T) {
	server := httptest.NewServer(fakeAuthority(t, nil, nil))
	server.Close() // nothing listens anymore

	resolver, emp := newResolverWithEmployee(t,
		NewHTTPClient(server.URL, time.Second),
		org.Employee{LastName: "Иванов", FirstName: "Иван", DateHired: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)})

	combined, err := resolver.Resolve(context.Background(), emp.ID)

	var unreachable *AuthorityUnreachableError
	require.ErrorAs(t, err, &unreachable)
	assert.Nil(t, combined, "no fabricated salary on failure")
}

func TestResolveAuthorityTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	resolver, emp := newResolverWithEmployee(t,
		NewHTTPClient(server.URL, 50*time.Millisecond),
		org.Employee{LastName: "Иванов", FirstName: "Иван", DateHired: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)})

	_, err := resolver.Resolve(context.Background(), emp.ID)

	var unreachable *AuthorityUnreachableError
	require.ErrorAs(t, err, &unreachable)
}

func TestResolveMalformedAuthorityPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	resolver, emp := newResolverWithEmployee(t,
		NewHTTPClient(server.URL, time.Second),
		org.Employee{LastName: "Иванов", FirstName: "Иван", DateHired: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)})

	_, err := resolver.Resolve(context.Background(), emp.ID)

	var authorityErr *AuthorityError
	require.ErrorAs(t, err, &authorityErr)
}

func TestSetBaseSalaryAcknowledgement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/salary/7/set", r.URL.Path)
		require.Equal(t, "75000", r.URL.Query().Get("base_salary"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"employee_id":7,"base_salary":75000.0,"matched_count":0,"modified_count":0,"upserted_id":"abc"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	ack, err := client.SetBaseSalary(context.Background(), 7, 75000)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ack, &body))
	assert.Equal(t, true, body["ok"])
}

func TestGetSalaryRejectsNegativeYears(t *testing.T) {
	client := NewHTTPClient("http://localhost:1", time.Second)
	_, err := client.GetSalary(context.Background(), 1, -1)
	assert.ErrorIs(t, err, ErrInvalidYears)
}
