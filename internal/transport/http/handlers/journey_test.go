package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffhub/internal/app/server"
	"staffhub/internal/domain/compensation"
	"staffhub/internal/domain/org"
	"staffhub/internal/domain/reports"
)

func newTestAPI(t *testing.T, accountingURL string, timeout time.Duration) http.Handler {
	t.Helper()
	store := org.NewMemoryStore()
	orgService := org.NewService(store, store, store)
	client := compensation.NewHTTPClient(accountingURL, timeout)
	resolver := compensation.NewResolver(store, client)
	reportsService := reports.NewService(store)
	return server.NewRouter(nil, orgService, resolver, client, reportsService)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestEmployeeLifecycleJourney(t *testing.T) {
	authority := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		years := r.URL.Query().Get("years")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"employee_id":1,"base_salary":50000.0,"years":%s,"computed_salary":%s,"breakdown":{"base_salary":50000.0,"years":%s,"increment_per_year":1500,"years_increment":0},"source":"default"}`,
			years, "50000.0", years)
	}))
	defer authority.Close()

	router := newTestAPI(t, authority.URL, time.Second)

	// Department first.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/departments", map[string]any{
		"name":           "Отдел разработки",
		"specialization": "Разработка ПО",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dept := decodeBody(t, rec)
	deptID := int64(dept["id"].(float64))
	assert.Equal(t, float64(0), dept["employees_count"])

	// Create an employee in it.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]any{
		"last_name":     "Иванов",
		"first_name":    "Иван",
		"patronymic":    "Иванович",
		"position":      "Инженер",
		"date_hired":    "2021-03-15",
		"department_id": deptID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	emp := decodeBody(t, rec)
	empID := int64(emp["id"].(float64))
	assert.Equal(t, "Иванов Иван Иванович", emp["fio"])
	assert.Equal(t, org.DefaultRank, emp["rank"])
	tenure := emp["tenure"].(map[string]any)
	assert.NotEmpty(t, tenure["display"])

	// The department aggregate reflects the new member.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/departments/%d", deptID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["employees_count"])

	// An account was provisioned exactly once.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d/account", empID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	account := decodeBody(t, rec)
	assert.Equal(t, "ivanii", account["login"])
	assert.Len(t, account["credential"].(string), 10)

	// Salary resolution goes through the accounting stub.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d/salary", empID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	combined := decodeBody(t, rec)
	employeeHalf := combined["employee"].(map[string]any)
	assert.Equal(t, float64(empID), employeeHalf["id"])
	assert.Equal(t, "Отдел разработки", employeeHalf["department"])
	salaryHalf := combined["salary"].(map[string]any)
	assert.Equal(t, "default", salaryHalf["source"])

	// Roster export renders.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/reports/staff.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	// Delete drives the aggregate back to zero and removes the account.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", empID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/departments/%d", deptID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["employees_count"])
}

func TestSalaryEndpointErrorMapping(t *testing.T) {
	t.Run("unknown employee is 404", func(t *testing.T) {
		router := newTestAPI(t, "http://localhost:1", time.Second)
		rec := doJSON(t, router, http.MethodGet, "/api/v1/employees/9999/salary", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "employee not found", decodeBody(t, rec)["detail"])
	})

	t.Run("unreachable authority is 503", func(t *testing.T) {
		router := newTestAPI(t, "http://localhost:1", time.Second)
		empID := createEmployee(t, router)
		rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d/salary", empID), nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["detail"], "unreachable")
	})

	t.Run("authority non-2xx is 502", func(t *testing.T) {
		authority := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"ledger offline"}`, http.StatusInternalServerError)
		}))
		defer authority.Close()

		router := newTestAPI(t, authority.URL, time.Second)
		empID := createEmployee(t, router)
		rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d/salary", empID), nil)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["detail"], "500")
	})
}

func createEmployee(t *testing.T, router http.Handler) int64 {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]any{
		"last_name":  "Петров",
		"first_name": "Пётр",
		"date_hired": "2020-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decodeBody(t, rec)["id"].(float64))
}

func TestEmployeeValidation(t *testing.T) {
	router := newTestAPI(t, "http://localhost:1", time.Second)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]any{
		"first_name": "Иван",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "payload validation failed", body["detail"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]any{
		"last_name":     "Иванов",
		"first_name":    "Иван",
		"date_hired":    "2020-01-01",
		"department_id": 777,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "department does not exist", decodeBody(t, rec)["detail"])
}

func TestSetBaseSalaryProxy(t *testing.T) {
	authority := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"ok":true,"employee_id":1,"base_salary":%s,"matched_count":0,"modified_count":0,"upserted_id":"x"}`,
			r.URL.Query().Get("base_salary"))
	}))
	defer authority.Close()

	router := newTestAPI(t, authority.URL, time.Second)
	empID := createEmployee(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/employees/%d/salary/base?base_salary=90000", empID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ack := decodeBody(t, rec)
	assert.Equal(t, true, ack["ok"])

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/employees/%d/salary/base?base_salary=-5", empID), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
