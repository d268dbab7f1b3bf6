package orghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/org"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *org.Service
}

func NewHandler(service *org.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.Delete("/", h.handleDeleteEmployee)
			r.Get("/account", h.handleGetAccount)
		})
	})
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Route("/{departmentID}", func(r chi.Router) {
			r.Get("/", h.handleGetDepartment)
			r.Put("/", h.handleUpdateDepartment)
			r.Delete("/", h.handleDeleteDepartment)
		})
	})
	r.Get("/accounts", h.handleListAccounts)
}

type employeeRequest struct {
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	Patronymic   string `json:"patronymic"`
	DepartmentID *int64 `json:"department_id"`
	Position     string `json:"position"`
	Rank         string `json:"rank"`
	DateHired    string `json:"date_hired"`
	DateOfBirth  string `json:"date_of_birth"`
}

type tenureResponse struct {
	Years   int    `json:"years"`
	Months  int    `json:"months"`
	Days    int    `json:"days"`
	Display string `json:"display"`
}

type departmentResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	EmployeesCount int    `json:"employees_count"`
}

type employeeResponse struct {
	ID          int64               `json:"id"`
	LastName    string              `json:"last_name"`
	FirstName   string              `json:"first_name"`
	Patronymic  string              `json:"patronymic"`
	FIO         string              `json:"fio"`
	Position    string              `json:"position"`
	Rank        string              `json:"rank"`
	Department  *departmentResponse `json:"department"`
	DateHired   string              `json:"date_hired"`
	DateOfBirth *string             `json:"date_of_birth"`
	Tenure      tenureResponse      `json:"tenure"`
}

type accountResponse struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Login      string `json:"login"`
	Credential string `json:"credential"`
}

func toDepartmentResponse(dept org.Department) departmentResponse {
	return departmentResponse{
		ID:             dept.ID,
		Name:           dept.Name,
		Specialization: dept.Specialization,
		EmployeesCount: dept.EmployeesCount,
	}
}

func toEmployeeResponse(emp org.Employee) employeeResponse {
	tenure := org.Tenure(emp.DateHired, time.Now())
	resp := employeeResponse{
		ID:         emp.ID,
		LastName:   emp.LastName,
		FirstName:  emp.FirstName,
		Patronymic: emp.Patronymic,
		FIO:        emp.FullName(),
		Position:   emp.Position,
		Rank:       emp.Rank,
		DateHired:  shared.FormatDate(emp.DateHired),
		Tenure: tenureResponse{
			Years:   tenure.Years,
			Months:  tenure.Months,
			Days:    tenure.Days,
			Display: tenure.Display(),
		},
	}
	if emp.Department != nil {
		dept := toDepartmentResponse(*emp.Department)
		resp.Department = &dept
	}
	if emp.DateOfBirth != nil {
		formatted := shared.FormatDate(*emp.DateOfBirth)
		resp.DateOfBirth = &formatted
	}
	return resp
}

func toAccountResponse(acc org.Account) accountResponse {
	return accountResponse{
		EmployeeID: acc.EmployeeID,
		Name:       acc.Name,
		Login:      acc.Login,
		Credential: acc.Credential,
	}
}

func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request) (org.Employee, bool) {
	reqID := middleware.GetRequestID(r.Context())

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid JSON body", reqID)
		return org.Employee{}, false
	}

	validator := shared.NewValidator()
	validator.Required("last_name", req.LastName, "is required")
	validator.Required("first_name", req.FirstName, "is required")
	validator.Required("date_hired", req.DateHired, "is required")

	var dateHired time.Time
	if req.DateHired != "" {
		dateHired, _ = validator.Date("date_hired", req.DateHired)
	}
	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		if parsed, ok := validator.Date("date_of_birth", req.DateOfBirth); ok {
			dateOfBirth = &parsed
		}
	}
	if validator.Reject(w, reqID) {
		return org.Employee{}, false
	}

	return org.Employee{
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		Patronymic:   req.Patronymic,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Rank:         req.Rank,
		DateHired:    dateHired,
		DateOfBirth:  dateOfBirth,
	}, true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toEmployeeResponse(emp))
	}
	api.Success(w, out)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}

	created, err := h.Service.CreateEmployee(r.Context(), emp)
	if errors.Is(err, org.ErrDepartmentNotFound) {
		api.Fail(w, http.StatusBadRequest, "department does not exist", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to create employee", reqID)
		return
	}
	api.Created(w, toEmployeeResponse(*created))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "employee id must be an integer", reqID)
		return
	}

	emp, err := h.Service.GetEmployee(r.Context(), id)
	if errors.Is(err, org.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to load employee", reqID)
		return
	}
	api.Success(w, toEmployeeResponse(*emp))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "employee id must be an integer", reqID)
		return
	}

	emp, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}

	updated, err := h.Service.UpdateEmployee(r.Context(), id, emp)
	switch {
	case errors.Is(err, org.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee not found", reqID)
	case errors.Is(err, org.ErrDepartmentNotFound):
		api.Fail(w, http.StatusBadRequest, "department does not exist", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "failed to update employee", reqID)
	default:
		api.Success(w, toEmployeeResponse(*updated))
	}
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "employee id must be an integer", reqID)
		return
	}

	err = h.Service.DeleteEmployee(r.Context(), id)
	if errors.Is(err, org.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to delete employee", reqID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "employee id must be an integer", reqID)
		return
	}

	acc, err := h.Service.GetAccountByEmployee(r.Context(), id)
	if errors.Is(err, org.ErrAccountNotFound) {
		api.Fail(w, http.StatusNotFound, "account not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to load account", reqID)
		return
	}
	api.Success(w, toAccountResponse(*acc))
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Service.ListAccounts(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to list accounts", middleware.GetRequestID(r.Context()))
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, toAccountResponse(acc))
	}
	api.Success(w, out)
}

type departmentRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

func (h *Handler) decodeDepartment(w http.ResponseWriter, r *http.Request) (org.Department, bool) {
	reqID := middleware.GetRequestID(r.Context())

	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid JSON body", reqID)
		return org.Department{}, false
	}

	validator := shared.NewValidator()
	validator.Required("name", req.Name, "is required")
	if validator.Reject(w, reqID) {
		return org.Department{}, false
	}

	return org.Department{Name: req.Name, Specialization: req.Specialization}, true
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}

	out := make([]departmentResponse, 0, len(departments))
	for _, dept := range departments {
		out = append(out, toDepartmentResponse(dept))
	}
	api.Success(w, out)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	dept, ok := h.decodeDepartment(w, r)
	if !ok {
		return
	}

	created, err := h.Service.CreateDepartment(r.Context(), dept)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to create department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, toDepartmentResponse(*created))
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r, "departmentID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "department id must be an integer", reqID)
		return
	}

	dept, err := h.Service.GetDepartment(r.Context(), id)
	if errors.Is(err, org.ErrDepartmentNotFound) {
		api.Fail(w, http.StatusNotFound, "department not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to load department", reqID)
		return
	}
	api.Success(w, toDepartmentResponse(*dept))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r, "departmentID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "department id must be an integer", reqID)
		return
	}

	dept, ok := h.decodeDepartment(w, r)
	if !ok {
		return
	}

	updated, err := h.Service.UpdateDepartment(r.Context(), id, dept)
	if errors.Is(err, org.ErrDepartmentNotFound) {
		api.Fail(w, http.StatusNotFound, "department not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to update department", reqID)
		return
	}
	api.Success(w, toDepartmentResponse(*updated))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r, "departmentID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "department id must be an integer", reqID)
		return
	}

	err = h.Service.DeleteDepartment(r.Context(), id)
	if errors.Is(err, org.ErrDepartmentNotFound) {
		api.Fail(w, http.StatusNotFound, "department not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to delete department", reqID)
		return
	}
	api.NoContent(w)
}
