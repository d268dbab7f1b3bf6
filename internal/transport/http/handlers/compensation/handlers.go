package compensationhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/compensation"
	"staffhub/internal/domain/org"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

type Handler struct {
	Resolver *compensation.Resolver
	Client   compensation.Client
	Service  *org.Service
}

func NewHandler(resolver *compensation.Resolver, client compensation.Client, service *org.Service) *Handler {
	return &Handler{Resolver: resolver, Client: client, Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees/{employeeID}/salary", h.handleGetSalary)
	r.Post("/employees/{employeeID}/salary/base", h.handleSetBaseSalary)
}

// handleGetSalary maps the resolver's failure taxonomy onto the wire:
// 404 unknown employee, 503 authority unreachable, 502 authority error.
func (h *Handler) handleGetSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "employee id must be an integer", reqID)
		return
	}

	combined, err := h.Resolver.Resolve(r.Context(), id)
	if err != nil {
		h.failResolve(w, reqID, err)
		return
	}
	api.Success(w, combined)
}

func (h *Handler) failResolve(w http.ResponseWriter, reqID string, err error) {
	var unreachable *compensation.AuthorityUnreachableError
	var authority *compensation.AuthorityError
	switch {
	case errors.Is(err, org.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee not found", reqID)
	case errors.As(err, &unreachable):
		slog.Error("accounting service unreachable", "err", unreachable.Err, "request_id", reqID)
		api.Fail(w, http.StatusServiceUnavailable, unreachable.Error(), reqID)
	case errors.As(err, &authority):
		slog.Error("accounting service error", "status", authority.StatusCode, "request_id", reqID)
		api.Fail(w, http.StatusBadGateway, authority.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "salary resolution failed", reqID)
	}
}

// handleSetBaseSalary proxies the authority's base-salary upsert after
// checking the employee exists locally.
func (h *Handler) handleSetBaseSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "employee id must be an integer", reqID)
		return
	}

	baseSalary, err := strconv.ParseFloat(r.URL.Query().Get("base_salary"), 64)
	if err != nil || baseSalary <= 0 {
		api.Fail(w, http.StatusBadRequest, "base_salary must be a positive number", reqID)
		return
	}

	if _, err := h.Service.GetEmployee(r.Context(), id); err != nil {
		if errors.Is(err, org.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to load employee", reqID)
		return
	}

	ack, err := h.Client.SetBaseSalary(r.Context(), id, baseSalary)
	if err != nil {
		h.failResolve(w, reqID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(ack)
}
