package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/reports"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/staff.pdf", h.handleStaffRoster)
}

func (h *Handler) handleStaffRoster(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.StaffRosterPDF(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to render roster", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="staff.pdf"`)
	_, _ = w.Write(pdf)
}
