package http

import (
	"net/http"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/domain/report"
	"github.com/fleetops/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ValidateDailyReport handles GET /api/v1/reports/daily/{date}/validation
func (h *ReportHandler) ValidateDailyReport(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyReportRequest{
		Date: chi.URLParam(r, "date"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.ValidateStoredReport(r.Context(), req.Date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
