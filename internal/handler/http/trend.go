package http

import (
	"net/http"

	"github.com/fleetops/attendance-backend-go/internal/domain/trend"
	"github.com/fleetops/attendance-backend-go/internal/handler/http/response"
)

type TrendHandler struct {
	trendService trend.TrendService
}

func NewTrendHandler(trendService trend.TrendService) *TrendHandler {
	return &TrendHandler{trendService: trendService}
}

// GetTrendReport handles GET /api/v1/reports/trends?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *TrendHandler) GetTrendReport(w http.ResponseWriter, r *http.Request) {
	req := trend.TrendReportRequest{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.trendService.GenerateTrendReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
