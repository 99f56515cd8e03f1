package http

import (
	"net/http"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// GetDailyReport handles GET /api/v1/reports/daily?date=YYYY-MM-DD
func (h *AttendanceHandler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyReportRequest{
		Date: r.URL.Query().Get("date"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.attendanceService.GetDailyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ImportUsage handles POST /api/v1/usage/import
func (h *AttendanceHandler) ImportUsage(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ImportLatestUsage(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Usage export imported", result)
}
