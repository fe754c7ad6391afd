package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	AttendanceCSV(w http.ResponseWriter, r *http.Request)
	AttendanceXLSX(w http.ResponseWriter, r *http.Request)
	EmployeesCSV(w http.ResponseWriter, r *http.Request)
	InternsCSV(w http.ResponseWriter, r *http.Request)
	TimesheetCSV(w http.ResponseWriter, r *http.Request)
	ArchiveDay(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func attendanceExportRequest(r *http.Request) report.AttendanceExportRequest {
	return report.AttendanceExportRequest{
		From: r.URL.Query().Get("date_from"),
		To:   r.URL.Query().Get("date_to"),
	}
}

// AttendanceCSV handles GET /exports/attendance.csv
func (h *reportHandlerImpl) AttendanceCSV(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.AttendanceCSV(r.Context(), middleware.GetCapabilities(r.Context()), attendanceExportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// AttendanceXLSX handles GET /exports/attendance.xlsx
func (h *reportHandlerImpl) AttendanceXLSX(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.AttendanceXLSX(r.Context(), middleware.GetCapabilities(r.Context()), attendanceExportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// EmployeesCSV handles GET /exports/employees.csv
func (h *reportHandlerImpl) EmployeesCSV(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.EmployeesCSV(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// InternsCSV handles GET /exports/interns.csv
func (h *reportHandlerImpl) InternsCSV(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.InternsCSV(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// TimesheetCSV handles GET /timesheets/{employeeID}/export.csv?date=
func (h *reportHandlerImpl) TimesheetCSV(w http.ResponseWriter, r *http.Request) {
	req := report.TimesheetExportRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       r.URL.Query().Get("date"),
	}
	file, err := h.reportService.TimesheetCSV(r.Context(), middleware.GetCapabilities(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// ArchiveDay handles POST /exports/archive?date=
func (h *reportHandlerImpl) ArchiveDay(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.ArchiveDay(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
