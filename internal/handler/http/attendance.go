package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetDaily(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetRange(w http.ResponseWriter, r *http.Request)
	GetWeek(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeClock reads a clock request and applies the caller's scope.
// Self-only sessions may omit employee_id.
func decodeClock(w http.ResponseWriter, r *http.Request) (attendance.ClockRequest, bool) {
	var req attendance.ClockRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}

	caps := middleware.GetCapabilities(r.Context())
	if req.EmployeeID == "" && caps.SelfOnly {
		req.EmployeeID = caps.SelfOnlyID
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	if !caps.Allows(req.EmployeeID) {
		response.HandleError(w, user.ErrOutOfScope)
		return req, false
	}
	return req, true
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeClock(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !result.Recorded {
		response.SuccessWithMessage(w, "Already clocked in", result)
		return
	}
	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeClock(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !result.Recorded {
		response.SuccessWithMessage(w, "Nothing to clock out", result)
		return
	}
	response.Created(w, "Clock out successful", result)
}

// GetDaily handles GET /attendance/daily?date=
func (h *attendanceHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetDaily(r.Context(), middleware.GetCapabilities(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetStats handles GET /attendance/stats?date=
func (h *attendanceHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetStats(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRange handles GET /attendance/range?date_from=&date_to=
func (h *attendanceHandlerImpl) GetRange(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RangeFilter{
		From: r.URL.Query().Get("date_from"),
		To:   r.URL.Query().Get("date_to"),
	}

	rows, err := h.attendanceService.GetRange(r.Context(), middleware.GetCapabilities(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// GetWeek handles GET /attendance/week/{employeeID}?date=
func (h *attendanceHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetWeek(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
