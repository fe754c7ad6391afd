package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetWeek(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// List handles GET /timesheets?status=&employee_id=
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter timesheet.TimesheetFilter
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.List(r.Context(), middleware.GetCapabilities(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeek handles GET /timesheets/{employeeID}?date=
func (h *timesheetHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetWeek(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Submit handles POST /timesheets/submit
func (h *timesheetHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caps := middleware.GetCapabilities(r.Context())
	if req.EmployeeID == "" && caps.SelfOnly {
		req.EmployeeID = caps.SelfOnlyID
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if !caps.Allows(req.EmployeeID) {
		response.HandleError(w, user.ErrOutOfScope)
		return
	}

	result, err := h.timesheetService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet submitted", result)
}

// Review handles POST /timesheets/review
func (h *timesheetHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.Review(r.Context(), req, middleware.GetSession(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet reviewed", result)
}
