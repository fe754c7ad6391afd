package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateRequest implements LeaveHandler.
func (h *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
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

	result, err := h.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created", result)
}

// getVisible loads a request and checks it against the caller's scope.
func (h *leaveHandlerImpl) getVisible(w http.ResponseWriter, r *http.Request) (leave.LeaveRequestResponse, bool) {
	result, err := h.leaveService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return result, false
	}
	if !middleware.GetCapabilities(r.Context()).Allows(result.EmployeeID) {
		response.HandleError(w, user.ErrOutOfScope)
		return result, false
	}
	return result, true
}

// GetRequest implements LeaveHandler.
func (h *leaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	result, ok := h.getVisible(w, r)
	if !ok {
		return
	}

	response.Success(w, result)
}

// ListRequests implements LeaveHandler.
func (h *leaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	var filter leave.LeaveRequestFilter
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

	result, err := h.leaveService.ListLeaveRequest(r.Context(), middleware.GetCapabilities(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveRequest implements LeaveHandler.
func (h *leaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ApproveLeaveRequest(r.Context(), chi.URLParam(r, "id"), middleware.GetSession(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// RejectRequest implements LeaveHandler.
func (h *leaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.RejectLeaveRequest(r.Context(), chi.URLParam(r, "id"), middleware.GetSession(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// DeleteRequest implements LeaveHandler. Owners may withdraw their own requests.
func (h *leaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.getVisible(w, r)
	if !ok {
		return
	}

	if err := h.leaveService.DeleteLeaveRequest(r.Context(), existing.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}
