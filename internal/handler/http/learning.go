package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/learning"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LearningHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Comment(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type learningHandlerImpl struct {
	learningService learning.LearningService
}

func NewLearningHandler(learningService learning.LearningService) LearningHandler {
	return &learningHandlerImpl{
		learningService: learningService,
	}
}

// List handles GET /learning-logs?employee_id=
func (h *learningHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter learning.LogFilter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := h.learningService.ListLogs(r.Context(), middleware.GetCapabilities(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *learningHandlerImpl) getVisible(w http.ResponseWriter, r *http.Request) (learning.LogResponse, bool) {
	result, err := h.learningService.GetLog(r.Context(), chi.URLParam(r, "id"))
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

// Get handles GET /learning-logs/{id}
func (h *learningHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, ok := h.getVisible(w, r)
	if !ok {
		return
	}

	response.Success(w, result)
}

// Create handles POST /learning-logs
func (h *learningHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req learning.CreateLogRequest
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

	result, err := h.learningService.CreateLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Learning log created", result)
}

// Comment handles POST /learning-logs/{id}/comment
func (h *learningHandlerImpl) Comment(w http.ResponseWriter, r *http.Request) {
	var req learning.CommentLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.learningService.CommentLog(r.Context(), req, middleware.GetSession(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comment saved", result)
}

// Delete handles DELETE /learning-logs/{id}
func (h *learningHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.getVisible(w, r)
	if !ok {
		return
	}

	if err := h.learningService.DeleteLog(r.Context(), existing.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Learning log deleted", nil)
}
