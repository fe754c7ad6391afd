package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EvaluationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type evaluationHandlerImpl struct {
	evaluationService evaluation.EvaluationService
}

func NewEvaluationHandler(evaluationService evaluation.EvaluationService) EvaluationHandler {
	return &evaluationHandlerImpl{
		evaluationService: evaluationService,
	}
}

// List handles GET /evaluations/{employeeID}
func (h *evaluationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.evaluationService.ListEvaluations(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Add handles POST /evaluations/{employeeID}
func (h *evaluationHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var req evaluation.CreateEvaluationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.evaluationService.AddEvaluation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Evaluation added", result)
}

// Delete handles DELETE /evaluations/{employeeID}/{index}
func (h *evaluationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "invalid index parameter", nil)
		return
	}

	result, err := h.evaluationService.DeleteEvaluation(r.Context(), chi.URLParam(r, "employeeID"), index)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Evaluation deleted", result)
}
