package evaluation

import (
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

type CreateEvaluationRequest struct {
	EmployeeID    string `json:"employee_id"`
	Date          string `json:"date"`
	Discipline    int    `json:"discipline"`
	Skill         int    `json:"skill"`
	Communication int    `json:"communication"`
	Notes         string `json:"notes,omitempty"`
}

func (r *CreateEvaluationRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Notes = strings.TrimSpace(r.Notes)

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	scores := []struct {
		field string
		value int
	}{
		{"discipline", r.Discipline},
		{"skill", r.Skill},
		{"communication", r.Communication},
	}
	for _, s := range scores {
		if !validator.IsValidScore(s.value) {
			errs = append(errs, validator.ValidationError{
				Field:   s.field,
				Message: s.field + " must be between 1 and 5",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateEvaluationRequest) ToEvaluation() Evaluation {
	return Evaluation{
		Date:          r.Date,
		Discipline:    r.Discipline,
		Skill:         r.Skill,
		Communication: r.Communication,
		Notes:         r.Notes,
	}
}

type EvaluationResponse struct {
	Index         int     `json:"index"`
	Date          string  `json:"date"`
	Discipline    int     `json:"discipline"`
	Skill         int     `json:"skill"`
	Communication int     `json:"communication"`
	Average       float64 `json:"average"`
	Notes         string  `json:"notes,omitempty"`
}

type EvaluationListResponse struct {
	EmployeeID  string               `json:"employee_id"`
	Evaluations []EvaluationResponse `json:"evaluations"`
}

func NewEvaluationListResponse(employeeID string, bag Bag) EvaluationListResponse {
	resp := EvaluationListResponse{
		EmployeeID:  employeeID,
		Evaluations: make([]EvaluationResponse, 0, len(bag.Records)),
	}
	for i, e := range bag.Records {
		resp.Evaluations = append(resp.Evaluations, EvaluationResponse{
			Index:         i,
			Date:          e.Date,
			Discipline:    e.Discipline,
			Skill:         e.Skill,
			Communication: e.Communication,
			Average:       e.Average(),
			Notes:         e.Notes,
		})
	}
	return resp
}
