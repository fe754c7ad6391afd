package learning

import (
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

type CreateLogRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Content    string `json:"content"`
}

func (r *CreateLogRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Content = strings.TrimSpace(r.Content)

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
	if r.Content == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}
	if len(r.Content) > 5000 {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content must not exceed 5000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CommentLogRequest struct {
	ID      string `json:"-"`
	Comment string `json:"comment"`
}

func (r *CommentLogRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Comment = strings.TrimSpace(r.Comment)

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if len(r.Comment) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LogFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
}

type LogResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	Content      string `json:"content"`
	Comment      string `json:"comment,omitempty"`
	CommentedBy  string `json:"commented_by,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

func NewLogResponse(l Log, employeeName string) LogResponse {
	return LogResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: employeeName,
		Date:         l.Date,
		Content:      l.Content,
		Comment:      l.Comment,
		CommentedBy:  l.CommentedBy,
		CreatedAt:    l.CreatedAt,
	}
}
