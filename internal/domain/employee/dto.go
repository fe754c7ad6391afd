package employee

import (
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	StartDate   string   `json:"start_date"`
	PIN         string   `json:"pin"`
	TargetHours *float64 `json:"target_hours,omitempty"`

	School            string   `json:"school,omitempty"`
	Mentor            string   `json:"mentor,omitempty"`
	InternshipStart   string   `json:"internship_start,omitempty"`
	InternshipEnd     string   `json:"internship_end,omitempty"`
	Status            string   `json:"status,omitempty"`
	Stipend           string   `json:"stipend,omitempty"`
	Tasks             []string `json:"tasks,omitempty"`
	WeeklyTargetHours *float64 `json:"weekly_target_hours,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)

	if len(r.Name) <= 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be at least 2 characters long",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.Role == "" {
		r.Role = string(RoleStaff)
	}
	if !validator.IsInSlice(r.Role, Roles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: Staff, Supervisor, Manager, Intern",
		})
	}

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4-6 digits",
		})
	}

	if r.TargetHours != nil && *r.TargetHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "target_hours",
			Message: "target_hours must be greater than 0",
		})
	}

	if r.WeeklyTargetHours != nil && *r.WeeklyTargetHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_target_hours",
			Message: "weekly_target_hours must not be negative",
		})
	}

	errs = append(errs, validateDates(map[string]string{
		"start_date":       r.StartDate,
		"internship_start": r.InternshipStart,
		"internship_end":   r.InternshipEnd,
	})...)

	if r.Status != "" && !validator.IsInSlice(r.Status, InternStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Aktif, Selesai, Drop",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEmployee builds the roster entry. Intern attributes are dropped for non-interns.
func (r CreateEmployeeRequest) ToEmployee() Employee {
	e := Employee{
		Name:        r.Name,
		Email:       r.Email,
		Role:        Role(r.Role),
		StartDate:   r.StartDate,
		PIN:         r.PIN,
		TargetHours: DefaultTargetHours,
	}
	if r.TargetHours != nil {
		e.TargetHours = *r.TargetHours
	}
	if e.Role == RoleIntern {
		e.School = r.School
		e.Mentor = r.Mentor
		e.InternshipStart = r.InternshipStart
		e.InternshipEnd = r.InternshipEnd
		e.Status = InternStatus(r.Status)
		if e.Status == "" {
			e.Status = InternStatusActive
		}
		e.Stipend = r.Stipend
		e.Tasks = cleanTasks(r.Tasks)
		e.WeeklyTargetHours = r.WeeklyTargetHours
	}
	return e
}

// UpdateEmployeeRequest patches only the fields that are set.
type UpdateEmployeeRequest struct {
	ID          string   `json:"-"`
	Name        *string  `json:"name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Role        *string  `json:"role,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	PIN         *string  `json:"pin,omitempty"`
	TargetHours *float64 `json:"target_hours,omitempty"`

	School            *string   `json:"school,omitempty"`
	Mentor            *string   `json:"mentor,omitempty"`
	InternshipStart   *string   `json:"internship_start,omitempty"`
	InternshipEnd     *string   `json:"internship_end,omitempty"`
	Status            *string   `json:"status,omitempty"`
	Stipend           *string   `json:"stipend,omitempty"`
	Tasks             *[]string `json:"tasks,omitempty"`
	WeeklyTargetHours *float64  `json:"weekly_target_hours,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if len(name) <= 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must be at least 2 characters long",
			})
		}
	}

	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "invalid email format",
			})
		}
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, Roles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: Staff, Supervisor, Manager, Intern",
		})
	}

	if r.PIN != nil && !validator.IsValidPIN(*r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4-6 digits",
		})
	}

	if r.TargetHours != nil && *r.TargetHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "target_hours",
			Message: "target_hours must be greater than 0",
		})
	}

	if r.WeeklyTargetHours != nil && *r.WeeklyTargetHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_target_hours",
			Message: "weekly_target_hours must not be negative",
		})
	}

	dates := map[string]string{}
	if r.StartDate != nil {
		dates["start_date"] = *r.StartDate
	}
	if r.InternshipStart != nil {
		dates["internship_start"] = *r.InternshipStart
	}
	if r.InternshipEnd != nil {
		dates["internship_end"] = *r.InternshipEnd
	}
	errs = append(errs, validateDates(dates)...)

	if r.Status != nil && *r.Status != "" && !validator.IsInSlice(*r.Status, InternStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Aktif, Selesai, Drop",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the patch into e.
func (r UpdateEmployeeRequest) Apply(e *Employee) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Email != nil {
		e.Email = *r.Email
	}
	if r.Role != nil {
		e.Role = Role(*r.Role)
	}
	if r.StartDate != nil {
		e.StartDate = *r.StartDate
	}
	if r.PIN != nil {
		e.PIN = *r.PIN
	}
	if r.TargetHours != nil {
		e.TargetHours = *r.TargetHours
	}
	if r.School != nil {
		e.School = *r.School
	}
	if r.Mentor != nil {
		e.Mentor = *r.Mentor
	}
	if r.InternshipStart != nil {
		e.InternshipStart = *r.InternshipStart
	}
	if r.InternshipEnd != nil {
		e.InternshipEnd = *r.InternshipEnd
	}
	if r.Status != nil {
		e.Status = InternStatus(*r.Status)
	}
	if r.Stipend != nil {
		e.Stipend = *r.Stipend
	}
	if r.Tasks != nil {
		e.Tasks = cleanTasks(*r.Tasks)
	}
	if r.WeeklyTargetHours != nil {
		e.WeeklyTargetHours = r.WeeklyTargetHours
	}
}

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"`
	// Interns selects interns only (true), non-interns only (false) or everyone (nil)
	Interns *bool `json:"interns,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // name, email, role, start_date
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.SortBy == "" {
		f.SortBy = "name"
	}
	if !validator.IsInSlice(f.SortBy, []string{"name", "email", "role", "start_date"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of: name, email, role, start_date",
		})
	}

	if f.SortOrder == "" {
		f.SortOrder = "asc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be either 'asc' or 'desc'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	StartDate   string  `json:"start_date,omitempty"`
	TargetHours float64 `json:"target_hours"`

	School            string   `json:"school,omitempty"`
	Mentor            string   `json:"mentor,omitempty"`
	InternshipStart   string   `json:"internship_start,omitempty"`
	InternshipEnd     string   `json:"internship_end,omitempty"`
	Status            string   `json:"status,omitempty"`
	Stipend           string   `json:"stipend,omitempty"`
	Tasks             []string `json:"tasks,omitempty"`
	WeeklyTargetHours *float64 `json:"weekly_target_hours,omitempty"`
}

// NewEmployeeResponse never exposes the PIN.
func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Role:        string(e.Role),
		StartDate:   e.StartDate,
		TargetHours: e.DailyTarget(),
	}
	if e.IsIntern() {
		resp.School = e.School
		resp.Mentor = e.Mentor
		resp.InternshipStart = e.InternshipStart
		resp.InternshipEnd = e.InternshipEnd
		resp.Status = string(e.InternStatusOrDefault())
		resp.Stipend = e.Stipend
		resp.Tasks = e.Tasks
		resp.WeeklyTargetHours = e.WeeklyTargetHours
	}
	return resp
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

type ImportResult struct {
	Imported []EmployeeResponse `json:"imported"`
	Skipped  []ImportSkip       `json:"skipped"`
}

type ImportSkip struct {
	Row    int    `json:"row"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

func validateDates(dates map[string]string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for field, value := range dates {
		if value == "" {
			continue
		}
		if _, ok := validator.IsValidDate(value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD format",
			})
		}
	}
	return errs
}

func cleanTasks(tasks []string) []string {
	var out []string
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
