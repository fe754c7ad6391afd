package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
)

func float64Ptr(f float64) *float64 { return &f }

// ==========================================
// DEMO ROSTER
// ==========================================

// DemoEmployees is the roster seeded on an empty store. The admin PIN stays at its default.
var DemoEmployees = []employee.CreateEmployeeRequest{
	{
		Name:        "Rina Kusuma",
		Email:       "rina@hrkecil.local",
		Role:        string(employee.RoleManager),
		StartDate:   "2021-03-01",
		PIN:         "1111",
		TargetHours: float64Ptr(8),
	},
	{
		Name:        "Dimas Saputra",
		Email:       "dimas@hrkecil.local",
		Role:        string(employee.RoleSupervisor),
		StartDate:   "2022-01-10",
		PIN:         "2222",
		TargetHours: float64Ptr(8),
	},
	{
		Name:        "Budi Santoso",
		Email:       "budi@hrkecil.local",
		Role:        string(employee.RoleStaff),
		StartDate:   "2023-06-05",
		PIN:         "3333",
		TargetHours: float64Ptr(7.5),
	},
	{
		Name:              "Citra Lestari",
		Email:             "citra@hrkecil.local",
		Role:              string(employee.RoleIntern),
		StartDate:         "2024-07-01",
		PIN:               "4444",
		TargetHours:       float64Ptr(6),
		School:            "Universitas Brawijaya",
		Mentor:            "Dimas Saputra",
		InternshipStart:   "2024-07-01",
		InternshipEnd:     "2024-12-31",
		Status:            string(employee.InternStatusActive),
		Stipend:           "1500000",
		Tasks:             []string{"Rekap absensi", "Dokumentasi SOP"},
		WeeklyTargetHours: float64Ptr(30),
	},
}

// Seeder fills an empty store with a demo roster, today's clock-ins and one intern evaluation.
type Seeder struct {
	EmployeeRepo      employee.EmployeeRepository
	EmployeeService   employee.EmployeeService
	AttendanceService attendance.AttendanceService
	EvaluationService evaluation.EvaluationService
}

// Seed runs only when the roster is empty and reports whether anything was written.
func (s Seeder) Seed(ctx context.Context, today string) (bool, error) {
	existing, err := s.EmployeeRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	var intern string
	for _, req := range DemoEmployees {
		created, err := s.EmployeeService.CreateEmployee(ctx, req)
		if err != nil {
			return false, fmt.Errorf("failed to seed employee %s: %w", req.Email, err)
		}
		if created.Role == string(employee.RoleIntern) {
			intern = created.ID
		}

		if _, err := s.AttendanceService.ClockIn(ctx, attendance.ClockRequest{
			EmployeeID: created.ID,
			Note:       "WFO",
		}); err != nil {
			return false, fmt.Errorf("failed to seed attendance for %s: %w", created.ID, err)
		}
	}

	if intern != "" {
		_, err := s.EvaluationService.AddEvaluation(ctx, evaluation.CreateEvaluationRequest{
			EmployeeID:    intern,
			Date:          today,
			Discipline:    4,
			Skill:         3,
			Communication: 5,
			Notes:         "Minggu pertama berjalan baik",
		})
		if err != nil {
			return false, fmt.Errorf("failed to seed evaluation: %w", err)
		}
	}

	slog.Info("Seeded demo data", "employees", len(DemoEmployees), "date", today)
	return true, nil
}
