package learning

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/learning"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
)

type LearningServiceImpl struct {
	store        *kv.Store
	logRepo      learning.LogRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewLearningService(store *kv.Store, logRepo learning.LogRepository, employeeRepo employee.EmployeeRepository, now func() time.Time) learning.LearningService {
	if now == nil {
		now = time.Now
	}
	return &LearningServiceImpl{
		store:        store,
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
		now:          now,
	}
}

// CreateLog implements learning.LearningService.
func (s *LearningServiceImpl) CreateLog(ctx context.Context, req learning.CreateLogRequest) (learning.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return learning.LogResponse{}, err
	}

	var (
		created learning.Log
		emp     employee.Employee
	)
	err := s.store.Update(ctx, func(ctx context.Context) error {
		var err error
		emp, err = s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		created, err = s.logRepo.Create(ctx, learning.Log{
			EmployeeID: emp.ID,
			Date:       req.Date,
			Content:    req.Content,
			CreatedAt:  s.now().UnixMilli(),
		})
		return err
	})
	if err != nil {
		return learning.LogResponse{}, err
	}

	slog.Info("Learning log created", "log_id", created.ID, "employee_id", created.EmployeeID)
	return learning.NewLogResponse(created, emp.Name), nil
}

// ListLogs implements learning.LearningService. Newest date first.
func (s *LearningServiceImpl) ListLogs(ctx context.Context, caps user.Capabilities, filter learning.LogFilter) ([]learning.LogResponse, error) {
	logs, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning logs: %w", err)
	}
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	responses := make([]learning.LogResponse, 0, len(logs))
	for _, l := range logs {
		if !caps.Allows(l.EmployeeID) {
			continue
		}
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		responses = append(responses, learning.NewLogResponse(l, names[l.EmployeeID]))
	}

	sort.SliceStable(responses, func(i, j int) bool {
		if responses[i].Date != responses[j].Date {
			return responses[i].Date > responses[j].Date
		}
		return responses[i].CreatedAt > responses[j].CreatedAt
	})
	return responses, nil
}

// GetLog implements learning.LearningService.
func (s *LearningServiceImpl) GetLog(ctx context.Context, id string) (learning.LogResponse, error) {
	l, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return learning.LogResponse{}, err
	}
	name := ""
	if emp, err := s.employeeRepo.GetByID(ctx, l.EmployeeID); err == nil {
		name = emp.Name
	}
	return learning.NewLogResponse(l, name), nil
}

// CommentLog implements learning.LearningService.
func (s *LearningServiceImpl) CommentLog(ctx context.Context, req learning.CommentLogRequest, reviewer user.Session) (learning.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return learning.LogResponse{}, err
	}

	var updated learning.Log
	err := s.store.Update(ctx, func(ctx context.Context) error {
		l, err := s.logRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		l.Comment = req.Comment
		l.CommentedBy = reviewer.ReviewerName()
		if req.Comment == "" {
			l.CommentedBy = ""
		}
		if err := s.logRepo.Update(ctx, l); err != nil {
			return fmt.Errorf("failed to update learning log: %w", err)
		}
		updated = l
		return nil
	})
	if err != nil {
		return learning.LogResponse{}, err
	}
	return s.GetLog(ctx, updated.ID)
}

// DeleteLog implements learning.LearningService.
func (s *LearningServiceImpl) DeleteLog(ctx context.Context, id string) error {
	if err := s.logRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Learning log deleted", "log_id", id)
	return nil
}
