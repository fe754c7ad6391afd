package evaluation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
)

type EvaluationServiceImpl struct {
	store *kv.Store
	evaluation.EvaluationRepository
	employee.EmployeeRepository
}

func NewEvaluationService(store *kv.Store, evaluationRepository evaluation.EvaluationRepository, employeeRepository employee.EmployeeRepository) evaluation.EvaluationService {
	return &EvaluationServiceImpl{
		store:                store,
		EvaluationRepository: evaluationRepository,
		EmployeeRepository:   employeeRepository,
	}
}

// AddEvaluation implements evaluation.EvaluationService.
func (e *EvaluationServiceImpl) AddEvaluation(ctx context.Context, req evaluation.CreateEvaluationRequest) (evaluation.EvaluationListResponse, error) {
	if err := req.Validate(); err != nil {
		return evaluation.EvaluationListResponse{}, err
	}

	var bag evaluation.Bag
	err := e.store.Update(ctx, func(ctx context.Context) error {
		if _, err := e.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}
		var err error
		bag, err = e.EvaluationRepository.GetByEmployeeID(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get evaluations: %w", err)
		}
		bag.Records = append(bag.Records, req.ToEvaluation())
		return e.EvaluationRepository.Save(ctx, req.EmployeeID, bag)
	})
	if err != nil {
		return evaluation.EvaluationListResponse{}, err
	}

	slog.Info("Evaluation added", "employee_id", req.EmployeeID, "count", len(bag.Records))
	return evaluation.NewEvaluationListResponse(req.EmployeeID, bag), nil
}

// ListEvaluations implements evaluation.EvaluationService.
func (e *EvaluationServiceImpl) ListEvaluations(ctx context.Context, employeeID string) (evaluation.EvaluationListResponse, error) {
	bag, err := e.EvaluationRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return evaluation.EvaluationListResponse{}, fmt.Errorf("failed to get evaluations: %w", err)
	}
	return evaluation.NewEvaluationListResponse(employeeID, bag), nil
}

// DeleteEvaluation implements evaluation.EvaluationService.
func (e *EvaluationServiceImpl) DeleteEvaluation(ctx context.Context, employeeID string, index int) (evaluation.EvaluationListResponse, error) {
	var bag evaluation.Bag
	err := e.store.Update(ctx, func(ctx context.Context) error {
		var err error
		bag, err = e.EvaluationRepository.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get evaluations: %w", err)
		}
		if index < 0 || index >= len(bag.Records) {
			return nil
		}
		bag.Records = append(bag.Records[:index], bag.Records[index+1:]...)
		return e.EvaluationRepository.Save(ctx, employeeID, bag)
	})
	if err != nil {
		return evaluation.EvaluationListResponse{}, err
	}
	return evaluation.NewEvaluationListResponse(employeeID, bag), nil
}
