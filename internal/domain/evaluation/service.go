package evaluation

import "context"

type EvaluationService interface {
	AddEvaluation(ctx context.Context, req CreateEvaluationRequest) (EvaluationListResponse, error)
	ListEvaluations(ctx context.Context, employeeID string) (EvaluationListResponse, error)
	// DeleteEvaluation removes the record at index; unknown employees and indexes are ignored
	DeleteEvaluation(ctx context.Context, employeeID string, index int) (EvaluationListResponse, error)
}
