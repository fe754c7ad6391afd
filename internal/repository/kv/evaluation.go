package kv

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
)

type evaluationRepositoryImpl struct {
	store *Store
}

func NewEvaluationRepository(store *Store) evaluation.EvaluationRepository {
	return &evaluationRepositoryImpl{store: store}
}

func (r *evaluationRepositoryImpl) load(ctx context.Context) (evaluation.Book, error) {
	book, err := load(ctx, r.store, KeyEvaluations, func() evaluation.Book { return evaluation.Book{} })
	if err != nil {
		return nil, err
	}
	if book == nil {
		book = evaluation.Book{}
	}
	return book, nil
}

// GetByEmployeeID implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (evaluation.Bag, error) {
	var bag evaluation.Bag
	err := r.store.View(ctx, func(ctx context.Context) error {
		book, err := r.load(ctx)
		if err != nil {
			return err
		}
		bag = book[employeeID]
		return nil
	})
	if bag.Records == nil {
		bag.Records = []evaluation.Evaluation{}
	}
	return bag, err
}

// Save implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) Save(ctx context.Context, employeeID string, bag evaluation.Bag) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		book, err := r.load(ctx)
		if err != nil {
			return err
		}
		book[employeeID] = bag
		return save(ctx, r.store, KeyEvaluations, book)
	})
}

// DeleteByEmployeeID implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		book, err := r.load(ctx)
		if err != nil {
			return err
		}
		if _, ok := book[employeeID]; !ok {
			return nil
		}
		delete(book, employeeID)
		return save(ctx, r.store, KeyEvaluations, book)
	})
}
