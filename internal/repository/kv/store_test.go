package kv_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*kv.Store, *memory.Backend) {
	t.Helper()
	backend := memory.NewBackend()
	return kv.NewStore(backend), backend
}

func ms(v int64) *int64 { return &v }

func TestStore_CorruptValuesFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store, backend := newStore(t)
	for _, key := range kv.Keys {
		require.NoError(t, backend.Set(ctx, key, []byte("not json")))
	}

	ledger, err := kv.NewAttendanceRepository(store).GetLedger(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ledger)
	assert.Empty(t, ledger)

	employees, err := kv.NewEmployeeRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)

	approvals, err := kv.NewTimesheetRepository(store).GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, approvals)

	bag, err := kv.NewEvaluationRepository(store).GetByEmployeeID(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, bag.Records)

	leaves, err := kv.NewLeaveRequestRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, leaves)

	logs, err := kv.NewLogRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestStore_CorruptValueIsReplacedOnNextWrite(t *testing.T) {
	ctx := context.Background()
	store, backend := newStore(t)
	require.NoError(t, backend.Set(ctx, kv.KeyAttendance, []byte("not json")))

	repo := kv.NewAttendanceRepository(store)
	require.NoError(t, repo.SaveRecord(ctx, "2024-01-15", "e1", attendance.Record{In: ms(1)}))

	day, err := repo.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(1), *day["e1"].In)
}

func TestStore_NullValuesAreEmpty(t *testing.T) {
	ctx := context.Background()
	store, backend := newStore(t)
	require.NoError(t, backend.Set(ctx, kv.KeyAttendance, []byte("null")))
	require.NoError(t, backend.Set(ctx, kv.KeyEmployees, []byte("null")))

	ledger, err := kv.NewAttendanceRepository(store).GetLedger(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ledger)

	employees, err := kv.NewEmployeeRepository(store).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, employees)
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewEmployeeRepository(store)

	boom := errors.New("boom")
	err := store.Update(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, employee.Employee{Name: "Ayu", Email: "ayu@example.com"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	employees, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)
}

func TestStore_ConcurrentWritesAreSerialized(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewAttendanceRepository(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			assert.NoError(t, repo.SaveRecord(ctx, "2024-01-15", id, attendance.Record{In: ms(int64(i))}))
		}(i)
	}
	wg.Wait()

	day, err := repo.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Len(t, day, 20)
}

func TestStore_NestedViewWithWaitingWriter(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewAttendanceRepository(store)

	writerDone := make(chan error, 1)
	viewDone := make(chan error, 1)
	go func() {
		viewDone <- store.View(ctx, func(viewCtx context.Context) error {
			go func() {
				writerDone <- repo.SaveRecord(ctx, "2024-01-15", "e1", attendance.Record{In: ms(1)})
			}()
			// give the writer time to queue on the lock
			time.Sleep(50 * time.Millisecond)
			_, err := repo.GetDay(viewCtx, "2024-01-15")
			return err
		})
	}()

	select {
	case err := <-viewDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("nested view blocked behind a waiting writer")
	}
	select {
	case err := <-writerDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("writer never finished")
	}

	day, err := repo.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(1), *day["e1"].In)
}

func TestStore_UpdateInsideViewIsRejected(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewAttendanceRepository(store)

	err := store.View(ctx, func(ctx context.Context) error {
		return repo.SaveRecord(ctx, "2024-01-15", "e1", attendance.Record{In: ms(1)})
	})
	assert.ErrorIs(t, err, kv.ErrWriteInView)
}

func TestStore_ConcurrentViewsAndWrites(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewAttendanceRepository(store)
	employees := kv.NewEmployeeRepository(store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				for n := 0; n < 50; n++ {
					assert.NoError(t, store.View(ctx, func(ctx context.Context) error {
						if _, err := employees.List(ctx); err != nil {
							return err
						}
						_, err := repo.GetDay(ctx, "2024-01-15")
						return err
					}))
				}
			}(i)
			go func(i int) {
				defer wg.Done()
				id := string(rune('a' + i))
				for n := 0; n < 50; n++ {
					assert.NoError(t, repo.SaveRecord(ctx, "2024-01-15", id, attendance.Record{In: ms(int64(n))}))
				}
			}(i)
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(20 * time.Second):
		t.Fatal("concurrent readers and writers did not finish")
	}
}

func TestEmployeeRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewEmployeeRepository(store)

	created, err := repo.Create(ctx, employee.Employee{Name: "Ayu", Email: "Ayu@Example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByEmail(ctx, "ayu@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	created.Name = "Ayu Lestari"
	require.NoError(t, repo.Update(ctx, created))
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayu Lestari", got.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestTimesheetRepository_DeleteByEmployeeID(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewTimesheetRepository(store)

	pending := timesheet.Approval{Status: timesheet.StatusPending}
	require.NoError(t, repo.Save(ctx, timesheet.WeekKey("e1", "2024-01-15"), pending))
	require.NoError(t, repo.Save(ctx, timesheet.WeekKey("e1", "2024-01-22"), pending))
	require.NoError(t, repo.Save(ctx, timesheet.WeekKey("e1_x", "2024-01-15"), pending))

	require.NoError(t, repo.DeleteByEmployeeID(ctx, "e1"))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, timesheet.WeekKey("e1_x", "2024-01-15"))

	a, err := repo.Get(ctx, timesheet.WeekKey("e1", "2024-01-15"))
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusDraft, a.Status)
}

func TestEvaluationRepository_MissingBagIsEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := kv.NewEvaluationRepository(store)

	bag, err := repo.GetByEmployeeID(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, bag.Records)

	require.NoError(t, repo.Save(ctx, "e1", evaluation.Bag{Records: []evaluation.Evaluation{{Date: "2024-01-15", Discipline: 5, Skill: 4, Communication: 3}}}))
	require.NoError(t, repo.DeleteByEmployeeID(ctx, "e1"))
	bag, err = repo.GetByEmployeeID(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, bag.Records)
}
