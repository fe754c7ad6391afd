package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (r *recordingSender) Send(ctx context.Context, n notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func newTestService(t *testing.T, sender notification.Sender) notification.Service {
	t.Helper()
	svc := NewNotificationService(sse.NewHub(8), sender, Config{FlushInterval: 10 * time.Millisecond, WorkerCount: 1})
	t.Cleanup(svc.Stop)
	return svc
}

func receive(t *testing.T, ch <-chan notification.NotificationResponse) notification.NotificationResponse {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return notification.NotificationResponse{}
	}
}

func TestQueueNotification_ReachesOwnerAndReviewers(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(t, sender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	staff, stopStaff := svc.Subscribe(ctx, user.EmployeeSession(employee.Employee{ID: "e1", Role: employee.RoleStaff}))
	defer stopStaff()
	admin, stopAdmin := svc.Subscribe(ctx, user.AdminSession())
	defer stopAdmin()
	other, stopOther := svc.Subscribe(ctx, user.EmployeeSession(employee.Employee{ID: "e2", Role: employee.RoleStaff}))
	defer stopOther()

	require.NoError(t, svc.QueueNotification(ctx, notification.CreateNotificationRequest{
		EmployeeID: "e1",
		Type:       notification.TypeTimesheetApproved,
		Title:      "Timesheet approved",
	}))

	got := receive(t, staff)
	assert.Equal(t, "e1", got.EmployeeID)
	assert.Equal(t, notification.TypeTimesheetApproved, got.Type)
	assert.NotEmpty(t, got.ID)

	assert.Equal(t, got.ID, receive(t, admin).ID)

	select {
	case n := <-other:
		t.Fatalf("unexpected notification for another employee: %+v", n)
	case <-time.After(50 * time.Millisecond):
	}

	assert.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSubscribe_ManagerReceivesOnce(t *testing.T) {
	svc := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, stop := svc.Subscribe(ctx, user.EmployeeSession(employee.Employee{ID: "m1", Role: employee.RoleManager}))
	defer stop()

	require.NoError(t, svc.QueueNotification(ctx, notification.CreateNotificationRequest{EmployeeID: "m1", Type: notification.TypeLeaveRequest}))
	receive(t, ch)

	select {
	case n := <-ch:
		t.Fatalf("duplicate delivery: %+v", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribe_PublicGetsClosedStream(t *testing.T) {
	svc := newTestService(t, nil)

	ch, stop := svc.Subscribe(context.Background(), user.PublicSession())
	defer stop()

	_, ok := <-ch
	assert.False(t, ok)
}

func TestQueueNotification_AfterStop(t *testing.T) {
	svc := NewNotificationService(sse.NewHub(8), nil, Config{})
	svc.Stop()

	err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{EmployeeID: "e1"})
	assert.ErrorIs(t, err, notification.ErrServiceStopped)
}
