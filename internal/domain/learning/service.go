package learning

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

type LearningService interface {
	CreateLog(ctx context.Context, req CreateLogRequest) (LogResponse, error)
	ListLogs(ctx context.Context, caps user.Capabilities, filter LogFilter) ([]LogResponse, error)
	GetLog(ctx context.Context, id string) (LogResponse, error)
	CommentLog(ctx context.Context, req CommentLogRequest, reviewer user.Session) (LogResponse, error)
	DeleteLog(ctx context.Context, id string) error
}
