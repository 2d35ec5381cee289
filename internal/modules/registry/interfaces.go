package registry

import (
	"context"

	"lablend/internal/domain"
)

// ToolRepositoryInterface abstracts tool persistence for testing
type ToolRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Tool) error
	GetByID(ctx context.Context, id string) (*domain.Tool, error)
	GetAll(ctx context.Context) ([]domain.Tool, error)
	Search(ctx context.Context, name, category string) ([]domain.Tool, error)
	Update(ctx context.Context, t *domain.Tool) error
	Delete(ctx context.Context, id string) error
}

// LogWriter is the audit-log side of the registry.
type LogWriter interface {
	Create(ctx context.Context, e *domain.LogEntry) error
}
