package history

import (
	"context"

	"lablend/internal/domain"
)

// LogReader abstracts audit-log reads for testing
type LogReader interface {
	GetAll(ctx context.Context) ([]domain.LogEntry, error)
}

type Service struct {
	logs LogReader
}

func NewService(logs LogReader) *Service {
	return &Service{logs: logs}
}

// List returns every lending action ever made, newest first.
func (s *Service) List(ctx context.Context) ([]domain.LogEntry, error) {
	return s.logs.GetAll(ctx)
}
