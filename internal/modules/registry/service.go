package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"lablend/internal/domain"
)

// Every borrow runs for a fixed week.
const lendPeriod = 7 * 24 * time.Hour

// adminActor is recorded on Returned, Added and Removed entries,
// which are all admin-side actions.
const adminActor = "Lab Admin"

type Service struct {
	tools ToolRepositoryInterface
	logs  LogWriter
}

func NewService(tools ToolRepositoryInterface, logs LogWriter) *Service {
	return &Service{tools: tools, logs: logs}
}

// AddTool creates an available tool and logs an Added entry.
func (s *Service) AddTool(ctx context.Context, req AddToolRequest) (*domain.Tool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	tool := &domain.Tool{
		Name:        name,
		Category:    category,
		IsAvailable: true,
	}
	if err := s.tools.Create(ctx, tool); err != nil {
		return nil, err
	}

	if err := s.appendLog(ctx, tool.Name, adminActor, domain.ActionAdded); err != nil {
		return nil, err
	}

	return tool, nil
}

func (s *Service) ListTools(ctx context.Context) ([]domain.Tool, error) {
	return s.tools.GetAll(ctx)
}

func (s *Service) SearchTools(ctx context.Context, name, category string) ([]domain.Tool, error) {
	return s.tools.Search(ctx, name, category)
}

// Borrow marks the tool as lent to borrowerName with a due date a week
// out. The fields are overwritten regardless of current availability,
// so borrowing an already-lent tool silently reassigns it.
func (s *Service) Borrow(ctx context.Context, toolID, borrowerName string) (*domain.Tool, error) {
	tool, err := s.tools.GetByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}

	due := time.Now().Add(lendPeriod)
	tool.IsAvailable = false
	tool.BorrowerName = borrowerName
	tool.DueDate = &due

	if err := s.tools.Update(ctx, tool); err != nil {
		return nil, err
	}

	// The log append is a separate write; if it fails the borrow has
	// already landed and the caller sees a server error (best-effort
	// audit trail).
	if err := s.appendLog(ctx, tool.Name, borrowerName, domain.ActionBorrowed); err != nil {
		return nil, err
	}

	return tool, nil
}

// Return clears the borrower fields and logs a Returned entry with the
// admin actor. Returning an already-available tool is a no-op with a
// log entry.
func (s *Service) Return(ctx context.Context, toolID string) (*domain.Tool, error) {
	tool, err := s.tools.GetByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}

	tool.IsAvailable = true
	tool.BorrowerName = ""
	tool.DueDate = nil

	if err := s.tools.Update(ctx, tool); err != nil {
		return nil, err
	}

	if err := s.appendLog(ctx, tool.Name, adminActor, domain.ActionReturned); err != nil {
		return nil, err
	}

	return tool, nil
}

// DeleteTool permanently removes the record and logs a Removed entry.
func (s *Service) DeleteTool(ctx context.Context, toolID string) error {
	tool, err := s.tools.GetByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrToolNotFound
		}
		return err
	}

	if err := s.tools.Delete(ctx, toolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrToolNotFound
		}
		return err
	}

	return s.appendLog(ctx, tool.Name, adminActor, domain.ActionRemoved)
}

func (s *Service) appendLog(ctx context.Context, toolName, actor string, action domain.LogAction) error {
	return s.logs.Create(ctx, &domain.LogEntry{
		ToolName:     toolName,
		BorrowerName: actor,
		Action:       action,
		Date:         time.Now(),
	})
}
