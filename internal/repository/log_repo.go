package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lablend/internal/domain"
)

type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

type logModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	ToolName     string    `gorm:"column:tool_name"`
	BorrowerName string    `gorm:"column:borrower_name"`
	Action       string    `gorm:"column:action"`
	Date         time.Time `gorm:"column:date"`
}

func (logModel) TableName() string { return "log_entries" }

func toDomainLog(m logModel) domain.LogEntry {
	return domain.LogEntry{
		ID:           m.ID,
		ToolName:     m.ToolName,
		BorrowerName: m.BorrowerName,
		Action:       domain.LogAction(m.Action),
		Date:         m.Date,
	}
}

func (r *LogRepository) Create(ctx context.Context, e *domain.LogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	m := logModel{
		ID:           e.ID,
		ToolName:     e.ToolName,
		BorrowerName: e.BorrowerName,
		Action:       string(e.Action),
		Date:         e.Date,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// GetAll returns every entry, most recent first.
func (r *LogRepository) GetAll(ctx context.Context) ([]domain.LogEntry, error) {
	var ms []logModel
	tx := r.db.WithContext(ctx).Order("date DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	entries := make([]domain.LogEntry, 0, len(ms))
	for _, m := range ms {
		entries = append(entries, toDomainLog(m))
	}
	return entries, nil
}
