package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lablend/internal/domain"
)

type ToolRepository struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

type toolModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	Name         string     `gorm:"column:name"`
	Category     string     `gorm:"column:category"`
	IsAvailable  bool       `gorm:"column:is_available"`
	BorrowerName string     `gorm:"column:borrower_name"`
	DueDate      *time.Time `gorm:"column:due_date"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (toolModel) TableName() string { return "tools" }

func toDomainTool(m toolModel) *domain.Tool {
	return &domain.Tool{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		IsAvailable:  m.IsAvailable,
		BorrowerName: m.BorrowerName,
		DueDate:      m.DueDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toToolModel(t *domain.Tool) toolModel {
	return toolModel{
		ID:           t.ID,
		Name:         t.Name,
		Category:     t.Category,
		IsAvailable:  t.IsAvailable,
		BorrowerName: t.BorrowerName,
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (r *ToolRepository) Create(ctx context.Context, t *domain.Tool) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m := toToolModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTool(m)
	return nil
}

func (r *ToolRepository) GetByID(ctx context.Context, id string) (*domain.Tool, error) {
	var m toolModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTool(m), nil
}

func (r *ToolRepository) GetAll(ctx context.Context) ([]domain.Tool, error) {
	var ms []toolModel
	tx := r.db.WithContext(ctx).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	tools := make([]domain.Tool, 0, len(ms))
	for _, m := range ms {
		tools = append(tools, *toDomainTool(m))
	}
	return tools, nil
}

// Search filters by case-insensitive name substring and/or exact
// category. Empty filters are not applied.
func (r *ToolRepository) Search(ctx context.Context, name, category string) ([]domain.Tool, error) {
	q := r.db.WithContext(ctx).Model(&toolModel{})
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var ms []toolModel
	if tx := q.Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}
	tools := make([]domain.Tool, 0, len(ms))
	for _, m := range ms {
		tools = append(tools, *toDomainTool(m))
	}
	return tools, nil
}

func (r *ToolRepository) Update(ctx context.Context, t *domain.Tool) error {
	m := toToolModel(t)
	// Updates with a map so clearing borrower/due date on return
	// actually writes the zero values.
	tx := r.db.WithContext(ctx).Model(&toolModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"name":          m.Name,
			"category":      m.Category,
			"is_available":  m.IsAvailable,
			"borrower_name": m.BorrowerName,
			"due_date":      m.DueDate,
			"updated_at":    time.Now(),
		})
	return tx.Error
}

func (r *ToolRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&toolModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
