package domain

import "time"

const DefaultCategory = "General"

// Tool is a piece of lab equipment tracked by the registry.
// BorrowerName and DueDate are only set while the tool is lent out.
type Tool struct {
	ID           string     `json:"_id" gorm:"primaryKey"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	IsAvailable  bool       `json:"isAvailable"`
	BorrowerName string     `json:"borrowerName"`
	DueDate      *time.Time `json:"dueDate"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}
