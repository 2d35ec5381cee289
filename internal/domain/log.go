package domain

import "time"

type LogAction string

const (
	ActionAdded    LogAction = "Added"
	ActionBorrowed LogAction = "Borrowed"
	ActionReturned LogAction = "Returned"
	ActionRemoved  LogAction = "Removed"
)

// LogEntry is an immutable audit record of one action taken on a tool.
// ToolName is a denormalized copy so the entry survives tool deletion.
type LogEntry struct {
	ID           string    `json:"_id" gorm:"primaryKey"`
	ToolName     string    `json:"toolName"`
	BorrowerName string    `json:"borrowerName"`
	Action       LogAction `json:"action"`
	Date         time.Time `json:"date"`
}
