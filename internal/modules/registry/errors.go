package registry

import "errors"

var (
	ErrToolNotFound = errors.New("tool not found")
	ErrNameRequired = errors.New("tool name is required")
)
