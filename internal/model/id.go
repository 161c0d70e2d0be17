package model

import "github.com/google/uuid"

// NewID returns a prefixed unique id, e.g. "task_5f0c...".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
