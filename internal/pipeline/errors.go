package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// EntryNotFoundError means the requested entry ID has no row.
type EntryNotFoundError struct {
	ID uuid.UUID
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("entry not found: %s", e.ID)
}
