package memberbus

import (
	"time"

	"github.com/google/uuid"
)

// Member represents an individual who has taken part in at least one game.
// The external id ties the record back to the membership universe.
type Member struct {
	ID         uuid.UUID
	ExternalID int64
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
