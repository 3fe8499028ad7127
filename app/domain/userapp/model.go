package userapp

import (
	"encoding/json"
	"time"

	"github.com/polyladder/server/business/domain/memberbus"
)

// User represents information about an individual user. Games is present
// only when the caller holds the games:read scope.
type User struct {
	ID         string   `json:"id"`
	ExternalID int64    `json:"external_id"`
	Name       string   `json:"name"`
	Games      []string `json:"games,omitempty"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// Encode implements the encoder interface.
func (app User) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppUser(bus memberbus.Member) User {
	return User{
		ID:         bus.ID.String(),
		ExternalID: bus.ExternalID,
		Name:       bus.Name,
		CreatedAt:  bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  bus.UpdatedAt.Format(time.RFC3339),
	}
}
