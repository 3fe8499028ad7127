package appbus

import (
	"time"

	"github.com/polyladder/server/business/types/scope"
)

// App represents an API application credential and the scopes it was granted.
type App struct {
	ID         string
	SecretHash []byte
	Scopes     scope.Set
	Enabled    bool
	CreatedAt  time.Time
}

// NewApp contains information needed to register a new API application.
type NewApp struct {
	ID     string
	Secret string
	Scopes scope.Set
}
