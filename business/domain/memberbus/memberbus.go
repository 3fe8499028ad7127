// Package memberbus provides business access to the members the system has
// recorded. Members are written as a side effect of game creation; this
// package only reads them back.
package memberbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/polyladder/server/foundation/logger"
	"github.com/polyladder/server/foundation/otel"
)

// ErrNotFound is returned when a member is not found.
var ErrNotFound = errors.New("member not found")

// Storer defines the behavior required by the memberbus to interact with the
// database.
type Storer interface {
	QueryByExternalID(ctx context.Context, externalID int64) (Member, error)
	QueryGameIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error)
}

// Core manages the set of APIs for member access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for member api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// QueryByExternalID finds the member identified by the given external id.
func (c *Core) QueryByExternalID(ctx context.Context, externalID int64) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.querybyexternalid")
	defer span.End()

	mbr, err := c.storer.QueryByExternalID(ctx, externalID)
	if err != nil {
		return Member{}, fmt.Errorf("query: externalID[%d]: %w", externalID, err)
	}

	return mbr, nil
}

// QueryGameIDs finds the ids of the games the member has taken part in,
// oldest first.
func (c *Core) QueryGameIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.querygameids")
	defer span.End()

	ids, err := c.storer.QueryGameIDs(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("query: memberID[%s]: %w", memberID, err)
	}

	return ids, nil
}
