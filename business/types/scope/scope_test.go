package scope_test

import (
	"testing"

	"github.com/polyladder/server/business/types/scope"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	set := scope.ParseSet("users:read games:read games:new")

	require.Len(t, set, 3)
	require.True(t, set.Has(scope.UsersRead))
	require.True(t, set.Has(scope.GamesRead))
	require.True(t, set.Has(scope.GamesNew))
	require.False(t, set.Has(scope.Scope("admin")))
}

func TestParseSetRoundTrip(t *testing.T) {
	set := scope.ParseSet("games:read  users:read\tgames:read")

	require.True(t, set.Equal(scope.ParseSet(set.String())), "a set survives the string round trip")
	require.Equal(t, "games:read users:read", set.String())
}

func TestParseSetEmpty(t *testing.T) {
	require.Empty(t, scope.ParseSet(""))
	require.Empty(t, scope.ParseSet("   "))
}

func TestSetKeepsUnknownTokens(t *testing.T) {
	// The store owns the vocabulary; unknown tokens pass through untouched.
	set := scope.ParseSet("future:scope")
	require.True(t, set.Has(scope.Scope("future:scope")))
}
