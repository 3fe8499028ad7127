// Package scope represents the API capability tokens in the system.
package scope

import (
	"sort"
	"strings"
)

// The set of scopes the API surfaces care about.
var (
	UsersRead = Scope("users:read")
	GamesRead = Scope("games:read")
	GamesNew  = Scope("games:new")
)

// Scope represents a single capability token granted to an API application.
type Scope string

// String returns the token form of the scope.
func (s Scope) String() string {
	return string(s)
}

// =============================================================================

// Set represents the unordered collection of scopes granted to a credential.
// Tokens are kept verbatim so the set round-trips exactly what was stored.
type Set map[Scope]struct{}

// ParseSet parses a whitespace-delimited token string into a set. Duplicates
// collapse and ordering is irrelevant.
func ParseSet(value string) Set {
	tokens := strings.Fields(value)

	set := make(Set, len(tokens))
	for _, tok := range tokens {
		set[Scope(tok)] = struct{}{}
	}

	return set
}

// Has reports whether the scope is present in the set.
func (s Set) Has(sc Scope) bool {
	_, exists := s[sc]
	return exists
}

// String returns the canonical whitespace-delimited form of the set.
func (s Set) String() string {
	tokens := make([]string, 0, len(s))
	for sc := range s {
		tokens = append(tokens, string(sc))
	}
	sort.Strings(tokens)

	return strings.Join(tokens, " ")
}

// Equal provides support for testing.
func (s Set) Equal(s2 Set) bool {
	if len(s) != len(s2) {
		return false
	}
	for sc := range s {
		if !s2.Has(sc) {
			return false
		}
	}
	return true
}
