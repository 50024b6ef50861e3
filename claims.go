package apikeys

import "time"

// Roles understood by the Supabase API gateway.
const (
	RoleAnon        = "anon"
	RoleServiceRole = "service_role"
)

var knownRoles = map[string]struct{}{
	RoleAnon:        {},
	RoleServiceRole: {},
}

// KnownRole reports whether role is one of the roles PostgREST maps API keys to.
func KnownRole(role string) bool {
	_, ok := knownRoles[role]
	return ok
}

// Claims is the payload signed into an API key.
type Claims struct {
	Issuer    string
	Ref       string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
