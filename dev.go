package apikeys

import (
	"errors"
	"strings"
)

// DevSecret is the signing secret shipped with the local Supabase stack.
// It is public; keys signed with it must never reach a deployed project.
const DevSecret = "cb485308485e3e45edffd4ece3c8aaae5a599905f48715e97017f6bc446fce2a"

const (
	EnvSecret      = "JWT_SECRET"
	EnvEnvironment = "GO_ENV"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Environment is the deployment environment the process runs in.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// EnvironmentFromLookup reads GO_ENV. Anything other than "production" is development.
func EnvironmentFromLookup(lookup LookupFunc) Environment {
	if lookup == nil {
		return EnvDevelopment
	}
	if v, ok := lookup(EnvEnvironment); ok && strings.EqualFold(strings.TrimSpace(v), string(EnvProduction)) {
		return EnvProduction
	}
	return EnvDevelopment
}

// Secret is a resolved signing secret.
type Secret struct {
	Value []byte
	// Default is true when Value is DevSecret because JWT_SECRET was unset.
	Default bool
}

// ResolveSecret returns JWT_SECRET, or DevSecret when it is unset or empty.
// Outside development the fallback requires allowDev.
func ResolveSecret(lookup LookupFunc, env Environment, allowDev bool) (Secret, error) {
	if lookup != nil {
		if v, ok := lookup(EnvSecret); ok && v != "" {
			return Secret{Value: []byte(v)}, nil
		}
	}
	if env == EnvProduction && !allowDev {
		return Secret{}, newError(ErrCodeInsecureSecret, "",
			errors.New(EnvSecret+" is not set and the development secret is not allowed in "+string(env)))
	}
	return Secret{Value: []byte(DevSecret), Default: true}, nil
}
