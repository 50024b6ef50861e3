package apikeys

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultIssuer   = "supabase"
	DefaultRef      = "default"
	DefaultLifetime = 365 * 24 * time.Hour
)

// MinterConfig describes how API keys are signed.
type MinterConfig struct {
	// Secret must be non-empty; the HS256 signer rejects an empty key with
	// ErrCodeSigning.
	Secret []byte
	Issuer string
	Ref    string

	// Lifetime is added to iat to produce exp. Only DefaultLifetime yields the
	// 31,536,000 second expiry Supabase API keys are issued with.
	Lifetime time.Duration

	// StrictRoles rejects roles outside RoleAnon and RoleServiceRole.
	StrictRoles bool

	Now    func() time.Time
	Signer SignFunc
}

// normalize sets default values for optional fields.
func (c *MinterConfig) normalize() {
	if c.Issuer == "" {
		c.Issuer = DefaultIssuer
	}
	if c.Ref == "" {
		c.Ref = DefaultRef
	}
	if c.Lifetime == 0 {
		c.Lifetime = DefaultLifetime
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Signer == nil {
		c.Signer = signHS256
	}
}

// validate ensures the normalized configuration can produce keys with exp > iat.
func (c MinterConfig) validate() error {
	switch {
	case strings.TrimSpace(c.Issuer) == "":
		return errors.New("issuer must not be blank")
	case strings.TrimSpace(c.Ref) == "":
		return errors.New("ref must not be blank")
	case c.Lifetime < time.Second:
		return errors.New("lifetime must be at least one second")
	}
	return nil
}
