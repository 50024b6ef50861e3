package apikeys

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SignFunc serializes token and signs it with key, returning the compact form.
type SignFunc func(token jwt.Token, key []byte) ([]byte, error)

func signHS256(token jwt.Token, key []byte) ([]byte, error) {
	return jwt.Sign(token, jwt.WithKey(jwa.HS256, key))
}

// Minter issues HS256 API keys for Supabase roles. It holds no mutable state
// and is safe for concurrent use.
type Minter struct {
	cfg MinterConfig
}

// NewMinter validates cfg and returns a Minter.
func NewMinter(cfg MinterConfig) (*Minter, error) {
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, newError(ErrCodeInvalidConfig, "", err)
	}
	cfg.Secret = append([]byte(nil), cfg.Secret...)
	return &Minter{cfg: cfg}, nil
}

// Claims returns the claims MintAt signs for role at now.
func (m *Minter) Claims(role string, now time.Time) Claims {
	iat := time.Unix(now.Unix(), 0).UTC()
	return Claims{
		Issuer:    m.cfg.Issuer,
		Ref:       m.cfg.Ref,
		Role:      role,
		IssuedAt:  iat,
		ExpiresAt: iat.Add(m.cfg.Lifetime),
	}
}

// Mint issues a key for role using the configured clock.
func (m *Minter) Mint(role string) (string, error) {
	return m.MintAt(role, m.cfg.Now())
}

// MintAt issues a key for role with iat set to now. Equal inputs produce
// byte-identical keys.
func (m *Minter) MintAt(role string, now time.Time) (string, error) {
	if m.cfg.StrictRoles && !KnownRole(role) {
		return "", newError(ErrCodeInvalidRole, role, fmt.Errorf("role must be %q or %q", RoleAnon, RoleServiceRole))
	}

	claims := m.Claims(role, now)
	token, err := jwt.NewBuilder().
		Issuer(claims.Issuer).
		IssuedAt(claims.IssuedAt).
		Expiration(claims.ExpiresAt).
		Claim("ref", claims.Ref).
		Claim("role", claims.Role).
		Build()
	if err != nil {
		return "", newError(ErrCodeSigning, role, fmt.Errorf("build claims: %w", err))
	}

	signed, err := m.cfg.Signer(token, m.cfg.Secret)
	if err != nil {
		return "", newError(ErrCodeSigning, role, err)
	}
	return string(signed), nil
}
