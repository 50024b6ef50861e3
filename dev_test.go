package apikeys

import (
	"errors"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

func lookupFrom(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestResolveSecret_FromEnv(t *testing.T) {
	secret, err := ResolveSecret(lookupFrom(map[string]string{EnvSecret: "s3cr3t"}), EnvProduction, false)
	if err != nil {
		t.Fatalf("ResolveSecret: %v", err)
	}
	if secret.Default || string(secret.Value) != "s3cr3t" {
		t.Fatalf("unexpected secret: %+v", secret)
	}
}

func TestResolveSecret_DevFallback(t *testing.T) {
	for name, values := range map[string]map[string]string{
		"unset": {},
		"empty": {EnvSecret: ""},
	} {
		secret, err := ResolveSecret(lookupFrom(values), EnvDevelopment, false)
		if err != nil {
			t.Fatalf("%s: ResolveSecret: %v", name, err)
		}
		if !secret.Default || string(secret.Value) != DevSecret {
			t.Fatalf("%s: unexpected secret: %+v", name, secret)
		}
	}
}

func TestResolveSecret_DevFallbackStillMintsDecodableKey(t *testing.T) {
	secret, err := ResolveSecret(lookupFrom(nil), EnvDevelopment, false)
	if err != nil {
		t.Fatalf("ResolveSecret: %v", err)
	}
	m := newTestMinter(t, MinterConfig{Secret: secret.Value})
	token, err := m.Mint(RoleAnon)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := jwt.Parse([]byte(token), jwt.WithKey(jwa.HS256, []byte(DevSecret)), jwt.WithAcceptableSkew(time.Minute)); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestResolveSecret_ProductionRequiresOverride(t *testing.T) {
	_, err := ResolveSecret(lookupFrom(nil), EnvProduction, false)
	var mintErr *Error
	if !errors.As(err, &mintErr) || mintErr.Code != ErrCodeInsecureSecret {
		t.Fatalf("expected insecure_secret, got %v", err)
	}

	secret, err := ResolveSecret(lookupFrom(nil), EnvProduction, true)
	if err != nil {
		t.Fatalf("ResolveSecret with override: %v", err)
	}
	if !secret.Default {
		t.Fatal("expected development secret")
	}
}

func TestEnvironmentFromLookup(t *testing.T) {
	cases := map[string]Environment{
		"production":   EnvProduction,
		" Production ": EnvProduction,
		"staging":      EnvDevelopment,
		"":             EnvDevelopment,
	}
	for value, want := range cases {
		if got := EnvironmentFromLookup(lookupFrom(map[string]string{EnvEnvironment: value})); got != want {
			t.Fatalf("GO_ENV=%q: got %s, want %s", value, got, want)
		}
	}
	if got := EnvironmentFromLookup(lookupFrom(nil)); got != EnvDevelopment {
		t.Fatalf("unset GO_ENV: got %s", got)
	}
	if got := EnvironmentFromLookup(nil); got != EnvDevelopment {
		t.Fatalf("nil lookup: got %s", got)
	}
}

func TestKnownRole(t *testing.T) {
	if !KnownRole(RoleAnon) || !KnownRole(RoleServiceRole) {
		t.Fatal("built-in roles must be known")
	}
	if KnownRole("authenticated") || KnownRole("") {
		t.Fatal("unexpected known role")
	}
}
