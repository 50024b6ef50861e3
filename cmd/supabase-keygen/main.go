package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-utils-apikeys"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const redacted = "<redacted>"

var keys = []struct {
	role  string
	label string
}{
	{role: apikeys.RoleAnon, label: "ANON_KEY"},
	{role: apikeys.RoleServiceRole, label: "SERVICE_ROLE_KEY"},
}

// signer overrides the signing primitive in tests.
var signer apikeys.SignFunc

func main() {
	os.Exit(run(os.Args[1:], os.LookupEnv, os.Stdout, os.Stderr))
}

func run(args []string, lookup apikeys.LookupFunc, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("supabase-keygen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env", defaultEnvPath(lookup), "Optional .env file (env APIKEYS_ENV_FILE, default .env)")
	redact := fs.Bool("redact", false, "Print "+redacted+" instead of the keys")
	strictRoles := fs.Bool("strict-roles", false, "Reject roles other than anon and service_role")
	allowDev := fs.Bool("allow-dev-secret", false, "Allow the development secret when GO_ENV=production")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level, err := parseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -log-level: %v\n", err)
		fs.Usage()
		return 2
	}

	fileEnv, fileErr := readEnvFile(*envFile)
	lookup = layered(lookup, fileEnv)

	environment := apikeys.EnvironmentFromLookup(lookup)
	logger := newLogger(stderr, level, environment)
	if fileErr != nil {
		logger.Warn("could not load env file", "path", *envFile, "err", fileErr)
	}

	secret, err := apikeys.ResolveSecret(lookup, environment, *allowDev)
	if err != nil {
		logger.Error("resolve signing secret", "err", err)
		return 1
	}
	if secret.Default {
		// Not routed through the logger so -log-level cannot hide it.
		fmt.Fprintf(stderr, "warning: %s not set, signing with the public development secret (environment %s); do not use these keys outside local development\n",
			apikeys.EnvSecret, environment)
	}

	minter, err := apikeys.NewMinter(apikeys.MinterConfig{
		Secret:      secret.Value,
		StrictRoles: *strictRoles,
		Signer:      signer,
	})
	if err != nil {
		logger.Error("create minter", "err", err)
		return 1
	}

	now := time.Now()
	failed := 0
	for _, k := range keys {
		token, err := minter.MintAt(k.role, now)
		if err != nil {
			failed++
			logger.Error("mint failed", "role", k.role, "err", err)
			continue
		}
		if *redact {
			token = redacted
		}
		fmt.Fprintf(stdout, "%s=%s\n", k.label, token)
		logger.Debug("minted key", "role", k.role, "expires_at", minter.Claims(k.role, now).ExpiresAt)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func defaultEnvPath(lookup apikeys.LookupFunc) string {
	if path, ok := lookup("APIKEYS_ENV_FILE"); ok && path != "" {
		return path
	}
	return ".env"
}

// readEnvFile parses path without touching the process environment. A
// missing file yields no values and no error.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return values, nil
}

// layered prefers the process environment and falls back to file values.
func layered(lookup apikeys.LookupFunc, file map[string]string) apikeys.LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q (want debug, info, warn or error)", level)
}

func newLogger(w io.Writer, lvl slog.Level, environment apikeys.Environment) *slog.Logger {
	if environment == apikeys.EnvProduction {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
