package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/teranga-immo/teranga/pkg/service/token"
)

// Auth holds CLI flags for session token configuration
type Auth struct {
	secret string `masq:"secret"`
	ttl    time.Duration
}

// Flags returns CLI flags for auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "HMAC secret for signing session tokens",
			Sources:     cli.EnvVars("TERANGA_TOKEN_SECRET"),
			Destination: &a.secret,
		},
		&cli.DurationFlag{
			Name:        "token-ttl",
			Usage:       "Session token lifetime",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("TERANGA_TOKEN_TTL"),
			Destination: &a.ttl,
		},
	}
}

// IsConfigured reports whether token authentication is enabled
func (a *Auth) IsConfigured() bool {
	return a.secret != ""
}

// Configure builds the token service
func (a *Auth) Configure() (*token.Service, error) {
	if a.secret == "" {
		return nil, goerr.New("token-secret is required")
	}
	if len(a.secret) < 16 {
		return nil, goerr.New("token-secret must be at least 16 bytes")
	}
	return token.New([]byte(a.secret), token.WithTTL(a.ttl)), nil
}
