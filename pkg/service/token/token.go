package token

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

const issuer = "teranga"

// Service signs and verifies session tokens. Tokens carry only the
// actor's public ID; the actor record is always re-read on each request
// so deactivation takes effect immediately.
type Service struct {
	secret []byte
	ttl    time.Duration
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

func New(secret []byte, opts ...Option) *Service {
	s := &Service{
		secret: secret,
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue returns a signed token for the actor
func (s *Service) Issue(actor *model.Actor) (string, error) {
	now := time.Now().UTC()
	tok, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(string(actor.PublicID)).
		IssuedAt(now).
		Expiration(now.Add(s.ttl)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// Verify parses and validates a token, returning the actor's public ID
func (s *Service) Verify(raw string) (types.PublicID, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", goerr.Wrap(err, "invalid token")
	}
	if tok.Subject() == "" {
		return "", goerr.New("token has no subject")
	}
	return types.PublicID(tok.Subject()), nil
}
