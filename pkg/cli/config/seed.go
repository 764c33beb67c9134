package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// Seed represents the bootstrap account file. A fresh deployment has no
// actors, so staff and agent accounts are created from this file.
type Seed struct {
	Actors []SeedActor `toml:"actor"`
}

// SeedActor is a single account entry in the seed file
type SeedActor struct {
	Role      string `toml:"role"`
	AgentType string `toml:"agent_type"`
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Email     string `toml:"email"`
	Phone     string `toml:"phone"`
}

// Validate checks if the SeedActor is valid
func (a *SeedActor) Validate() error {
	role, err := types.ParseRole(a.Role)
	if err != nil {
		return goerr.Wrap(err, "invalid actor role", goerr.V("email", a.Email))
	}
	if _, err := types.ParseAgentType(a.AgentType); err != nil {
		return goerr.Wrap(err, "invalid agent type", goerr.V("email", a.Email))
	}
	if a.AgentType != "" && role != types.RoleAgent {
		return goerr.New("agent type is only valid for agents",
			goerr.V("email", a.Email), goerr.V("role", a.Role))
	}
	if a.FirstName == "" && a.LastName == "" {
		return goerr.New("actor name is required", goerr.V("email", a.Email))
	}
	if a.Email == "" {
		return goerr.New("actor email is required", goerr.V("name", a.FirstName+" "+a.LastName))
	}
	return nil
}

// Validate checks if the Seed is valid
func (s *Seed) Validate() error {
	if len(s.Actors) == 0 {
		return goerr.New("seed file defines no actors")
	}

	emails := make(map[string]bool)
	for _, actor := range s.Actors {
		if err := actor.Validate(); err != nil {
			return goerr.Wrap(err, "invalid seed actor")
		}
		if emails[actor.Email] {
			return goerr.New("duplicate actor email", goerr.V("email", actor.Email))
		}
		emails[actor.Email] = true
	}

	return nil
}

// ToActor converts a seed entry to a domain actor ready for creation
func (a *SeedActor) ToActor() *model.Actor {
	return &model.Actor{
		PublicID:  types.NewPublicID(),
		Role:      types.Role(a.Role),
		AgentType: types.AgentType(a.AgentType),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Phone:     a.Phone,
		IsActive:  true,
	}
}

// LoadSeed loads and validates a seed file from a TOML path
func LoadSeed(path string) (*Seed, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", path))
	}

	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML seed file", goerr.V("path", path))
	}

	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "seed validation failed", goerr.V("path", path))
	}

	return &seed, nil
}
