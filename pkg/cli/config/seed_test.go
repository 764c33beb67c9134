package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/teranga-immo/teranga/pkg/cli/config"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeedFile(t, `
[[actor]]
role = "admin"
first_name = "Awa"
last_name = "Ndiaye"
email = "awa@example.sn"

[[actor]]
role = "agent"
agent_type = "immobilier"
first_name = "Moussa"
last_name = "Diop"
email = "moussa@example.sn"
phone = "+221770000000"

[[actor]]
role = "agent"
first_name = "Fatou"
last_name = "Sall"
email = "fatou@example.sn"
`)

	seed, err := config.LoadSeed(path)
	gt.NoError(t, err).Required()
	gt.Array(t, seed.Actors).Length(3)

	admin := seed.Actors[0].ToActor()
	gt.Value(t, admin.Role).Equal(types.RoleAdmin)
	gt.Bool(t, admin.IsActive).True()
	gt.NoError(t, admin.PublicID.Validate())

	agent := seed.Actors[1].ToActor()
	gt.Value(t, agent.AgentType).Equal(types.AgentType(types.CategoryImmobilier))

	// untagged agent keeps the wildcard specialization
	wildcard := seed.Actors[2].ToActor()
	gt.Value(t, wildcard.AgentType).Equal(types.AgentTypeAny)
}

func TestLoadSeedRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty file",
			content: ``,
		},
		{
			name: "unknown role",
			content: `
[[actor]]
role = "superuser"
first_name = "X"
email = "x@example.sn"
`,
		},
		{
			name: "agent type on non-agent",
			content: `
[[actor]]
role = "admin"
agent_type = "immobilier"
first_name = "X"
email = "x@example.sn"
`,
		},
		{
			name: "missing email",
			content: `
[[actor]]
role = "admin"
first_name = "X"
`,
		},
		{
			name: "duplicate email",
			content: `
[[actor]]
role = "admin"
first_name = "X"
email = "x@example.sn"

[[actor]]
role = "gestionnaire"
first_name = "Y"
email = "x@example.sn"
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSeedFile(t, tc.content)
			_, err := config.LoadSeed(path)
			gt.Error(t, err)
		})
	}
}
