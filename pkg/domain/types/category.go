package types

import "github.com/m-mizutani/goerr/v2"

// RequestCategory is the specialization a request demands from its agent
type RequestCategory string

const (
	CategoryImmobilier     RequestCategory = "immobilier"
	CategoryConstructeur   RequestCategory = "constructeur"
	CategoryInvestissement RequestCategory = "investissement"
)

// AllRequestCategories returns all valid request categories
func AllRequestCategories() []RequestCategory {
	return []RequestCategory{
		CategoryImmobilier,
		CategoryConstructeur,
		CategoryInvestissement,
	}
}

// IsValid checks if the request category is valid
func (c RequestCategory) IsValid() bool {
	switch c {
	case CategoryImmobilier, CategoryConstructeur, CategoryInvestissement:
		return true
	default:
		return false
	}
}

// String returns the string representation of the request category
func (c RequestCategory) String() string {
	return string(c)
}

// AgentType is an agent's declared specialization tag. The empty value is a
// wildcard: an untagged agent may be assigned to any category.
type AgentType string

const AgentTypeAny AgentType = ""

// IsValid checks if the agent type is valid (empty is allowed)
func (t AgentType) IsValid() bool {
	return t == AgentTypeAny || RequestCategory(t).IsValid()
}

// Covers reports whether an agent with this tag may take a request of the
// given category.
func (t AgentType) Covers(category RequestCategory) bool {
	return t == AgentTypeAny || RequestCategory(t) == category
}

// String returns the string representation of the agent type
func (t AgentType) String() string {
	return string(t)
}

// ParseAgentType parses a string into an AgentType
func ParseAgentType(s string) (AgentType, error) {
	t := AgentType(s)
	if !t.IsValid() {
		return "", goerr.Wrap(ErrValidation, "invalid agent type", goerr.V("value", s))
	}
	return t, nil
}
