package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// ConstructionQuote is an agent's priced offer on a construction project
type ConstructionQuote struct {
	ID        int64
	PublicID  types.PublicID
	ProjectID int64
	AgentID   int64

	QuoteNumber  string
	TotalAmount  decimal.Decimal
	Currency     string
	ValidityDays int
	Notes        string

	Status      types.QuoteStatus
	SentAt      *time.Time
	RespondedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewQuoteNumber generates a human-readable quote reference,
// e.g. "QT-20260828-0042".
func NewQuoteNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(9999))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 9999)
	}
	return fmt.Sprintf("QT-%s-%04d", now.Format("20060102"), n.Int64()+1)
}
