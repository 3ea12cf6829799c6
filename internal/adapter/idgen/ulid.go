// Package idgen provides identifier generation for ledger records.
package idgen

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator implements usecase.IDGenerator with lexicographically
// sortable ULIDs, so record IDs order by creation time.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
