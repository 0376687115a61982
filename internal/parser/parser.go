package parser

import (
	"fmt"
	"strings"

	"github.com/ledgerlift/statement-categoriser/internal/models"
)

// Parser is the contract a bank statement format implementation satisfies.
type Parser interface {
	// BankName returns the human-readable bank name.
	BankName() string
	// Detect inspects only the structural signature of the raw export (its
	// header tokens, not its data rows) and reports whether this parser can
	// handle it. It must never panic, including on empty input.
	Detect(raw string) bool
	// Parse converts the full raw export text into transaction records.
	Parse(raw string) ([]models.Transaction, error)
}

// Registry holds the registered parsers in registration order. Supporting a
// new export format means implementing Parser and appending it here; nothing
// else changes.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates a registry containing the given parsers.
func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

// Register appends a parser to the registry.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// DetectAndParse runs the first parser whose Detect accepts the input.
func (r *Registry) DetectAndParse(raw string) ([]models.Transaction, error) {
	for _, p := range r.parsers {
		if p.Detect(raw) {
			return p.Parse(raw)
		}
	}
	return nil, fmt.Errorf("unsupported statement format: no parser matched (supported: %s)",
		strings.Join(r.BankNames(), ", "))
}

// BankNames lists the registered bank names in registration order.
func (r *Registry) BankNames() []string {
	names := make([]string, 0, len(r.parsers))
	for _, p := range r.parsers {
		names = append(names, p.BankName())
	}
	return names
}

// Default returns a registry with all built-in parsers registered.
func Default() *Registry {
	return NewRegistry(&DBSParser{})
}
