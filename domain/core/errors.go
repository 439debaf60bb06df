package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrMalformedRow   = errors.New("malformed annotation row")
	ErrUnknownGene    = errors.New("module gene not in annotation universe")
	ErrUnknownTerm    = errors.New("term not in ontology")
	ErrCyclicOntology = errors.New("ontology contains a cycle")
	ErrMalformedOBO   = errors.New("malformed OBO document")
	ErrMalformedPair  = errors.New("malformed ontology pair")

	// Numeric errors
	ErrInvalidParameters     = errors.New("invalid distribution parameters")
	ErrDegenerateConditional = errors.New("conditional normalisation is zero")

	// Simulation errors
	ErrModuleTooLarge = errors.New("module larger than gene universe")
)

// Error constructors with context
func NewMalformedRowError(row, width, need int) error {
	return fmt.Errorf("%w: row %d has %d columns, need at least %d", ErrMalformedRow, row, width, need)
}

func NewUnknownGeneError(gene string) error {
	return fmt.Errorf("%w: %s", ErrUnknownGene, gene)
}

func NewCycleError(terms []string) error {
	return fmt.Errorf("%w: %v", ErrCyclicOntology, terms)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrMalformedRow) ||
		errors.Is(err, ErrUnknownGene) ||
		errors.Is(err, ErrUnknownTerm) ||
		errors.Is(err, ErrCyclicOntology) ||
		errors.Is(err, ErrMalformedOBO) ||
		errors.Is(err, ErrMalformedPair)
}

func IsNumericError(err error) bool {
	return errors.Is(err, ErrInvalidParameters) ||
		errors.Is(err, ErrDegenerateConditional)
}
