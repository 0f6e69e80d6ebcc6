package markov

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus is returned when a corpus yields no usable training sequences.
	ErrEmptyCorpus = errors.New("markov: corpus contains no usable names")
	// ErrInvalidOrder matches any *InvalidOrderError.
	ErrInvalidOrder = errors.New("markov: invalid chain order")
	// ErrGenerationExhausted matches any *GenerationExhaustedError.
	ErrGenerationExhausted = errors.New("markov: generation attempts exhausted")
	// ErrInvalidCount is returned when fewer than one name is requested.
	ErrInvalidCount = errors.New("markov: count must be a positive integer")
)

// InvalidOrderError reports a chain order that is not a positive integer.
type InvalidOrderError struct {
	Order int
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("markov: invalid chain order %d, must be at least 1", e.Order)
}

// Is reports whether target is ErrInvalidOrder.
func (e *InvalidOrderError) Is(target error) bool {
	return target == ErrInvalidOrder
}

// GenerationExhaustedError is returned when the acceptance policy could not be
// satisfied within the attempt budget. No partial results accompany it.
type GenerationExhaustedError struct {
	Requested int
	Accepted  int
	Attempts  int
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("markov: accepted only %d of %d names after %d attempts", e.Accepted, e.Requested, e.Attempts)
}

// Is reports whether target is ErrGenerationExhausted.
func (e *GenerationExhaustedError) Is(target error) bool {
	return target == ErrGenerationExhausted
}
