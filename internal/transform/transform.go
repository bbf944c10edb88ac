package transform

import (
	"fmt"

	"github.com/hanvion/healthcost/internal/domain"
)

// CoverageTransform modifies a scenario in one predictable way, for
// example switching to out-of-network care or raising the deductible.
// Transforms never mutate their input.
type CoverageTransform interface {
	// Apply returns a new scenario with the change applied.
	Apply(base *domain.Configuration) (*domain.Configuration, error)

	// Name returns a short identifier such as "set_network".
	Name() string

	// Description returns a human-readable summary of the change.
	Description() string

	// Validate checks the transform parameters against the scenario.
	Validate(base *domain.Configuration) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one. The base scenario is left untouched.
func ApplyTransforms(base *domain.Configuration, transforms []CoverageTransform) (*domain.Configuration, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := base.DeepCopy()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
