package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/form"
)

// Definition is an immutable, ordered sequence of step specifications. It
// fixes the total step count and the field layout of every page.
type Definition struct {
	steps []form.StepSpec
}

// NewDefinition validates the step sequence and returns a Definition. File
// fields are rejected on any step but the last: intermediate state has to
// round-trip through hidden text inputs, which file inputs cannot do.
func NewDefinition(steps []form.StepSpec) (*Definition, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("wizard: definition requires at least one step")
	}

	seen := make(map[string]struct{}, len(steps))
	for index, step := range steps {
		if err := form.ValidateSpec(step); err != nil {
			return nil, fmt.Errorf("wizard: step %d: %w", index, err)
		}
		name := strings.TrimSpace(step.Name)
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("wizard: duplicate step name %q", name)
		}
		seen[name] = struct{}{}

		if step.HasFileFields() && index != len(steps)-1 {
			return nil, fmt.Errorf("wizard: step %d (%s) declares file fields; they are only allowed on the final step", index, name)
		}
	}

	return &Definition{steps: append([]form.StepSpec(nil), steps...)}, nil
}

// StepCount returns the total number of steps.
func (d *Definition) StepCount() int {
	return len(d.steps)
}

// LastIndex returns the zero-based index of the final step.
func (d *Definition) LastIndex() int {
	return len(d.steps) - 1
}

// Step returns the specification at index.
func (d *Definition) Step(index int) (form.StepSpec, error) {
	if index < 0 || index >= len(d.steps) {
		return form.StepSpec{}, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, index, len(d.steps))
	}
	return d.steps[index], nil
}

// Steps returns a copy of the ordered step specifications.
func (d *Definition) Steps() []form.StepSpec {
	return append([]form.StepSpec(nil), d.steps...)
}
