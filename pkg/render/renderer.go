package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/form"
)

// Page is the unit renderers consume: one wizard step plus the carried state
// the browser must echo back on the next submission.
type Page struct {
	// Step is the specification for the page being shown.
	Step form.StepSpec
	// StepIndex is the zero-based index of Step inside the definition.
	StepIndex int
	// StepCount is the total number of steps in the definition.
	StepCount int
	// Prefix namespaces the visible inputs (e.g. "1" renders "1-subject").
	Prefix string
	// StepField names the hidden input carrying StepIndex.
	StepField string
	// Action and Method describe the form submission target.
	Action string
	Method string
	// Hidden reconstructs all previously validated data plus integrity tags.
	// Order is preserved; names may repeat for multi-valued fields.
	Hidden []HiddenField
}

// Renderer converts a Page into a byte representation (HTML for the built-in
// vanilla renderer).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
