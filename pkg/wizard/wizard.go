package wizard

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/security"
)

const defaultRendererName = "vanilla"

// CompletedForm pairs a step specification with its validated data.
type CompletedForm struct {
	Step form.StepSpec
	Data form.CleanedData
}

// Outcome describes what a submission produced: either a page to send back to
// the client, or, once the final step verifies, the ordered collection of
// validated step data. The collection is owned transiently by the caller and
// is not retained by the wizard.
type Outcome struct {
	// Done reports that every step validated and the traversal finished.
	Done bool
	// Forms holds the ordered validated data for all steps when Done is set.
	Forms []CompletedForm
	// Page is the rendered response when Done is not set.
	Page []byte
	// StepIndex is the step the page shows, or the final index when Done.
	StepIndex int
	// Tampered reports that Page is a tamper re-render of StepIndex.
	Tampered bool
}

// Wizard is the step continuity manager: it tracks which step a submission
// belongs to, verifies the integrity tags guarding previously validated data,
// and accumulates cleaned step data until the final step. All state travels
// in the request; a Wizard is safe for concurrent use once constructed.
type Wizard struct {
	def             *Definition
	tagger          security.Tagger
	registry        *render.Registry
	defaultRenderer string
	stepField       string
	action          string
	method          string
	tamperNotice    string
	templateFor     TemplateFunc
	process         ProcessFunc
	complete        CompletionFunc

	themeSelector  theme.ThemeSelector
	themeName      string
	themeVariant   string
	themeFallbacks map[string]string
	themeConfig    *render.ThemeConfig

	initErr error
}

// New constructs a Wizard for the given definition. A tagger (or secret) is
// mandatory; everything else falls back to built-in defaults: the vanilla
// HTML renderer, the "wizard_step" step field, POST submissions to "/".
func New(def *Definition, options ...Option) (*Wizard, error) {
	if def == nil {
		return nil, errors.New("wizard: definition is required")
	}

	w := &Wizard{
		def:             def,
		defaultRenderer: defaultRendererName,
		stepField:       defaultStepFieldName,
		action:          "/",
		method:          "POST",
		tamperNotice:    defaultTamperNotice,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.initErr != nil {
		return nil, w.initErr
	}

	if w.tagger == nil {
		return nil, errors.New("wizard: a tagger is required; use WithSecret or WithTagger")
	}

	if w.registry == nil {
		w.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("wizard: default renderer: %w", err)
		}
		w.registry.MustRegister(renderer)
	}
	if !w.registry.Has(w.defaultRenderer) {
		return nil, fmt.Errorf("wizard: renderer %q is not registered", w.defaultRenderer)
	}

	if w.themeSelector != nil {
		cfg, err := render.ResolveTheme(w.themeSelector, w.themeName, w.themeVariant, w.themeFallbacks)
		if err != nil {
			return nil, err
		}
		w.themeConfig = cfg
	}

	return w, nil
}

// Definition returns the wizard's step definition.
func (w *Wizard) Definition() *Definition {
	return w.def
}

// ContentType reports the content type of rendered pages.
func (w *Wizard) ContentType() string {
	renderer, err := w.registry.Get(w.defaultRenderer)
	if err != nil {
		return "text/html; charset=utf-8"
	}
	return renderer.ContentType()
}

// RenderStep produces the page for the given step index. The submitted values
// reconstruct all prior validated data, with freshly computed integrity tags,
// as hidden fields alongside the step index and total count.
func (w *Wizard) RenderStep(ctx context.Context, index int, values url.Values, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("wizard: context is required")
	}
	step, err := w.def.Step(index)
	if err != nil {
		return nil, err
	}

	hidden, err := hiddenState(w.def, w.tagger, values, index)
	if err != nil {
		return nil, err
	}

	if w.templateFor != nil {
		if name := w.templateFor(index, step); name != "" {
			step.Template = name
		}
	}

	page := render.Page{
		Step:      step,
		StepIndex: index,
		StepCount: w.def.StepCount(),
		Prefix:    stepPrefix(index),
		StepField: w.stepField,
		Action:    w.action,
		Method:    w.method,
		Hidden:    hidden,
	}

	if options.Theme == nil {
		options.Theme = w.themeConfig
	}

	renderer, err := w.registry.Get(w.defaultRenderer)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, page, options)
	if err != nil {
		return nil, fmt.Errorf("wizard: render step %d: %w", index, err)
	}
	return output, nil
}

// Submit processes one incoming submission. It verifies the integrity tag of
// every previously completed step, validates the current step, and either
// re-renders (tamper notice or field errors), advances to the next step, or
// finishes the traversal and invokes the completion handler.
//
// Recoverable conditions (tag mismatches and validation failures) produce a
// page, not an error. Errors are reserved for broken configuration and
// renderer failures.
func (w *Wizard) Submit(ctx context.Context, values url.Values) (Outcome, error) {
	if ctx == nil {
		return Outcome{}, errors.New("wizard: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	current := currentStep(values, w.stepField, w.def.StepCount())

	// Re-derive every prior step's tag before trusting the echoed data.
	for index := 0; index < current; index++ {
		if err := w.VerifyStep(index, values); err != nil {
			if !errors.Is(err, ErrTagMismatch) {
				return Outcome{}, err
			}
			step, stepErr := w.def.Step(index)
			if stepErr != nil {
				return Outcome{}, stepErr
			}
			return w.renderTamper(ctx, index, step, values)
		}
	}

	step, err := w.def.Step(current)
	if err != nil {
		return Outcome{}, err
	}

	cleaned, fieldErrs := form.CleanStep(step, values, stepPrefix(current))
	if len(fieldErrs) > 0 {
		page, err := w.RenderStep(ctx, current, values, render.RenderOptions{
			Values: echoValues(step, values, current),
			Errors: render.NormalizeFieldErrors(fieldErrs),
		})
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Page: page, StepIndex: current}, nil
	}

	var extra map[string]any
	if w.process != nil {
		extra, err = w.process(ctx, current, cloneData(cleaned))
		if err != nil {
			return Outcome{}, fmt.Errorf("wizard: process step %d: %w", current, err)
		}
	}

	if current == w.def.LastIndex() {
		forms, err := w.collectForms(values, current, cleaned)
		if err != nil {
			return Outcome{}, err
		}
		if w.complete != nil {
			if err := w.complete(ctx, forms); err != nil {
				return Outcome{}, fmt.Errorf("wizard: completion handler: %w", err)
			}
		}
		return Outcome{Done: true, Forms: forms, StepIndex: current}, nil
	}

	page, err := w.RenderStep(ctx, current+1, values, render.RenderOptions{Extra: extra})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Page: page, StepIndex: current + 1}, nil
}

// VerifyStep re-derives the integrity tag for a completed step from the
// echoed hidden data and compares it, in constant time, against the tag the
// client sent back. A missing or forged tag returns ErrTagMismatch.
func (w *Wizard) VerifyStep(index int, values url.Values) error {
	step, err := w.def.Step(index)
	if err != nil {
		return err
	}
	expected, err := w.tagger.Tag(index, dataForStep(step, values, index))
	if err != nil {
		return fmt.Errorf("wizard: tag step %d: %w", index, err)
	}
	echoed := values.Get(hashFieldName(index))
	if echoed == "" || !security.Equal(expected, echoed) {
		return fmt.Errorf("%w: step %d", ErrTagMismatch, index)
	}
	return nil
}

// renderTamper re-renders the step whose tag failed, echoing its submitted
// values so the client can review and resubmit. Steps before it have already
// verified and are carried along untouched.
func (w *Wizard) renderTamper(ctx context.Context, index int, step form.StepSpec, values url.Values) (Outcome, error) {
	page, err := w.RenderStep(ctx, index, values, render.RenderOptions{
		Values: echoValues(step, values, index),
		Notice: w.tamperNotice,
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Page: page, StepIndex: index, Tampered: true}, nil
}

// collectForms assembles the ordered validated data for every step. Prior
// steps already validated on their own submissions and their tags verified
// above; a failure here means the definition drifted mid-flight and is
// surfaced as an error rather than a re-render.
func (w *Wizard) collectForms(values url.Values, last int, lastCleaned form.CleanedData) ([]CompletedForm, error) {
	forms := make([]CompletedForm, 0, w.def.StepCount())
	for index := 0; index < last; index++ {
		step, err := w.def.Step(index)
		if err != nil {
			return nil, err
		}
		cleaned, fieldErrs := form.CleanStep(step, values, stepPrefix(index))
		if len(fieldErrs) > 0 {
			return nil, fmt.Errorf("wizard: step %d failed revalidation after its tag verified", index)
		}
		forms = append(forms, CompletedForm{Step: step, Data: cleaned})
	}

	step, err := w.def.Step(last)
	if err != nil {
		return nil, err
	}
	forms = append(forms, CompletedForm{Step: step, Data: lastCleaned})
	return forms, nil
}

func cloneData(data form.CleanedData) form.CleanedData {
	out := make(form.CleanedData, len(data))
	for key, value := range data {
		out[key] = value
	}
	return out
}
