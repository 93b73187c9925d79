// Package runner walks a wizard definition on the terminal, prompting for one
// field at a time and applying the same validation the HTTP flow uses.
package runner

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Runner drives a definition interactively. No integrity tags are involved:
// the accumulated state never leaves the process.
type Runner struct {
	def      *wizard.Definition
	driver   PromptDriver
	out      io.Writer
	complete wizard.CompletionFunc
}

// Option customises a Runner.
type Option func(*Runner)

// WithDriver swaps the prompt driver. Mostly useful for tests.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput redirects step headings and validation messages.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		if out != nil {
			r.out = out
		}
	}
}

// WithCompletion installs a handler invoked once with the ordered validated
// data after the final step.
func WithCompletion(fn wizard.CompletionFunc) Option {
	return func(r *Runner) {
		r.complete = fn
	}
}

// New constructs a Runner over the given definition.
func New(def *wizard.Definition, options ...Option) (*Runner, error) {
	if def == nil {
		return nil, fmt.Errorf("runner: definition is required")
	}
	r := &Runner{
		def:    def,
		driver: NewSurveyDriver(),
		out:    os.Stdout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Run walks every step in order and returns the validated data. Steps with
// validation failures are re-prompted until they pass or the user aborts.
func (r *Runner) Run(ctx context.Context) ([]wizard.CompletedForm, error) {
	forms := make([]wizard.CompletedForm, 0, r.def.StepCount())

	for index := 0; index < r.def.StepCount(); index++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step, err := r.def.Step(index)
		if err != nil {
			return nil, err
		}

		r.printHeading(step, index)

		cleaned, err := r.runStep(ctx, step)
		if err != nil {
			return nil, err
		}
		forms = append(forms, wizard.CompletedForm{Step: step, Data: cleaned})
	}

	if r.complete != nil {
		if err := r.complete(ctx, forms); err != nil {
			return nil, fmt.Errorf("runner: completion handler: %w", err)
		}
	}
	return forms, nil
}

func (r *Runner) printHeading(step form.StepSpec, index int) {
	title := step.Title
	if title == "" {
		title = step.Name
	}
	fmt.Fprintf(r.out, "\n%s (step %d of %d)\n", title, index+1, r.def.StepCount())
	if step.Description != "" {
		fmt.Fprintln(r.out, step.Description)
	}
}

func (r *Runner) runStep(ctx context.Context, step form.StepSpec) (form.CleanedData, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values := url.Values{}
		for _, field := range step.Fields {
			answer, err := r.promptField(field)
			if err != nil {
				return nil, err
			}
			values.Set(field.Name, answer)
		}

		cleaned, fieldErrs := form.CleanStep(step, values, "")
		if len(fieldErrs) == 0 {
			return cleaned, nil
		}

		for _, field := range step.Fields {
			for _, message := range fieldErrs[field.Name] {
				fmt.Fprintf(r.out, "%s: %s\n", field.Name, message)
			}
		}
	}
}

func (r *Runner) promptField(field form.Field) (string, error) {
	label := field.Label
	if label == "" {
		label = field.Name
	}

	switch {
	case field.Type == form.FieldTypeBoolean:
		checked, err := r.driver.Confirm(label, isTruthyDefault(field.Default))
		if err != nil {
			return "", err
		}
		if checked {
			return "on", nil
		}
		return "", nil

	case len(field.Enum) > 0:
		return r.driver.Select(label, field.Enum, field.Default)

	case field.Format == "password":
		return r.driver.Password(label)

	case field.Format == "textarea":
		return r.driver.TextArea(label)

	default:
		return r.driver.Input(label, field.Default)
	}
}

func isTruthyDefault(value string) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}
