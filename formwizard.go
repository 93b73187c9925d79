// Package formwizard splits a long form across several pages. Each page
// validates on its own submission; previously entered data travels back to
// the client in hidden inputs guarded by HMAC integrity tags, so the server
// holds no per-client state between steps.
package formwizard

import (
	"net/http"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Definition is an ordered, validated sequence of step specifications.
type Definition = wizard.Definition

// Wizard drives a multi-step traversal over a Definition.
type Wizard = wizard.Wizard

// CompletedForm pairs a step specification with its validated data.
type CompletedForm = wizard.CompletedForm

// Outcome is the result of processing one submission.
type Outcome = wizard.Outcome

// Option customises a Wizard.
type Option = wizard.Option

// StepSpec describes one page: its name, title, template, and fields.
type StepSpec = form.StepSpec

// Field describes a single input and its validation rules.
type Field = form.Field

// CleanedData is the typed, validated data of one step.
type CleanedData = form.CleanedData

// NewDefinition validates the step sequence and returns a Definition.
func NewDefinition(steps []StepSpec) (*Definition, error) {
	return wizard.NewDefinition(steps)
}

// LoadDefinition parses a YAML wizard definition.
var LoadDefinition = wizard.LoadDefinition

// LoadDefinitionFile reads and parses a YAML wizard definition from disk.
var LoadDefinitionFile = wizard.LoadDefinitionFile

// New constructs a Wizard; see the wizard package for the available options.
func New(def *Definition, options ...Option) (*Wizard, error) {
	return wizard.New(def, options...)
}

// WithSecret wires the default HMAC tagger with the given secret.
var WithSecret = wizard.WithSecret

// WithCompletion installs the completion handler invoked once with the full
// ordered collection of validated step data.
var WithCompletion = wizard.WithCompletion

// WithAction sets the URL the step forms submit to.
var WithAction = wizard.WithAction

// Handler exposes a wizard over HTTP: GET renders the first step, POST drives
// the traversal.
func Handler(wz *Wizard, done wizard.CompletionHandlerFunc) http.Handler {
	return wz.Handler(done)
}
