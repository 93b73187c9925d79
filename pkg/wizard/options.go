package wizard

import (
	"context"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/security"
)

// TemplateFunc chooses the template name for a step. Returning "" keeps the
// renderer's default.
type TemplateFunc func(stepIndex int, step form.StepSpec) string

// ProcessFunc runs after a step validates. It receives a copy of the cleaned
// data, so mutations never reach the accumulated state, and may return extra
// context for rendering the next step.
type ProcessFunc func(ctx context.Context, stepIndex int, data form.CleanedData) (map[string]any, error)

// CompletionFunc receives the ordered, validated data for every step exactly
// once, after the final step verifies.
type CompletionFunc func(ctx context.Context, forms []CompletedForm) error

// Option customises a Wizard.
type Option func(*Wizard)

// WithTagger injects the integrity tag strategy.
func WithTagger(tagger security.Tagger) Option {
	return func(w *Wizard) {
		if tagger != nil {
			w.tagger = tagger
		}
	}
}

// WithSecret wires the default HMAC tagger with the given secret. The secret
// is process-wide configuration injected at startup; an empty secret fails
// construction.
func WithSecret(secret []byte) Option {
	return func(w *Wizard) {
		tagger, err := security.NewHMACTagger(secret)
		if err != nil {
			w.initErr = err
			return
		}
		w.tagger = tagger
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(w *Wizard) {
		if registry != nil {
			w.registry = registry
		}
	}
}

// WithRenderer registers a renderer and makes it the default.
func WithRenderer(renderer render.Renderer) Option {
	return func(w *Wizard) {
		if renderer == nil {
			return
		}
		if w.registry == nil {
			w.registry = render.NewRegistry()
		}
		if err := w.registry.Register(renderer); err != nil {
			w.initErr = err
			return
		}
		w.defaultRenderer = renderer.Name()
	}
}

// WithDefaultRenderer overrides which registered renderer produces pages.
func WithDefaultRenderer(name string) Option {
	return func(w *Wizard) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			w.defaultRenderer = trimmed
		}
	}
}

// WithStepFieldName overrides the hidden input carrying the step index.
func WithStepFieldName(name string) Option {
	return func(w *Wizard) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			w.stepField = trimmed
		}
	}
}

// WithAction sets the URL the step forms submit to. It doubles as the route
// path when the wizard is mounted with RegisterRoutes.
func WithAction(path string) Option {
	return func(w *Wizard) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			w.action = trimmed
		}
	}
}

// WithTamperNotice overrides the message shown when an integrity tag fails to
// verify.
func WithTamperNotice(message string) Option {
	return func(w *Wizard) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			w.tamperNotice = trimmed
		}
	}
}

// WithTemplateFunc installs the per-step template selection hook.
func WithTemplateFunc(fn TemplateFunc) Option {
	return func(w *Wizard) {
		w.templateFor = fn
	}
}

// WithProcessFunc installs the post-step inspection hook.
func WithProcessFunc(fn ProcessFunc) Option {
	return func(w *Wizard) {
		w.process = fn
	}
}

// WithCompletion installs the completion handler invoked with the full
// ordered collection of validated step data.
func WithCompletion(fn CompletionFunc) Option {
	return func(w *Wizard) {
		w.complete = fn
	}
}

// WithThemeSelector resolves the named theme/variant through a go-theme
// selector and passes the resulting configuration to renderers.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(w *Wizard) {
		w.themeSelector = selector
		w.themeName = name
		w.themeVariant = variant
	}
}

// WithThemeFallbacks supplies fallback partials used when a theme manifest
// leaves template slots empty.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(w *Wizard) {
		if len(fallbacks) == 0 {
			return
		}
		if w.themeFallbacks == nil {
			w.themeFallbacks = make(map[string]string, len(fallbacks))
		}
		for key, value := range fallbacks {
			w.themeFallbacks[key] = value
		}
	}
}
