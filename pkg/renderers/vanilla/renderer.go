package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	gotemplate "github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
)

const defaultTemplate = "templates/wizard_step"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces a complete HTML page for one wizard step: visible inputs
// for the current step, hidden inputs reconstructing all prior state, and the
// step progress chrome.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := page.Step.Template
	if name == "" {
		name = defaultTemplate
	}
	if theme := options.Theme; theme != nil {
		if partial, ok := theme.Partials["wizard.step"]; ok && partial != "" {
			name = partial
		}
	}

	result, err := r.templates.RenderTemplate(name, pageContext(page, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func pageContext(page render.Page, options render.RenderOptions) map[string]any {
	fields := make([]any, 0, len(page.Step.Fields))
	for _, field := range page.Step.Fields {
		fields = append(fields, fieldContext(page, field, options))
	}

	hidden := make([]any, 0, len(page.Hidden))
	for _, hf := range page.Hidden {
		hidden = append(hidden, map[string]any{
			"name":  hf.Name,
			"value": hf.Value,
		})
	}

	ctx := map[string]any{
		"title":       sanitizeText(page.Step.Title),
		"description": sanitizeProse(page.Step.Description),
		"step_name":   page.Step.Name,
		"step_index":  page.StepIndex,
		"step_number": page.StepIndex + 1,
		"step_count":  page.StepCount,
		"is_last":     page.StepIndex == page.StepCount-1,
		"action":      page.Action,
		"method":      page.Method,
		"step_field":  page.StepField,
		"notice":      options.Notice,
		"fields":      fields,
		"hidden":      hidden,
		"multipart":   page.Step.HasFileFields(),
	}
	if len(options.Extra) > 0 {
		ctx["extra"] = options.Extra
	}
	if options.Theme != nil {
		ctx["theme"] = map[string]any{
			"name":     options.Theme.Theme,
			"variant":  options.Theme.Variant,
			"css_vars": options.Theme.CSSVars,
		}
	}
	return map[string]any{"page": ctx}
}

func fieldContext(page render.Page, field form.Field, options render.RenderOptions) map[string]any {
	value := ""
	if raw, ok := options.Values[field.Name]; ok && raw != nil {
		value = fmt.Sprint(raw)
	} else if field.Default != "" {
		value = field.Default
	}

	widget := widgetFor(field)

	var choices []any
	if widget == "select" {
		choices = make([]any, 0, len(field.Enum))
		for _, option := range field.Enum {
			choices = append(choices, map[string]any{
				"value":    option,
				"label":    sanitizeText(option),
				"selected": option == value,
			})
		}
	}

	var messages []any
	for _, message := range render.NormalizeMessages(options.Errors[field.Name]) {
		messages = append(messages, message)
	}

	return map[string]any{
		"name":        form.PrefixKey(page.Prefix, field.Name),
		"id":          "id_" + form.PrefixKey(page.Prefix, field.Name),
		"label":       labelFor(field),
		"widget":      widget,
		"value":       value,
		"checked":     widget == "checkbox" && value != "" && value != "false" && value != "0",
		"required":    field.Required,
		"placeholder": sanitizeText(field.Placeholder),
		"description": sanitizeProse(field.Description),
		"options":     choices,
		"errors":      messages,
	}
}

func widgetFor(field form.Field) string {
	if len(field.Enum) > 0 && field.Type != form.FieldTypeBoolean {
		return "select"
	}
	switch field.Type {
	case form.FieldTypeBoolean:
		return "checkbox"
	case form.FieldTypeInteger, form.FieldTypeNumber:
		return "number"
	case form.FieldTypeFile:
		return "file"
	}
	switch field.Format {
	case "password":
		return "password"
	case "email":
		return "email"
	case "textarea":
		return "textarea"
	case "hidden":
		return "hidden"
	}
	return "text"
}

func labelFor(field form.Field) string {
	if label := sanitizeText(field.Label); label != "" {
		return label
	}
	return field.Name
}
