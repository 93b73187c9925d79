package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the wizard definition.
type RenderOptions struct {
	// Values pre-populates the visible controls, keyed by bare field name.
	Values map[string]any
	// Errors surfaces validation feedback keyed by bare field name.
	Errors map[string][]string
	// Notice is a form-level message, e.g. the tamper warning shown after an
	// integrity tag failed to verify.
	Notice string
	// Extra carries context supplied by the post-step inspection hook.
	Extra map[string]any
	// Theme carries resolved theme configuration when a selector is wired.
	Theme *ThemeConfig
}
