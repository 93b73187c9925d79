package render

import "strings"

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return NormalizeMessages(combined)
}

// NormalizeMessages trims, de-duplicates, and drops empty messages while
// preserving first-seen order. Wizard field names are flat, so no path
// translation is needed before renderers consume the result.
func NormalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeFieldErrors applies NormalizeMessages to every field entry,
// dropping fields whose messages all normalise away.
func NormalizeFieldErrors(errors map[string][]string) map[string][]string {
	if len(errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errors))
	for field, messages := range errors {
		key := strings.TrimSpace(field)
		if key == "" {
			continue
		}
		if normalized := NormalizeMessages(messages); len(normalized) > 0 {
			out[key] = normalized
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
