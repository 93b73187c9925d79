package form

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	msgRequired      = "this field is required"
	msgInteger       = "enter a whole number"
	msgNumber        = "enter a number"
	msgNotAChoice    = "select a valid choice"
	msgInvalidFormat = "enter a valid value"
)

// PrefixKey joins a step prefix and a bare field name into the submitted input
// name. An empty prefix leaves the name untouched.
func PrefixKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}

// CleanStep converts the submitted values for one step into typed data,
// applying required checks, enum membership, and the declared validation
// rules. It returns the cleaned data plus any per-field messages; the input
// values are never mutated.
func CleanStep(step StepSpec, values url.Values, prefix string) (CleanedData, FieldErrors) {
	cleaned := make(CleanedData, len(step.Fields))
	errs := FieldErrors{}

	for _, field := range step.Fields {
		raw, present := values[PrefixKey(prefix, field.Name)]
		value, messages := cleanField(field, raw, present)
		if len(messages) > 0 {
			errs[field.Name] = messages
			continue
		}
		if value != nil {
			cleaned[field.Name] = value
		}
	}

	if len(errs) == 0 {
		return cleaned, nil
	}
	return cleaned, errs
}

func cleanField(field Field, raw []string, present bool) (any, []string) {
	first := ""
	if len(raw) > 0 {
		first = strings.TrimSpace(raw[0])
	}

	switch field.Type {
	case FieldTypeBoolean:
		checked := present && isTruthy(first)
		if field.Required && !checked {
			return nil, []string{msgRequired}
		}
		return checked, nil

	case FieldTypeInteger:
		if first == "" {
			return requireEmpty(field)
		}
		parsed, err := strconv.ParseInt(first, 10, 64)
		if err != nil {
			return nil, []string{msgInteger}
		}
		if msgs := checkNumericRules(field, float64(parsed)); len(msgs) > 0 {
			return nil, msgs
		}
		return parsed, nil

	case FieldTypeNumber:
		if first == "" {
			return requireEmpty(field)
		}
		parsed, err := strconv.ParseFloat(first, 64)
		if err != nil {
			return nil, []string{msgNumber}
		}
		if msgs := checkNumericRules(field, parsed); len(msgs) > 0 {
			return nil, msgs
		}
		return parsed, nil

	default:
		// string and file fields clean as text; file fields carry the
		// submitted filename, byte handling belongs to the caller.
		if first == "" && field.Default != "" {
			first = field.Default
		}
		if first == "" {
			return requireEmpty(field)
		}
		if msgs := checkStringRules(field, first); len(msgs) > 0 {
			return nil, msgs
		}
		if len(field.Enum) > 0 && !containsString(field.Enum, first) {
			return nil, []string{msgNotAChoice}
		}
		return first, nil
	}
}

func requireEmpty(field Field) (any, []string) {
	if field.Required {
		return nil, []string{msgRequired}
	}
	return nil, nil
}

func checkNumericRules(field Field, value float64) []string {
	var messages []string
	for _, rule := range field.Validations {
		threshold, ok := ruleFloat(rule)
		switch rule.Kind {
		case ValidationRuleMin:
			if ok && value < threshold {
				messages = append(messages, fmt.Sprintf("must be at least %s", rule.Params["value"]))
			}
		case ValidationRuleMax:
			if ok && value > threshold {
				messages = append(messages, fmt.Sprintf("must be at most %s", rule.Params["value"]))
			}
		}
	}
	return messages
}

func checkStringRules(field Field, value string) []string {
	var messages []string
	length := utf8.RuneCountInString(value)
	for _, rule := range field.Validations {
		switch rule.Kind {
		case ValidationRuleMinLength:
			if threshold, ok := ruleInt(rule); ok && length < threshold {
				messages = append(messages, fmt.Sprintf("must be at least %d characters", threshold))
			}
		case ValidationRuleMaxLength:
			if threshold, ok := ruleInt(rule); ok && length > threshold {
				messages = append(messages, fmt.Sprintf("must be at most %d characters", threshold))
			}
		case ValidationRulePattern:
			expr := rule.Params["pattern"]
			if expr == "" {
				continue
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				// Bad patterns are rejected when the definition is built;
				// skip rather than fail the submission here.
				continue
			}
			if !re.MatchString(value) {
				messages = append(messages, msgInvalidFormat)
			}
		}
	}
	return messages
}

func ruleFloat(rule ValidationRule) (float64, bool) {
	raw, ok := rule.Params["value"]
	if !ok {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func ruleInt(rule ValidationRule) (int, bool) {
	raw, ok := rule.Params["value"]
	if !ok {
		return 0, false
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

func containsString(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

// ValidateSpec checks a step specification for construction-time mistakes:
// missing names, duplicate fields, unparsable pattern rules.
func ValidateSpec(step StepSpec) error {
	if strings.TrimSpace(step.Name) == "" {
		return fmt.Errorf("form: step name is required")
	}
	if len(step.Fields) == 0 {
		return fmt.Errorf("form: step %q declares no fields", step.Name)
	}

	seen := make(map[string]struct{}, len(step.Fields))
	for _, field := range step.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("form: step %q has a field without a name", step.Name)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("form: step %q declares field %q twice", step.Name, name)
		}
		seen[name] = struct{}{}

		switch field.Type {
		case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeBoolean, FieldTypeFile, "":
		default:
			return fmt.Errorf("form: step %q field %q has unknown type %q", step.Name, name, field.Type)
		}

		for _, rule := range field.Validations {
			if rule.Kind != ValidationRulePattern {
				continue
			}
			if _, err := regexp.Compile(rule.Params["pattern"]); err != nil {
				return fmt.Errorf("form: step %q field %q pattern: %w", step.Name, name, err)
			}
		}
	}
	return nil
}
