package wizard

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/security"
)

// Wire format, compatible with the classic form-wizard layout: the current
// step index travels in a single hidden input, step i's data is echoed back
// as "<i>-<field>" inputs, and step i's integrity tag as "hash_<i>".
const defaultStepFieldName = "wizard_step"

func hashFieldName(step int) string {
	return fmt.Sprintf("hash_%d", step)
}

func stepPrefix(step int) string {
	return strconv.Itoa(step)
}

// currentStep extracts the submitted step index, clamped into the definition.
// Anything unparsable counts as step zero, mirroring a client that lost its
// state.
func currentStep(values url.Values, stepField string, count int) int {
	parsed, err := strconv.Atoi(values.Get(stepField))
	if err != nil || parsed < 0 {
		return 0
	}
	if parsed >= count {
		return count - 1
	}
	return parsed
}

// dataForStep collects the raw submitted values belonging to one step, keyed
// by the prefixed input name. This is exactly the payload the tagger signs.
func dataForStep(step form.StepSpec, values url.Values, index int) map[string][]string {
	out := make(map[string][]string, len(step.Fields))
	for _, name := range step.FieldNames() {
		key := form.PrefixKey(stepPrefix(index), name)
		if raw, ok := values[key]; ok {
			out[key] = append([]string(nil), raw...)
		}
	}
	return out
}

// echoValues maps one step's submitted values back to bare field names so
// renderers can prefill the visible controls on a re-render.
func echoValues(step form.StepSpec, values url.Values, index int) map[string]any {
	out := make(map[string]any, len(step.Fields))
	for _, name := range step.FieldNames() {
		key := form.PrefixKey(stepPrefix(index), name)
		if raw, ok := values[key]; ok && len(raw) > 0 {
			out[name] = raw[0]
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// hiddenState reconstructs the carried state for every step before upTo: each
// prior step's data under its prefixed names plus a freshly computed
// integrity tag. Field order follows the definition so output is stable.
func hiddenState(def *Definition, tagger security.Tagger, values url.Values, upTo int) ([]render.HiddenField, error) {
	var fields []render.HiddenField
	for index := 0; index < upTo; index++ {
		step, err := def.Step(index)
		if err != nil {
			return nil, err
		}

		data := dataForStep(step, values, index)
		for _, name := range step.FieldNames() {
			key := form.PrefixKey(stepPrefix(index), name)
			for _, value := range data[key] {
				fields = append(fields, render.Hidden(key, value))
			}
		}

		tag, err := tagger.Tag(index, data)
		if err != nil {
			return nil, fmt.Errorf("wizard: tag step %d: %w", index, err)
		}
		fields = append(fields, render.TagField(hashFieldName(index), tag))
	}
	return fields, nil
}
