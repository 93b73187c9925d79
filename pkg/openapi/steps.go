// Package openapi derives wizard step specifications from OpenAPI 3
// documents: a POST operation's request body becomes the field list of a
// step, with schema constraints mapped onto validation rules.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/form"
)

// requestMediaTypes lists the bodies a wizard can drive, in preference order.
var requestMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// StepFromOperation builds a step specification from the request body of the
// operation identified by operationID. The schema must be an object; its
// properties become fields in sorted name order, required members first.
func StepFromOperation(ctx context.Context, document []byte, operationID string) (form.StepSpec, error) {
	if err := ctx.Err(); err != nil {
		return form.StepSpec{}, err
	}
	if len(document) == 0 {
		return form.StepSpec{}, errors.New("openapi: document payload is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return form.StepSpec{}, errors.New("openapi: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(document)
	if err != nil {
		return form.StepSpec{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return form.StepSpec{}, errors.New("openapi: document does not contain any paths")
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return form.StepSpec{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return form.StepSpec{}, fmt.Errorf("openapi: operation %q has no usable request body schema", operationID)
	}
	if kind := firstSchemaType(schema.Type); kind != "" && kind != "object" {
		return form.StepSpec{}, fmt.Errorf("openapi: operation %q request body is %q, want object", operationID, kind)
	}
	if len(schema.Properties) == 0 {
		return form.StepSpec{}, fmt.Errorf("openapi: operation %q request body declares no properties", operationID)
	}

	step := form.StepSpec{
		Name:        operationID,
		Title:       operation.Summary,
		Description: operation.Description,
		Fields:      fieldsFromSchema(schema),
	}

	if err := form.ValidateSpec(step); err != nil {
		return form.StepSpec{}, err
	}
	return step, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		candidates := []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		}
		for _, operation := range candidates {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldsFromSchema(schema *openapi3.Schema) []form.Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	fields := make([]form.Field, 0, len(names))
	for _, name := range names {
		property := schema.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		fields = append(fields, fieldFromProperty(name, property.Value, required[name]))
	}
	return fields
}

func fieldFromProperty(name string, src *openapi3.Schema, required bool) form.Field {
	field := form.Field{
		Name:        name,
		Type:        fieldType(src),
		Format:      src.Format,
		Required:    required,
		Label:       src.Title,
		Description: src.Description,
	}

	if src.Default != nil {
		field.Default = stringifyValue(src.Default)
	}
	for _, candidate := range src.Enum {
		field.Enum = append(field.Enum, stringifyValue(candidate))
	}

	if src.Min != nil {
		field.Validations = append(field.Validations, numericRule(form.ValidationRuleMin, *src.Min))
	}
	if src.Max != nil {
		field.Validations = append(field.Validations, numericRule(form.ValidationRuleMax, *src.Max))
	}
	if src.MinLength != 0 {
		field.Validations = append(field.Validations, lengthRule(form.ValidationRuleMinLength, src.MinLength))
	}
	if src.MaxLength != nil {
		field.Validations = append(field.Validations, lengthRule(form.ValidationRuleMaxLength, *src.MaxLength))
	}
	if src.Pattern != "" {
		field.Validations = append(field.Validations, form.ValidationRule{
			Kind:   form.ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	return field
}

func fieldType(src *openapi3.Schema) form.FieldType {
	switch firstSchemaType(src.Type) {
	case "integer":
		return form.FieldTypeInteger
	case "number":
		return form.FieldTypeNumber
	case "boolean":
		return form.FieldTypeBoolean
	case "string":
		if src.Format == "binary" {
			return form.FieldTypeFile
		}
		return form.FieldTypeString
	default:
		return form.FieldTypeString
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func numericRule(kind string, value float64) form.ValidationRule {
	return form.ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatFloat(value, 'f', -1, 64)},
	}
}

func lengthRule(kind string, value uint64) form.ValidationRule {
	return form.ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatUint(value, 10)},
	}
}

func stringifyValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
