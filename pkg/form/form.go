package form

import internalform "github.com/goliatone/go-formwizard/internal/form"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalform.FieldType

const (
	FieldTypeString  = internalform.FieldTypeString
	FieldTypeInteger = internalform.FieldTypeInteger
	FieldTypeNumber  = internalform.FieldTypeNumber
	FieldTypeBoolean = internalform.FieldTypeBoolean
	FieldTypeFile    = internalform.FieldTypeFile
)

const (
	ValidationRuleMin       = internalform.ValidationRuleMin
	ValidationRuleMax       = internalform.ValidationRuleMax
	ValidationRuleMinLength = internalform.ValidationRuleMinLength
	ValidationRuleMaxLength = internalform.ValidationRuleMaxLength
	ValidationRulePattern   = internalform.ValidationRulePattern
)

type ValidationRule = internalform.ValidationRule
type Field = internalform.Field
type StepSpec = internalform.StepSpec
type CleanedData = internalform.CleanedData
type FieldErrors = internalform.FieldErrors

// CleanStep validates one step's submitted values; see the internal package
// for the conversion rules.
var CleanStep = internalform.CleanStep

// PrefixKey joins a step prefix and field name into a submitted input name.
var PrefixKey = internalform.PrefixKey

// ValidateSpec checks a step specification for construction-time mistakes.
var ValidateSpec = internalform.ValidateSpec
