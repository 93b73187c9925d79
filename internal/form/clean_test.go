package form

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func contactStep() StepSpec {
	return StepSpec{
		Name: "contact",
		Fields: []Field{
			{Name: "subject", Type: FieldTypeString, Required: true, Validations: []ValidationRule{
				{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": "10"}},
			}},
			{Name: "sender", Type: FieldTypeString, Required: true, Validations: []ValidationRule{
				{Kind: ValidationRulePattern, Params: map[string]string{"pattern": `^[^@\s]+@[^@\s]+$`}},
			}},
			{Name: "copies", Type: FieldTypeInteger, Validations: []ValidationRule{
				{Kind: ValidationRuleMin, Params: map[string]string{"value": "1"}},
				{Kind: ValidationRuleMax, Params: map[string]string{"value": "5"}},
			}},
			{Name: "urgent", Type: FieldTypeBoolean},
		},
	}
}

func TestCleanStep_ValidSubmission(t *testing.T) {
	values := url.Values{
		"0-subject": {"hello"},
		"0-sender":  {" a@b.test "},
		"0-copies":  {"3"},
		"0-urgent":  {"on"},
	}

	cleaned, errs := CleanStep(contactStep(), values, "0")
	if errs != nil {
		t.Fatalf("unexpected errors: %#v", errs)
	}

	want := CleanedData{
		"subject": "hello",
		"sender":  "a@b.test",
		"copies":  int64(3),
		"urgent":  true,
	}
	if diff := cmp.Diff(want, cleaned); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanStep_CollectsFieldErrors(t *testing.T) {
	values := url.Values{
		"0-subject": {"this subject is far too long"},
		"0-sender":  {"not-an-email"},
		"0-copies":  {"twelve"},
	}

	_, errs := CleanStep(contactStep(), values, "0")
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"subject", "sender", "copies"} {
		if len(errs[field]) == 0 {
			t.Fatalf("expected error for %q, got %#v", field, errs)
		}
	}
	if len(errs["urgent"]) != 0 {
		t.Fatalf("unchecked optional boolean should not error: %#v", errs["urgent"])
	}
}

func TestCleanStep_RequiredAndDefaults(t *testing.T) {
	step := StepSpec{
		Name: "prefs",
		Fields: []Field{
			{Name: "name", Type: FieldTypeString, Required: true},
			{Name: "theme", Type: FieldTypeString, Default: "light", Enum: []string{"light", "dark"}},
		},
	}

	cleaned, errs := CleanStep(step, url.Values{}, "")
	if len(errs["name"]) == 0 {
		t.Fatalf("missing required field should error, got %#v", errs)
	}
	if cleaned["theme"] != "light" {
		t.Fatalf("expected default applied, got %#v", cleaned["theme"])
	}

	_, errs = CleanStep(step, url.Values{"name": {"x"}, "theme": {"solarized"}}, "")
	if len(errs["theme"]) == 0 {
		t.Fatalf("enum violation should error, got %#v", errs)
	}
}

func TestCleanStep_NumericBounds(t *testing.T) {
	step := StepSpec{
		Name: "amounts",
		Fields: []Field{
			{Name: "ratio", Type: FieldTypeNumber, Validations: []ValidationRule{
				{Kind: ValidationRuleMin, Params: map[string]string{"value": "0.5"}},
			}},
		},
	}

	if _, errs := CleanStep(step, url.Values{"ratio": {"0.25"}}, ""); len(errs["ratio"]) == 0 {
		t.Fatalf("expected min violation, got %#v", errs)
	}
	cleaned, errs := CleanStep(step, url.Values{"ratio": {"0.75"}}, "")
	if errs != nil {
		t.Fatalf("unexpected errors: %#v", errs)
	}
	if cleaned["ratio"] != 0.75 {
		t.Fatalf("unexpected cleaned value: %#v", cleaned["ratio"])
	}
}

func TestValidateSpec(t *testing.T) {
	cases := []struct {
		name    string
		step    StepSpec
		wantErr bool
	}{
		{"valid", contactStep(), false},
		{"missing name", StepSpec{Fields: []Field{{Name: "a"}}}, true},
		{"no fields", StepSpec{Name: "empty"}, true},
		{"duplicate field", StepSpec{Name: "dup", Fields: []Field{{Name: "a"}, {Name: "a"}}}, true},
		{"unknown type", StepSpec{Name: "odd", Fields: []Field{{Name: "a", Type: "blob"}}}, true},
		{"bad pattern", StepSpec{Name: "re", Fields: []Field{{Name: "a", Validations: []ValidationRule{
			{Kind: ValidationRulePattern, Params: map[string]string{"pattern": "("}},
		}}}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSpec(tc.step)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPrefixKey(t *testing.T) {
	if got := PrefixKey("2", "message"); got != "2-message" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := PrefixKey("", "message"); got != "message" {
		t.Fatalf("unexpected key: %q", got)
	}
}
