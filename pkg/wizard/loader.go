package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/form"
)

// definitionDoc is the YAML shape of a wizard definition file.
type definitionDoc struct {
	Name  string    `yaml:"name"`
	Steps []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	Name        string     `yaml:"name"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Template    string     `yaml:"template"`
	Fields      []fieldDoc `yaml:"fields"`
}

// fieldDoc extends the field shape with a rules shorthand so definitions can
// say `rules: {minLength: "2"}` instead of spelling out rule objects.
type fieldDoc struct {
	form.Field `yaml:",inline"`
	Rules      map[string]string `yaml:"rules"`
}

// LoadDefinition parses a YAML wizard definition and validates it.
//
// The expected layout:
//
//	name: contact
//	steps:
//	  - name: message
//	    title: Your message
//	    fields:
//	      - name: subject
//	        type: string
//	        required: true
//	        rules:
//	          maxLength: "120"
func LoadDefinition(data []byte) (*Definition, error) {
	var doc definitionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("wizard: parse definition: %w", err)
	}

	steps := make([]form.StepSpec, 0, len(doc.Steps))
	for _, sd := range doc.Steps {
		step := form.StepSpec{
			Name:        sd.Name,
			Title:       sd.Title,
			Description: sd.Description,
			Template:    sd.Template,
		}
		for _, fd := range sd.Fields {
			field := fd.Field
			for kind, value := range fd.Rules {
				field.Validations = append(field.Validations, ruleFromShorthand(kind, value))
			}
			step.Fields = append(step.Fields, field)
		}
		steps = append(steps, step)
	}

	return NewDefinition(steps)
}

// LoadDefinitionFile reads and parses a YAML wizard definition from disk.
func LoadDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wizard: read definition: %w", err)
	}
	return LoadDefinition(data)
}

func ruleFromShorthand(kind, value string) form.ValidationRule {
	param := "value"
	if kind == "pattern" {
		param = "pattern"
	}
	return form.ValidationRule{
		Kind:   kind,
		Params: map[string]string{param: value},
	}
}
