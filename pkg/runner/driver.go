package runner

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted reports that the user interrupted the prompt flow.
var ErrAborted = errors.New("runner: aborted")

// PromptDriver abstracts the terminal prompts so the walk logic can be tested
// without a TTY.
type PromptDriver interface {
	Input(label, defaultValue string) (string, error)
	Password(label string) (string, error)
	Confirm(label string, defaultValue bool) (bool, error)
	Select(label string, options []string, defaultValue string) (string, error)
	TextArea(label string) (string, error)
}

// surveyDriver prompts on the controlling terminal via survey.
type surveyDriver struct{}

// NewSurveyDriver returns the default terminal-backed prompt driver.
func NewSurveyDriver() PromptDriver {
	return surveyDriver{}
}

func (surveyDriver) Input(label, defaultValue string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: label, Default: defaultValue}, &answer)
	return answer, translateSurveyErr(err)
}

func (surveyDriver) Password(label string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Password{Message: label}, &answer)
	return answer, translateSurveyErr(err)
}

func (surveyDriver) Confirm(label string, defaultValue bool) (bool, error) {
	answer := defaultValue
	err := survey.AskOne(&survey.Confirm{Message: label, Default: defaultValue}, &answer)
	return answer, translateSurveyErr(err)
}

func (surveyDriver) Select(label string, options []string, defaultValue string) (string, error) {
	var answer string
	prompt := &survey.Select{Message: label, Options: options}
	if defaultValue != "" {
		prompt.Default = defaultValue
	}
	err := survey.AskOne(prompt, &answer)
	return answer, translateSurveyErr(err)
}

func (surveyDriver) TextArea(label string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Multiline{Message: label}, &answer)
	return answer, translateSurveyErr(err)
}

func translateSurveyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
