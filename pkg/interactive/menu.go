// Package interactive provides terminal user interface components
package interactive

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
)

// ErrNoSelection is returned when the user selects no tests
var ErrNoSelection = errors.New("no tests selected")

// SelectTests prompts the user to pick a subset of test ids to run.
// The returned order follows the prompt order (registration order).
func SelectTests(ids []string) ([]string, error) {
	var selected []string

	prompt := &survey.MultiSelect{
		Message:  "Which tests would you like to run?",
		Options:  ids,
		PageSize: 15,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}

	if len(selected) == 0 {
		return nil, ErrNoSelection
	}

	return selected, nil
}

// Confirm asks for user confirmation
func Confirm(message string) bool {
	confirmed := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	_ = survey.AskOne(prompt, &confirmed)
	return confirmed
}
