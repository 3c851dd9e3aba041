// SPDX-License-Identifier: MIT

package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks struct tags and the rules tags cannot express.
func Validate(s *Scenario) error {
	if s == nil {
		return fmt.Errorf("%w: nil scenario", ErrInvalidScenario)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, formatValidationError(err))
	}
	for i, st := range s.Steps {
		switch {
		case st.Op == OpConnector && len(st.Sides) == 0:
			return fmt.Errorf("%w: step %d: connector needs sides", ErrInvalidScenario, i)
		case st.Op != OpConnector && len(st.Sides) != 0:
			return fmt.Errorf("%w: step %d: sides only apply to connectors", ErrInvalidScenario, i)
		}
	}
	return nil
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	e := errs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", e.Namespace())
	case "len":
		return fmt.Errorf("%s: must have exactly %s elements", e.Namespace(), e.Param())
	case "oneof":
		return fmt.Errorf("%s: %v is not one of [%s]", e.Namespace(), e.Value(), e.Param())
	case "min":
		return fmt.Errorf("%s: must be at least %s", e.Namespace(), e.Param())
	case "max":
		return fmt.Errorf("%s: must not exceed %s", e.Namespace(), e.Param())
	}
	return fmt.Errorf("%s: validation failed (%s)", e.Namespace(), e.Tag())
}
