package questionnaire

import (
	"encoding/json"
	"fmt"
	"strconv"

	"cloudguide/internal/errors"
)

// Answer is a single wizard answer. Sliders and radios carry one value,
// checkboxes carry any number.
type Answer struct {
	Values []string
	Multi  bool
}

// One builds a single-valued answer
func One(v string) Answer {
	return Answer{Values: []string{v}}
}

// Many builds a checkbox answer
func Many(vs ...string) Answer {
	return Answer{Values: append([]string{}, vs...), Multi: true}
}

// Value returns the first value, or empty
func (a Answer) Value() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// MarshalJSON writes a string for single answers and an array for checkboxes
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value())
}

// UnmarshalJSON accepts a string, a number or an array of either
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case []interface{}:
		a.Multi = true
		a.Values = make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalar(item)
			if err != nil {
				return err
			}
			a.Values = append(a.Values, s)
		}
	default:
		s, err := scalar(v)
		if err != nil {
			return err
		}
		a.Multi = false
		a.Values = []string{s}
	}
	return nil
}

func scalar(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unsupported answer value %v", v)
	}
}

// Answers maps question identifiers to answers
type Answers map[string]Answer

// Validate normalizes raw answers through each question's value mapping.
// Unmapped values pass through unchanged so already-normalized keys work.
func Validate(raw Answers) (Answers, error) {
	if len(raw) == 0 {
		return nil, errors.Input("request body is required")
	}

	validated := make(Answers, len(Questions))
	for _, q := range Questions {
		a, ok := raw[q.ID]
		if !ok {
			if q.Required {
				return nil, errors.Inputf("missing required question: %s", q.ID).
					WithContext("question", q.ID)
			}
			continue
		}

		if q.InputType == InputCheckbox {
			if !a.Multi {
				return nil, errors.Inputf("question %s must be a list (checkbox)", q.ID).
					WithContext("question", q.ID)
			}
			values := make([]string, 0, len(a.Values))
			for _, v := range a.Values {
				values = append(values, mapValue(q, v))
			}
			validated[q.ID] = Answer{Values: values, Multi: true}
			continue
		}

		if len(a.Values) == 0 {
			return nil, errors.Inputf("question %s has no answer", q.ID).
				WithContext("question", q.ID)
		}
		validated[q.ID] = One(mapValue(q, a.Values[0]))
	}
	return validated, nil
}

func mapValue(q Question, v string) string {
	if mapped, ok := q.ValueMapping[v]; ok {
		return mapped
	}
	return v
}
