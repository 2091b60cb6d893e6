// Package sections implements the canonical five-section prompt schema and the
// parse/serialize routines between a flat prompt string and a section map.
package sections

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// ErrInvalidSection is returned when decoding an unknown section name.
var ErrInvalidSection = errors.New("section must be identity, style, response_guidelines, task_goals, or error_handling")

// Section identifies one of the five canonical prompt sections.
type Section string

// Canonical sections, in serialization order.
const (
	Identity           Section = "identity"
	Style              Section = "style"
	ResponseGuidelines Section = "response_guidelines"
	TaskGoals          Section = "task_goals"
	ErrorHandling      Section = "error_handling"
)

var order = []Section{
	Identity,
	Style,
	ResponseGuidelines,
	TaskGoals,
	ErrorHandling,
}

var titles = map[Section]string{
	Identity:           "Identity",
	Style:              "Style",
	ResponseGuidelines: "Response Guidelines",
	TaskGoals:          "Task & Goals",
	ErrorHandling:      "Error Handling / Fallback",
}

// Sections returns the five sections in canonical order.
func Sections() []Section {
	return slices.Clone(order)
}

// Title returns the human-readable section name.
func (s Section) Title() string {
	return titles[s]
}

// Header returns the bracketed header literal that marks the section in a prompt.
// The spelling is load-bearing: stored prompts are recognized by it.
func (s Section) Header() string {
	return "[" + titles[s] + "]"
}

// Valid reports whether s is one of the canonical sections.
func (s Section) Valid() bool {
	return slices.Contains(order, s)
}

// UnmarshalJSON validates that the decoded string is a known section.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseSection(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSection accepts either a section key ("task_goals") or its header
// text with or without brackets ("[Task & Goals]", "Task & Goals").
func ParseSection(s string) (Section, error) {
	v := strings.TrimSpace(s)
	if Section(v).Valid() {
		return Section(v), nil
	}
	if sec, ok := headerSection(v); ok {
		return sec, nil
	}
	if sec, ok := headerSection("[" + v + "]"); ok {
		return sec, nil
	}
	return "", ErrInvalidSection
}

func headerSection(line string) (Section, bool) {
	for _, s := range order {
		if line == s.Header() {
			return s, true
		}
	}
	return "", false
}
