// Package presets holds the industry preset library and builds complete
// five-section base prompts for new assistants.
package presets

import (
	"slices"
	"sort"
	"strings"
)

// GenericKey identifies the fallback preset used for unknown industries.
const GenericKey = "generic"

// Booking describes how callers book with the business.
type Booking struct {
	Type  string `json:"type"`
	URL   string `json:"url,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Params are the caller-supplied inputs to Build.
type Params struct {
	Industry   string   `json:"industry"`
	Brand      string   `json:"brand,omitempty"`
	InLocation string   `json:"in_location,omitempty"`
	Tone       string   `json:"tone,omitempty"`
	Services   []string `json:"services,omitempty"`
	Booking    *Booking `json:"booking,omitempty"`
	BasePrompt string   `json:"base_prompt,omitempty"`
}

// Template holds the static lines of each section. Lines may contain the
// {brand}, {in_location}, and {booking} tokens.
type Template struct {
	Identity           []string `json:"identity"`
	Style              []string `json:"style"`
	ResponseGuidelines []string `json:"response_guidelines"`
	TaskGoals          []string `json:"task_goals"`
	ErrorHandling      []string `json:"error_handling"`
}

func (t Template) clone() Template {
	return Template{
		Identity:           slices.Clone(t.Identity),
		Style:              slices.Clone(t.Style),
		ResponseGuidelines: slices.Clone(t.ResponseGuidelines),
		TaskGoals:          slices.Clone(t.TaskGoals),
		ErrorHandling:      slices.Clone(t.ErrorHandling),
	}
}

// Preset is an industry's static prompt content. Regulated presets carry
// safety clauses that Build always emits.
type Preset struct {
	Key                string   `json:"key"`
	Label              string   `json:"label"`
	Regulated          bool     `json:"regulated"`
	MustAsk            []string `json:"must_ask"`
	Safety             []string `json:"safety"`
	DefaultDisclaimers []string `json:"default_disclaimers"`
	DefaultPolicies    []string `json:"default_policies"`
	Template           Template `json:"template"`

	NormalizeService func(string) string `json:"-"`
}

func (p Preset) clone() Preset {
	c := p
	c.MustAsk = slices.Clone(p.MustAsk)
	c.Safety = slices.Clone(p.Safety)
	c.DefaultDisclaimers = slices.Clone(p.DefaultDisclaimers)
	c.DefaultPolicies = slices.Clone(p.DefaultPolicies)
	c.Template = p.Template.clone()
	if c.NormalizeService == nil {
		c.NormalizeService = strings.TrimSpace
	}
	return c
}

// Keys returns the industry preset keys in sorted order. The generic
// fallback is not included.
func Keys() []string {
	keys := make([]string, 0, len(library))
	for k := range library {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves an industry key or alias to its preset. Unlike Resolve it
// reports unknown industries instead of falling back.
func Lookup(industry string) (Preset, bool) {
	key := NormalizeKey(industry)
	if key == GenericKey {
		return generic.clone(), true
	}
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	p, ok := library[key]
	if !ok {
		return Preset{}, false
	}
	return p.clone(), true
}

// Resolve returns the preset for industry, or the generic receptionist
// preset when the industry is unknown.
func Resolve(industry string) Preset {
	if p, ok := Lookup(industry); ok {
		return p
	}
	return generic.clone()
}

// Aliases returns the alternate industry names that resolve to key.
func Aliases(key string) []string {
	var out []string
	for alias, target := range aliases {
		if target == key {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// NormalizeKey trims and lowercases industry and folds runs of spaces,
// hyphens, and slashes into single underscores.
func NormalizeKey(industry string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(industry)), func(r rune) bool {
		return r == ' ' || r == '-' || r == '/' || r == '_' || r == '\t'
	})
	return strings.Join(fields, "_")
}

func serviceTable(table map[string]string) func(string) string {
	return func(name string) string {
		n := strings.TrimSpace(name)
		if canonical, ok := table[strings.ToLower(n)]; ok {
			return canonical
		}
		return n
	}
}
