// Package engine merges free-text instructions into structured prompts and
// reports what changed.
package engine

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/quill/pkg/classifier"
	"github.com/JaimeStill/quill/pkg/sections"
)

// Summary strings for the degenerate merge cases.
const (
	SummaryInstructionsOnly = "using instructions only"
	SummaryNoChanges        = "No changes"
	SummaryNormalized       = "No structural changes; normalized wording."
	SummaryNoNew            = "No new instructions; prompt unchanged."
)

// DefaultPrompt is the starter prompt offered to new assistants.
const DefaultPrompt = `[Identity]
- You are a helpful virtual receptionist for our business.

[Style]
- Be friendly, clear, and professional.

[Response Guidelines]
- Keep answers concise and easy to follow.
- Only share information you have been given about the business.

[Task & Goals]
- Help callers get answers and take the next step.
- Collect the caller's name and contact details when a follow-up is needed.

[Error Handling / Fallback]
- If you do not know an answer, say so and offer to have someone follow up.`

// Generation is the result of merging free text into a prompt.
type Generation struct {
	NextPrompt   string                   `json:"next_prompt"`
	Diff         []DiffRow                `json:"diff"`
	Added        int                      `json:"added"`
	Removed      int                      `json:"removed"`
	BucketsAdded map[sections.Section]int `json:"buckets_added"`
}

// Applied returns the number of instruction lines merged across sections.
func (g Generation) Applied() int {
	total := 0
	for _, n := range g.BucketsAdded {
		total += n
	}
	return total
}

// Application is the result of ApplyInstructions and ApplyUserInstructions.
// Applied counts the instruction lines merged into Merged.
type Application struct {
	Merged  string    `json:"merged"`
	Summary string    `json:"summary"`
	Applied int       `json:"applied"`
	Diff    []DiffRow `json:"diff,omitempty"`
}

// Engine merges instructions using a line classifier.
type Engine struct {
	classifier *classifier.Classifier
}

// New creates an Engine. A nil classifier uses classifier.New().
func New(c *classifier.Classifier) *Engine {
	if c == nil {
		c = classifier.New()
	}
	return &Engine{classifier: c}
}

var std = New(nil)

// Default returns the shared Engine using the default classifier.
func Default() *Engine {
	return std
}

// GenerateFromFreeText classifies each line of freeText and appends it to
// its section of base. A line is skipped when its section already holds a
// case-insensitive match. Unstructured bases are replaced by the skeleton.
// The diff is taken against base as given, so discarded content shows up as
// removals.
func (e *Engine) GenerateFromFreeText(base, freeText string) Generation {
	m := sections.Parse(sections.Normalize(base))

	seen := make(map[sections.Section]map[string]bool, len(m))
	for _, s := range sections.Sections() {
		seen[s] = make(map[string]bool)
		for _, l := range m.Lines(s) {
			seen[s][dedupeKey(l)] = true
		}
	}

	buckets := make(map[sections.Section]int, len(m))
	for _, s := range sections.Sections() {
		buckets[s] = 0
	}

	for _, line := range splitInstructions(freeText, false) {
		res, ok := e.classifier.Classify(line)
		if !ok {
			continue
		}
		key := dedupeKey(res.Text)
		if seen[res.Section][key] {
			continue
		}
		seen[res.Section][key] = true
		m[res.Section] = append(trimTrailingBlank(m[res.Section]), res.Text)
		buckets[res.Section]++
	}

	next := sections.Serialize(m)
	diff := ComputeDiff(trimNewlines(base), next)
	added, removed := Count(diff)

	return Generation{
		NextPrompt:   next,
		Diff:         diff,
		Added:        added,
		Removed:      removed,
		BucketsAdded: buckets,
	}
}

// ApplyInstructions merges instructions into base and summarizes the change.
// An empty base yields the instructions verbatim; empty instructions leave
// base untouched.
func (e *Engine) ApplyInstructions(base, instructions string) Application {
	if strings.TrimSpace(base) == "" {
		return Application{Merged: instructions, Summary: SummaryInstructionsOnly}
	}
	if strings.TrimSpace(instructions) == "" {
		return Application{Merged: base, Summary: SummaryNoChanges}
	}

	g := e.GenerateFromFreeText(base, instructions)
	return Application{
		Merged:  g.NextPrompt,
		Summary: summarize(g),
		Applied: g.Applied(),
		Diff:    g.Diff,
	}
}

// ApplyUserInstructions merges freeform end-user text split on newlines and
// semicolons. It always yields a structured prompt, starting from the
// skeleton when base is empty, and reports no diff.
func (e *Engine) ApplyUserInstructions(base, freeform string) Application {
	clauses := splitInstructions(freeform, true)
	if len(clauses) == 0 {
		return Application{Merged: base, Summary: SummaryNoChanges}
	}

	g := e.GenerateFromFreeText(base, strings.Join(clauses, "\n"))

	total := g.Applied()
	if total == 0 {
		return Application{Merged: g.NextPrompt, Summary: SummaryNoNew}
	}

	noun := "instructions"
	if total == 1 {
		noun = "instruction"
	}
	return Application{
		Merged:  g.NextPrompt,
		Summary: fmt.Sprintf("Applied %d %s: %s", total, noun, tallies(g.BucketsAdded)),
		Applied: total,
	}
}

func summarize(g Generation) string {
	t := tallies(g.BucketsAdded)
	if g.Added == 0 && g.Removed == 0 && t == "" {
		return SummaryNormalized
	}
	s := fmt.Sprintf("+%d/-%d lines", g.Added, g.Removed)
	if t != "" {
		s += "; " + t
	}
	return s
}

func tallies(buckets map[sections.Section]int) string {
	var parts []string
	for _, s := range sections.Sections() {
		if n := buckets[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s +%d", s.Header(), n))
		}
	}
	return strings.Join(parts, ", ")
}

func splitInstructions(text string, semicolons bool) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if semicolons {
		text = strings.ReplaceAll(text, ";", "\n")
	}

	var out []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// trimNewlines normalizes line endings and drops leading and trailing
// newlines.
func trimNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Trim(s, "\n")
}

func dedupeKey(line string) string {
	l := strings.TrimSpace(line)
	l = strings.TrimSpace(strings.TrimPrefix(l, "-"))
	return strings.ToLower(l)
}

func trimTrailingBlank(ls []string) []string {
	for len(ls) > 0 && strings.TrimSpace(ls[len(ls)-1]) == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}
