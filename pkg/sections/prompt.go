package sections

import (
	"slices"
	"strings"
)

// Map holds the ordered lines of each section. Maps returned by Parse
// always carry all five keys.
type Map map[Section][]string

// NewMap returns a Map with every section present and empty.
func NewMap() Map {
	m := make(Map, len(order))
	for _, s := range order {
		m[s] = []string{}
	}
	return m
}

// Clone returns a deep copy of m with all five keys present.
func (m Map) Clone() Map {
	c := NewMap()
	for _, s := range order {
		c[s] = slices.Clone(m[s])
	}
	return c
}

// Lines returns the non-blank lines of section s.
func (m Map) Lines(s Section) []string {
	out := make([]string, 0, len(m[s]))
	for _, l := range m[s] {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// Skeleton returns the empty five-section prompt.
func Skeleton() string {
	return Serialize(NewMap())
}

// IsStructured reports whether every canonical header appears in prompt on
// a line of its own.
func IsStructured(prompt string) bool {
	found := make(map[Section]bool, len(order))
	for _, line := range splitLines(prompt) {
		if s, ok := headerSection(strings.TrimSpace(line)); ok {
			found[s] = true
		}
	}
	return len(found) == len(order)
}

// EnsureBlocks returns prompt unchanged when it is already structured.
// Anything else is discarded in favor of the empty skeleton: a prompt
// that does not follow the schema is never partially salvaged.
func EnsureBlocks(prompt string) string {
	if IsStructured(prompt) {
		return prompt
	}
	return Skeleton()
}

// Parse splits a structured prompt into its sections. Header lines move the
// cursor; every other line, blank lines included, is appended to the
// current section. Lines before the first header are dropped.
func Parse(prompt string) Map {
	m := NewMap()
	var current Section

	for _, line := range splitLines(prompt) {
		if s, ok := headerSection(strings.TrimSpace(line)); ok {
			current = s
			continue
		}
		if current == "" {
			continue
		}
		m[current] = append(m[current], strings.TrimRight(line, " \t"))
	}

	return m
}

// Serialize renders m in canonical section order. Each block is its header
// followed by its body with surrounding blank lines trimmed; blocks are
// separated by a single blank line.
func Serialize(m Map) string {
	blocks := make([]string, 0, len(order))
	for _, s := range order {
		body := trimBlank(m[s])
		if len(body) == 0 {
			blocks = append(blocks, s.Header())
			continue
		}
		blocks = append(blocks, s.Header()+"\n"+strings.Join(body, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// Normalize is Serialize(Parse(EnsureBlocks(prompt))).
func Normalize(prompt string) string {
	return Serialize(Parse(EnsureBlocks(prompt)))
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
