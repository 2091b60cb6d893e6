package classifier

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Normalizer rewrites a line into the working language. Implementations
// must be deterministic and total, returning the input unchanged when they
// have nothing to do.
type Normalizer interface {
	Normalize(line string) string
}

// NormalizerFunc adapts a function to the Normalizer interface.
type NormalizerFunc func(string) string

// Normalize calls f(line).
func (f NormalizerFunc) Normalize(line string) string {
	return f(line)
}

// Identity is a Normalizer that returns lines unchanged.
var Identity Normalizer = NormalizerFunc(func(line string) string { return line })

// TableNormalizer approximates translation with whole-word phrase
// substitution, applied only when the source language's marker words
// outnumber the working language's. Substitution is a single pass, so
// replacement text is never substituted again.
type TableNormalizer struct {
	source  map[string]bool
	working map[string]bool
	dict    map[string]string
	pattern *regexp.Regexp
}

// NewTableNormalizer builds a TableNormalizer from marker word lists and a
// substitution dictionary. Longer source phrases win over their prefixes.
func NewTableNormalizer(sourceMarkers, workingMarkers []string, dict map[string]string) *TableNormalizer {
	keys := make([]string, 0, len(dict))
	lookup := make(map[string]string, len(dict))
	for k, v := range dict {
		key := strings.ToLower(collapseSpaces(k))
		keys = append(keys, key)
		lookup[key] = v
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	alts := make([]string, len(keys))
	for i, k := range keys {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(k), " ", `\s+`)
	}

	var pattern *regexp.Regexp
	if len(alts) > 0 {
		pattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	}

	return &TableNormalizer{
		source:  set(sourceMarkers),
		working: set(workingMarkers),
		dict:    lookup,
		pattern: pattern,
	}
}

// Detect reports whether the source language dominates line.
func (n *TableNormalizer) Detect(line string) bool {
	var src, work int
	for _, w := range words(line) {
		if n.source[w] {
			src++
		}
		if n.working[w] {
			work++
		}
	}
	return src > work
}

// Normalize substitutes dictionary phrases when the source language
// dominates, preserving an initial capital.
func (n *TableNormalizer) Normalize(line string) string {
	if n.pattern == nil || !n.Detect(line) {
		return line
	}

	out := n.pattern.ReplaceAllStringFunc(line, func(match string) string {
		target, ok := n.dict[strings.ToLower(collapseSpaces(match))]
		if !ok {
			return match
		}
		return matchCase(match, target)
	})
	return collapseSpaces(out)
}

// Dutch normalizes Dutch instruction lines into approximate English.
var Dutch = NewTableNormalizer(dutchMarkers, englishMarkers, dutchDictionary)

var dutchMarkers = []string{
	"de", "het", "een", "en", "niet", "je", "jij", "jouw", "u", "uw", "wij", "we", "ons", "onze",
	"ik", "zijn", "bent", "voor", "met", "van", "dat", "die", "wel", "geen", "altijd", "nooit",
	"graag", "alsjeblieft", "klant", "klanten", "vragen", "antwoord", "antwoorden", "maak",
	"gebruik", "kort", "korte", "vriendelijk", "vriendelijker", "wees", "zeg", "als", "naar",
	"toon", "stel", "verzamel",
}

var englishMarkers = []string{
	"the", "a", "an", "and", "not", "you", "your", "we", "our", "is", "are", "be", "with", "for",
	"to", "of", "that", "always", "never", "please", "use", "make", "if", "when", "ask",
}

var dutchDictionary = map[string]string{
	"je bent":        "you are",
	"jij bent":       "you are",
	"u bent":         "you are",
	"wees":           "be",
	"maak de toon":   "make the tone",
	"toon":           "tone",
	"vriendelijker":  "friendlier",
	"vriendelijk":    "friendly",
	"beleefd":        "polite",
	"formeel":        "formal",
	"informeel":      "casual",
	"korte":          "short",
	"kort":           "short",
	"antwoorden":     "answers",
	"antwoord":       "answer",
	"gebruik":        "use",
	"maak":           "make",
	"stel vragen":    "ask questions",
	"vraag naar":     "ask for",
	"vraag om":       "ask for",
	"vragen":         "questions",
	"verzamel":       "collect",
	"naam":           "name",
	"telefoonnummer": "phone number",
	"e-mail":         "email",
	"afspraak":       "appointment",
	"afspraken":      "appointments",
	"plannen":        "schedule",
	"klanten":        "customers",
	"klant":          "customer",
	"altijd":         "always",
	"nooit":          "never",
	"niet":           "not",
	"geen":           "no",
	"graag":          "gladly",
	"alsjeblieft":    "please",
	"zeg":            "say",
	"als":            "if",
	"de":             "the",
	"het":            "the",
	"een":            "a",
	"en":             "and",
	"of":             "or",
	"met":            "with",
	"voor":           "for",
	"van":            "of",
	"naar":           "to",
	"je":             "you",
	"jij":            "you",
	"jouw":           "your",
	"u":              "you",
	"uw":             "your",
	"wij":            "we",
	"ons":            "us",
	"onze":           "our",
	"ik":             "I",
	"fout":           "error",
	"excuses":        "apologies",
	"doorverbinden":  "transfer",
	"medewerker":     "staff member",
	"eerst":          "first",
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func set(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, i := range items {
		m[i] = true
	}
	return m
}

func matchCase(src, target string) string {
	if src == "" || target == "" {
		return target
	}
	first := []rune(src)[0]
	if unicode.IsUpper(first) {
		r := []rune(target)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return target
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
