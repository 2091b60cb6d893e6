package classifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]+\s*|\d+[.)](?:\s+|$))+`)
	toneRe       = regexp.MustCompile(`(?i)^make\s+(?:the\s+|your\s+)?tone\s+(?:more\s+|a\s+bit\s+)?(.+)$`)
	answersRe    = regexp.MustCompile(`(?i)^make\s+(?:the\s+|your\s+)?(answers|responses|replies)\s+(.+)$`)
	dontRe       = regexp.MustCompile(`(?i)^(?:don't|dont|do\s+not)\s+`)
)

var comparatives = map[string]string{
	"friendlier": "friendly",
	"warmer":     "warm",
	"calmer":     "calm",
	"happier":    "happy",
	"livelier":   "lively",
	"softer":     "soft",
	"gentler":    "gentle",
	"simpler":    "simple",
	"clearer":    "clear",
	"shorter":    "short",
	"kinder":     "kind",
	"nicer":      "nice",
}

// FormatPolicyLine renders line as a bulleted imperative sentence. It returns
// an empty string when nothing remains after the bullet marker is removed.
func FormatPolicyLine(line string) string {
	s := strings.TrimSpace(stripBullet(line))
	if s == "" {
		return ""
	}

	s = rephrase(s)
	s = capitalize(s)
	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	return "- " + s
}

func stripBullet(line string) string {
	return bulletPrefix.ReplaceAllString(line, "")
}

func rephrase(s string) string {
	if m := toneRe.FindStringSubmatch(s); m != nil {
		rest := m[1]
		first, tail, _ := strings.Cut(rest, " ")
		word := strings.TrimRight(first, ".,!?;:")
		if base, ok := comparatives[strings.ToLower(word)]; ok {
			rest = base + first[len(word):]
			if tail != "" {
				rest += " " + tail
			}
		}
		return "Use a tone that is " + rest
	}
	if m := answersRe.FindStringSubmatch(s); m != nil {
		return "Keep " + strings.ToLower(m[1]) + " " + m[2]
	}
	if loc := dontRe.FindStringIndex(s); loc != nil {
		return "Do not " + s[loc[1]:]
	}
	return s
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
