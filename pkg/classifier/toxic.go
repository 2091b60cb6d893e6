package classifier

import "regexp"

// DeescalationPolicy replaces pasted examples of hostile user speech.
const DeescalationPolicy = "If the user is hostile or insulting, respond calmly, remain professional, and redirect the conversation to how you can help"

var toxicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:you(?:'re| are)|ur|u r)\s+(?:\w+\s+){0,2}(?:dumb|stupid|useless|an? idiot|idiots?|an? moron|morons?|worthless|pathetic|incompetent|garbage|trash)\b`),
	regexp.MustCompile(`(?i)\b(?:dumb|stupid|idiotic|moronic)\s+(?:bot|robot|machine|assistant|ai|thing)\b`),
	regexp.MustCompile(`(?i)\byou\s+suck\b`),
	regexp.MustCompile(`(?i)\bshut\s+up\b`),
	regexp.MustCompile(`(?i)\bi\s+hate\s+you\b`),
	regexp.MustCompile(`(?i)\b(?:dumb|stupid|idiot|moron|useless)\b`),
}

// IsToxicExample reports whether line contains insult text that must not be
// copied into a prompt.
func IsToxicExample(line string) bool {
	for _, p := range toxicPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
