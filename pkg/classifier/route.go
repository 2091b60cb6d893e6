package classifier

import (
	"regexp"
	"strings"

	"github.com/JaimeStill/quill/pkg/sections"
)

type rule struct {
	section sections.Section
	cues    *regexp.Regexp
}

func cues(phrases ...string) *regexp.Regexp {
	alts := make([]string, len(phrases))
	for i, p := range phrases {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// Evaluated in order; the first match wins.
var rules = []rule{
	{
		section: sections.Identity,
		cues: regexp.MustCompile(`^(?:you are|you're|you will be|your name|introduce yourself)\b|` +
			cues("act as", "persona", "role", "represent", "on behalf of", "receptionist",
				"assistant for", "agent for", "identity", "introduce yourself", "your name", "call yourself").String()),
	},
	{
		section: sections.Style,
		cues: cues("tone", "voice", "style", "personality", "friendly", "friendlier", "warm", "warmer",
			"polite", "politely", "formal", "informal", "casual", "professional", "empathetic", "empathy",
			"enthusiastic", "upbeat", "cheerful", "calm", "patient", "playful", "humor", "respectful"),
	},
	{
		section: sections.ResponseGuidelines,
		cues: cues("answer", "answers", "response", "responses", "reply", "replies", "short", "shorter",
			"brief", "concise", "sentence", "sentences", "bullet", "bullets", "format", "formatting",
			"jargon", "length", "markdown", "emoji", "emojis", "paragraph", "paragraphs", "words",
			"disclaimer", "language", "plain"),
	},
	{
		section: sections.TaskGoals,
		cues: cues("collect", "gather", "ask for", "ask", "capture", "book", "booking", "schedule",
			"scheduling", "appointment", "appointments", "reservation", "reservations", "escalate",
			"escalation", "transfer", "hand off", "handoff", "follow up", "confirm", "qualify", "lead",
			"leads", "intake", "first", "then", "step", "steps", "email", "phone number", "goal", "goals"),
	},
	{
		section: sections.ErrorHandling,
		cues: cues("error", "errors", "fail", "fails", "failure", "apologize", "apologise", "apology",
			"sorry", "unsure", "not sure", "don't know", "do not know", "fallback", "hostile", "abuse",
			"abusive", "insult", "insulting", "rude", "offensive", "unable", "cannot", "can't",
			"outage", "misunderstand", "unclear"),
	},
}

// Route returns the section a normalized instruction line belongs to. Lines
// matching no cue land in Response Guidelines.
func Route(line string) sections.Section {
	l := strings.ToLower(strings.TrimSpace(stripBullet(line)))
	for _, r := range rules {
		if r.cues.MatchString(l) {
			return r.section
		}
	}
	return sections.ResponseGuidelines
}
