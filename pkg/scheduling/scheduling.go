// Package scheduling stamps the fixed voice scheduling-assistant template.
// Its section schema is independent of the five-section prompt model.
package scheduling

import (
	"strings"
)

// ContextHeader introduces raw business content carried into the template.
const ContextHeader = "# Additional Business Context"

const (
	defaultPersona = "Riley"
	defaultOrg     = "our organization"
)

// Options personalize the template.
type Options struct {
	Name        string `json:"name,omitempty"`
	Org         string `json:"org,omitempty"`
	PersonaName string `json:"persona_name,omitempty"`
}

func (o Options) persona() string {
	if p := oneLine(o.PersonaName); p != "" {
		return p
	}
	if n := oneLine(o.Name); n != "" {
		return n
	}
	return defaultPersona
}

func (o Options) org() string {
	if org := oneLine(o.Org); org != "" {
		return org
	}
	return defaultOrg
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

const template = `# Identity & Purpose
You are {persona}, the appointment scheduling voice assistant for {org}. Your job is to help callers book, confirm, reschedule, or cancel appointments efficiently while giving accurate information about services.

# Voice & Persona
- Sound friendly, organized, and patient.
- Speak in a warm, professional tone with natural contractions.
- Keep a steady pace and confirm details without sounding robotic.

# Conversation Flow
1. Greet the caller: "Thank you for calling {org}. This is {persona}, how can I help you today?"
2. Identify the need: booking, rescheduling, cancelling, or a question.
3. Collect the caller's name, phone number, and the service they want.
4. Offer available dates and times, starting with the earliest.
5. Confirm the appointment details back to the caller.
6. Close by asking whether there is anything else you can help with.

# Response Guidelines
- Keep answers short and focused on scheduling.
- Ask one question at a time.
- Read dates as "Tuesday, March 4th" and times as "2:30 PM".
- Never invent availability; only offer times you have confirmed.

# Scenario Handling
- New callers: collect full contact details before booking.
- Rescheduling: confirm the existing appointment before offering new times.
- Cancellations: confirm the appointment, cancel it, and offer to rebook.
- Urgent requests: offer the earliest slot and note the urgency for staff.
- Unclear requests: ask a clarifying question before acting.
- If you cannot help, offer to take a message for the {org} team.

# Knowledge Base
- Organization: {org}.
- Assistant name: {persona}.
- Appointment types, hours, and policies come from the business context below when provided.`

// ShapePromptForScheduling renders the scheduling template for opts and
// appends raw under ContextHeader. When raw is itself a stamped template only
// its business context is carried over, so shaping is idempotent.
func ShapePromptForScheduling(raw string, opts Options) string {
	out := render(opts.persona(), opts.org())

	if ctx := businessContext(raw); ctx != "" {
		out += "\n\n" + ContextHeader + "\n" + ctx
	}
	return out
}

// IsShaped reports whether raw was produced by ShapePromptForScheduling.
// The template portion must match a rendering byte for byte; a hand-written
// prompt that merely shares the headers is not shaped.
func IsShaped(raw string) bool {
	_, ok := stamped(normalize(raw))
	return ok
}

func render(persona, org string) string {
	return strings.NewReplacer("{persona}", persona, "{org}", org).Replace(template)
}

func normalize(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
}

func businessContext(raw string) string {
	raw = normalize(raw)
	if ctx, ok := stamped(raw); ok {
		return ctx
	}
	return raw
}

// stamped recovers the persona and org from the knowledge base lines,
// re-renders the template with them and compares it to the head of raw.
func stamped(raw string) (string, bool) {
	head, ctx, _ := strings.Cut(raw, "\n\n"+ContextHeader+"\n")

	var persona, org string
	var havePersona, haveOrg bool
	for line := range strings.SplitSeq(head, "\n") {
		if v, ok := strings.CutPrefix(line, "- Organization: "); ok && !haveOrg {
			org, haveOrg = strings.TrimSuffix(v, "."), true
		}
		if v, ok := strings.CutPrefix(line, "- Assistant name: "); ok && !havePersona {
			persona, havePersona = strings.TrimSuffix(v, "."), true
		}
	}
	if !havePersona || !haveOrg || head != render(persona, org) {
		return "", false
	}
	return strings.TrimSpace(ctx), true
}
