package presets

import (
	"slices"

	"github.com/JaimeStill/quill/pkg/sections"
)

// Chip is a one-click instruction offered by authoring UIs.
type Chip struct {
	Label       string           `json:"label"`
	Section     sections.Section `json:"section"`
	Instruction string           `json:"instruction"`
}

var chips = []Chip{
	{"Introduce by name", sections.Identity, "Introduce yourself by name at the start of each call"},
	{"Friendlier tone", sections.Style, "Make the tone friendlier"},
	{"Professional tone", sections.Style, "Keep a professional tone"},
	{"Show empathy", sections.Style, "Acknowledge the caller's feelings with empathy"},
	{"Shorter answers", sections.ResponseGuidelines, "Keep answers under three sentences"},
	{"Be concise", sections.ResponseGuidelines, "Be concise and get to the point"},
	{"Avoid jargon", sections.ResponseGuidelines, "Avoid jargon and explain terms in plain language"},
	{"No emojis", sections.ResponseGuidelines, "Do not use emojis"},
	{"Collect contact info", sections.TaskGoals, "Collect the caller's name, phone number, and email"},
	{"Offer booking", sections.TaskGoals, "Offer to book an appointment when the caller is ready"},
	{"Confirm details", sections.TaskGoals, "Confirm the date and time back to the caller before ending"},
	{"Escalate urgent requests", sections.TaskGoals, "Escalate to a staff member when the request is urgent"},
	{"Admit uncertainty", sections.ErrorHandling, "If you are unsure, say so and offer to find out"},
	{"Apologize for errors", sections.ErrorHandling, "Apologize briefly when something goes wrong"},
	{"Handle abuse", sections.ErrorHandling, "Handle abusive callers by setting a boundary once before ending the call"},
}

// Chips returns the quick-instruction chip library.
func Chips() []Chip {
	return slices.Clone(chips)
}
