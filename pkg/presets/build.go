package presets

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/quill/pkg/sections"
)

// SeedHeader marks the verbatim prior prompt appended by Build.
const SeedHeader = "[Prior Prompt Seed]"

const (
	defaultBrand = "our business"
	collectTimes = "If the caller wants to book, say: I can collect your preferred times and have the team confirm your appointment."
	bookByPhone  = "If the caller wants to book, ask them to call %s to schedule."
)

// Build assembles a five-section base prompt for p.Industry. Unknown
// industries use the generic preset; Build never fails.
func Build(p Params) string {
	preset := Resolve(p.Industry)

	brand := strings.TrimSpace(p.Brand)
	location := strings.TrimSpace(p.InLocation)
	location = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(location, "in "), "In "))
	tone := strings.TrimSpace(p.Tone)
	services := cleanList(p.Services)

	r := strings.NewReplacer(
		"{brand}", orDefault(brand, defaultBrand),
		"{in_location}", inLocation(location),
		"{booking}", BookingSentence(p.Booking),
	)

	// Placeholders expand in preset lines only; caller text is taken as is.
	m := sections.NewMap()
	add := func(s sections.Section, lines ...string) {
		for _, l := range lines {
			if b := bullet(l); b != "" {
				m[s] = append(m[s], b)
			}
		}
	}
	template := func(s sections.Section, lines ...string) {
		for _, l := range lines {
			add(s, r.Replace(l))
		}
	}

	template(sections.Identity, preset.Template.Identity...)
	if brand != "" {
		add(sections.Identity, "You represent "+brand+".")
	}
	if location != "" {
		add(sections.Identity, "You serve customers in "+location+".")
	}

	template(sections.Style, preset.Template.Style...)
	if tone != "" {
		add(sections.Style, "Keep your tone "+tone+".")
	}

	template(sections.ResponseGuidelines, preset.Template.ResponseGuidelines...)
	template(sections.ResponseGuidelines, preset.DefaultDisclaimers...)
	if names, changed := canonicalServices(preset, services); changed {
		add(sections.ResponseGuidelines, "When describing services, use these names: "+strings.Join(names, ", ")+".")
	}

	template(sections.TaskGoals, preset.Template.TaskGoals...)
	if len(preset.MustAsk) > 0 {
		add(sections.TaskGoals, "Before booking, collect the caller's "+joinList(preset.MustAsk)+".")
	}
	if len(services) > 0 {
		add(sections.TaskGoals, "Services offered: "+strings.Join(services, ", ")+".")
	}
	template(sections.TaskGoals, preset.DefaultPolicies...)

	template(sections.ErrorHandling, preset.Template.ErrorHandling...)
	template(sections.ErrorHandling, preset.Safety...)

	out := sections.Serialize(m)
	if seed := strings.TrimSpace(p.BasePrompt); seed != "" {
		out += "\n\n" + SeedHeader + "\n" + p.BasePrompt
	}
	return out
}

// BookingSentence describes how the assistant routes booking requests. A URL
// takes precedence over a phone number; without either the assistant offers
// to collect preferred times.
func BookingSentence(b *Booking) string {
	if b == nil {
		return collectTimes
	}

	if url := strings.TrimSpace(b.URL); url != "" {
		return "When the caller wants to book, direct them to book online via " + url + "."
	}

	phone := strings.TrimSpace(b.Phone)
	switch {
	case phone != "":
		return fmt.Sprintf(bookByPhone, phone)
	case strings.EqualFold(strings.TrimSpace(b.Type), "phone"):
		return fmt.Sprintf(bookByPhone, "our office")
	}

	return collectTimes
}

func canonicalServices(p Preset, services []string) ([]string, bool) {
	names := make([]string, 0, len(services))
	changed := false
	for _, s := range services {
		n := p.NormalizeService(s)
		if n == "" {
			n = s
		}
		if n != s {
			changed = true
		}
		names = append(names, n)
	}
	return names, changed
}

func bullet(line string) string {
	s := strings.TrimSpace(line)
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	return "- " + s
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		if t := strings.TrimSpace(i); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

func inLocation(location string) string {
	if location == "" {
		return ""
	}
	return " in " + location
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
