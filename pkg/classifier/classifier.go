// Package classifier converts one free-text instruction line into a target
// prompt section and a normalized policy bullet.
//
// Each line passes through four stages: language normalization, toxic
// example rewriting, keyword routing, and policy-line formatting. Every stage
// is total; the classifier never rejects input other than blank lines.
package classifier

import (
	"strings"

	"github.com/JaimeStill/quill/pkg/sections"
)

// Result is the outcome of classifying a single instruction line.
type Result struct {
	Section    sections.Section `json:"section"`
	Text       string           `json:"text"`
	Normalized bool             `json:"normalized"`
	Rewritten  bool             `json:"rewritten"`
}

// Classifier routes instruction lines into sections.
type Classifier struct {
	normalizer Normalizer
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithNormalizer replaces the language normalizer. A nil normalizer
// disables normalization.
func WithNormalizer(n Normalizer) Option {
	return func(c *Classifier) {
		if n == nil {
			n = Identity
		}
		c.normalizer = n
	}
}

// New creates a Classifier using the Dutch table normalizer unless
// overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{normalizer: Dutch}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs the full pipeline on line. It returns false when the line is
// blank or a bare bullet marker. Toxic example text is replaced by
// DeescalationPolicy and always lands in the error handling section.
func (c *Classifier) Classify(line string) (Result, bool) {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Result{}, false
	}

	normalized := c.normalizer.Normalize(raw)
	res := Result{Normalized: normalized != raw}

	if IsToxicExample(normalized) {
		res.Section = sections.ErrorHandling
		res.Text = FormatPolicyLine(DeescalationPolicy)
		res.Rewritten = true
		return res, true
	}

	res.Text = FormatPolicyLine(normalized)
	if res.Text == "" {
		return Result{}, false
	}
	res.Section = Route(normalized)
	return res, true
}

var std = New()

// Classify classifies line with the default classifier.
func Classify(line string) (Result, bool) {
	return std.Classify(line)
}
