// Package middleware holds the HTTP middleware mounted on quill's API module
// and the ordered stack that composes it around the compile routes.
package middleware

import (
	"net/http"
	"slices"
)

// Func wraps an http.Handler.
type Func = func(http.Handler) http.Handler

// System is an ordered middleware stack. The first Func registered with Use
// is the outermost wrapper.
type System interface {
	Use(mw Func)
	Apply(handler http.Handler) http.Handler
}

type stack []Func

// New creates an empty stack.
func New() System {
	return &stack{}
}

// Use appends mw. A nil mw is ignored.
func (s *stack) Use(mw Func) {
	if mw == nil {
		return
	}
	*s = append(*s, mw)
}

// Apply wraps handler so requests pass through the stack in registration
// order.
func (s *stack) Apply(handler http.Handler) http.Handler {
	for _, mw := range slices.Backward(*s) {
		handler = mw(handler)
	}
	return handler
}
