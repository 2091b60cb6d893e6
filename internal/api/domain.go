package api

import (
	"fmt"

	"github.com/JaimeStill/quill/internal/compiler"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Compiler compiler.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	compilerSystem, err := compiler.New(
		nil,
		runtime.Cache,
		runtime.Metrics,
		runtime.Logger,
		runtime.Compiler,
	)
	if err != nil {
		return nil, fmt.Errorf("compiler init failed: %w", err)
	}

	return &Domain{
		Compiler: compilerSystem,
	}, nil
}
