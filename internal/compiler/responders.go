package compiler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/quill/pkg/bus"
	"github.com/JaimeStill/quill/pkg/handlers"
)

// Subject operation names served over the bus.
const (
	SubjectApply    = "apply"
	SubjectGenerate = "generate"
	SubjectPreset   = "preset"
	SubjectShape    = "shape"
)

// Responder registers request handlers on a subject.
type Responder interface {
	Respond(subject string, h bus.Handler) error
}

// Serve registers the compile responders on b. subject maps an operation
// name to its full subject.
func Serve(b Responder, sys System, subject func(op string) string) error {
	responders := []struct {
		op string
		h  bus.Handler
	}{
		{SubjectApply, reply(sys.Apply)},
		{SubjectGenerate, reply(sys.Generate)},
		{SubjectPreset, reply(sys.BuildPreset)},
		{SubjectShape, reply(sys.Shape)},
	}

	for _, r := range responders {
		if err := b.Respond(subject(r.op), r.h); err != nil {
			return fmt.Errorf("serve %s: %w", r.op, err)
		}
	}
	return nil
}

// reply adapts a System operation to a bus handler with JSON bodies.
func reply[Req, Res any](op func(context.Context, Req) (Res, error)) bus.Handler {
	return func(ctx context.Context, data []byte) ([]byte, error) {
		var req Req
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", handlers.ErrInvalidJSON, err)
		}

		res, err := op(ctx, req)
		if err != nil {
			return nil, err
		}
		return json.Marshal(res)
	}
}
