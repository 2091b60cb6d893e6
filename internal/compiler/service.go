package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/quill/pkg/cache"
	"github.com/JaimeStill/quill/pkg/classifier"
	"github.com/JaimeStill/quill/pkg/engine"
	"github.com/JaimeStill/quill/pkg/plaintext"
	"github.com/JaimeStill/quill/pkg/presets"
	"github.com/JaimeStill/quill/pkg/preview"
	"github.com/JaimeStill/quill/pkg/scheduling"
	"github.com/JaimeStill/quill/pkg/sections"
	"github.com/JaimeStill/quill/pkg/telemetry"
)

const maxServices = 50

var bookingTypes = []string{"", "url", "link", "online", "phone", "none"}

// Config bounds batch compilation.
type Config struct {
	BatchLimit  int
	Concurrency int
}

type service struct {
	classifier *classifier.Classifier
	engine     *engine.Engine
	renderer   *preview.Renderer
	cache      *cache.Cache
	metrics    *telemetry.Metrics
	logger     *slog.Logger
	cfg        Config
}

// New creates the compile System. A nil classifier uses the default
// classifier; a nil cache disables memoization; nil metrics use the global
// meter provider.
func New(
	c *classifier.Classifier,
	store *cache.Cache,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
	cfg Config,
) (System, error) {
	if c == nil {
		c = classifier.New()
	}
	if metrics == nil {
		m, err := telemetry.NewMetrics()
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		metrics = m
	}
	cfg.BatchLimit = max(cfg.BatchLimit, 1)
	cfg.Concurrency = max(cfg.Concurrency, 1)

	return &service{
		classifier: c,
		engine:     engine.New(c),
		renderer:   preview.New(),
		cache:      store,
		metrics:    metrics,
		logger:     logger.With("system", "compiler"),
		cfg:        cfg,
	}, nil
}

func (s *service) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, maxBodySize)
}

func (s *service) Ensure(ctx context.Context, req EnsureRequest) (*EnsureResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &EnsureResult{
		Prompt:     sections.EnsureBlocks(req.Prompt),
		Structured: sections.IsStructured(req.Prompt),
	}, nil
}

func (s *service) Parse(ctx context.Context, req ParseRequest) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := sections.Parse(req.Prompt)
	out := &ParseResult{Structured: sections.IsStructured(req.Prompt)}
	for _, sec := range sections.Sections() {
		lines := m.Lines(sec)
		if lines == nil {
			lines = []string{}
		}
		out.Sections = append(out.Sections, ParsedSection{
			Section: sec,
			Header:  sec.Header(),
			Lines:   lines,
		})
	}
	return out, nil
}

func (s *service) Diff(ctx context.Context, req DiffRequest) (*DiffResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := engine.ComputeDiff(req.Base, req.Next)
	if rows == nil {
		rows = []engine.DiffRow{}
	}
	added, removed := engine.Count(rows)
	return &DiffResult{Diff: rows, Added: added, Removed: removed}, nil
}

func (s *service) Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(req.Line, "\r\n") {
		return nil, fmt.Errorf("%w: line must not contain line breaks", ErrInvalidField)
	}

	res, kept := s.classifier.Classify(req.Line)
	return &ClassifyResult{Kept: kept, Result: res}, nil
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := plainText("free_text", req.FreeText)
	if err != nil {
		return nil, err
	}

	ctx, id, done := s.track(ctx, "generate")
	gen, cached, err := memo(s, ctx, "generate", []string{req.BasePrompt, text}, func() (engine.Generation, error) {
		return s.engine.GenerateFromFreeText(req.BasePrompt, text), nil
	})
	done(gen.Applied(), err)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{ID: id, Generation: gen, Cached: cached}, nil
}

func (s *service) Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := plainText("instructions", req.Instructions)
	if err != nil {
		return nil, err
	}

	ctx, id, done := s.track(ctx, "apply")
	app, cached, err := memo(s, ctx, "apply", []string{req.BasePrompt, text}, func() (engine.Application, error) {
		return s.engine.ApplyInstructions(req.BasePrompt, text), nil
	})
	done(app.Applied, err)
	if err != nil {
		return nil, err
	}

	return &ApplyResult{ID: id, Application: app, Cached: cached}, nil
}

func (s *service) ApplyUser(ctx context.Context, req ApplyUserRequest) (*ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := plainText("freeform", req.Freeform)
	if err != nil {
		return nil, err
	}

	ctx, id, done := s.track(ctx, "apply_user")
	app, cached, err := memo(s, ctx, "apply_user", []string{req.BasePrompt, text}, func() (engine.Application, error) {
		return s.engine.ApplyUserInstructions(req.BasePrompt, text), nil
	})
	done(app.Applied, err)
	if err != nil {
		return nil, err
	}

	return &ApplyResult{ID: id, Application: app, Cached: cached}, nil
}

func (s *service) Batch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	switch n := len(req.Items); {
	case n == 0:
		return nil, ErrEmptyBatch
	case n > s.cfg.BatchLimit:
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, n, s.cfg.BatchLimit)
	}

	results := make([]ApplyResult, len(req.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i, item := range req.Items {
		g.Go(func() error {
			res, err := s.Apply(gctx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("batch compiled", "items", len(results))
	return &BatchResult{Items: results}, nil
}

func (s *service) Preview(ctx context.Context, req PreviewRequest) (*preview.Preview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, _, done := s.track(ctx, "preview")
	p, _, err := memo(s, ctx, "preview", []string{req.Prompt}, func() (preview.Preview, error) {
		return s.renderer.Render(req.Prompt)
	})
	done(0, err)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *service) Presets(ctx context.Context) ([]PresetSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := append([]string{presets.GenericKey}, presets.Keys()...)
	out := make([]PresetSummary, 0, len(keys))
	for _, k := range keys {
		if p, ok := presets.Lookup(k); ok {
			out = append(out, summarize(p))
		}
	}
	return out, nil
}

func (s *service) Preset(ctx context.Context, key string) (*presets.Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, ok := presets.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, key)
	}
	return &p, nil
}

func (s *service) BuildPreset(ctx context.Context, params presets.Params) (*PromptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	key, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	ctx, id, done := s.track(ctx, "preset")
	prompt, cached, err := memo(s, ctx, "preset", []string{string(key)}, func() (string, error) {
		return presets.Build(params), nil
	})
	done(0, err)
	if err != nil {
		return nil, err
	}

	return &PromptResult{ID: id, Prompt: prompt, Cached: cached}, nil
}

func (s *service) Chips(ctx context.Context) ([]presets.Chip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return presets.Chips(), nil
}

func (s *service) Shape(ctx context.Context, req ShapeRequest) (*PromptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, id, done := s.track(ctx, "shape")
	parts := []string{req.Raw, req.Name, req.Org, req.PersonaName}
	prompt, cached, err := memo(s, ctx, "shape", parts, func() (string, error) {
		return scheduling.ShapePromptForScheduling(req.Raw, req.Options), nil
	})
	done(0, err)
	if err != nil {
		return nil, err
	}

	return &PromptResult{ID: id, Prompt: prompt, Cached: cached}, nil
}

// track opens a span for one compile operation and returns a func that
// records its metrics and closes the span.
func (s *service) track(ctx context.Context, op string) (context.Context, uuid.UUID, func(added int, err error)) {
	id := uuid.New()
	start := time.Now()
	ctx, span := telemetry.StartCompileSpan(ctx, op, id.String())

	return ctx, id, func(added int, err error) {
		defer span.End()

		attrs := telemetry.Op(op)
		s.metrics.Compiles.Add(ctx, 1, attrs)
		s.metrics.Duration.Record(ctx, time.Since(start).Seconds(), attrs)
		if added > 0 {
			s.metrics.LinesAdded.Add(ctx, int64(added), attrs)
		}
		span.SetAttributes(attribute.Int("compile.lines_added", added))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.Warn("compile failed", "op", op, "id", id, "error", err)
			return
		}
		s.logger.Debug("compiled", "op", op, "id", id, "added", added, "duration", time.Since(start))
	}
}

// memo serves op from the cache when possible. Results are stored as JSON
// so a cached value is a copy the caller may keep.
func memo[T any](s *service, ctx context.Context, op string, parts []string, compute func() (T, error)) (T, bool, error) {
	if s.cache == nil {
		v, err := compute()
		return v, false, err
	}

	key := cache.Key(op, parts...)
	if data, ok := s.cache.Get(key); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			s.metrics.CacheHits.Add(ctx, 1, telemetry.Op(op))
			return v, true, nil
		}
		s.cache.Delete(key)
	}
	s.metrics.CacheMisses.Add(ctx, 1, telemetry.Op(op))

	v, err := compute()
	if err != nil {
		return v, false, err
	}
	if data, err := json.Marshal(v); err == nil {
		s.cache.Set(key, data)
	}
	return v, false, nil
}

func plainText(field, s string) (string, error) {
	text, err := plaintext.ToText(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidField, field, err)
	}
	return text, nil
}

func validateParams(p presets.Params) error {
	if len(p.Services) > maxServices {
		return fmt.Errorf("%w: services: %d entries, limit %d", ErrInvalidField, len(p.Services), maxServices)
	}
	if p.Booking != nil {
		// Any provider is accepted once it has a URL to route to.
		t := strings.ToLower(strings.TrimSpace(p.Booking.Type))
		if strings.TrimSpace(p.Booking.URL) == "" && !slices.Contains(bookingTypes, t) {
			return fmt.Errorf("%w: booking.type %q", ErrInvalidField, p.Booking.Type)
		}
	}
	return nil
}
