// Package bus provides NATS request/reply transport with queue-group
// responders.
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrorHeader marks a reply whose body is an error document.
const ErrorHeader = "Quill-Error"

// ErrRemote wraps errors reported by a responder.
var ErrRemote = errors.New("remote error")

// Handler answers one request body.
type Handler func(ctx context.Context, data []byte) ([]byte, error)

// Config configures the connection and responders.
type Config struct {
	URL        string
	Name       string
	QueueGroup string
	Timeout    time.Duration
}

// Bus is a NATS connection with registered responders.
type Bus struct {
	nc     *nats.Conn
	cfg    Config
	logger *slog.Logger
	mu     sync.Mutex
	subs   []*nats.Subscription
}

// Connect dials the NATS server at cfg.URL.
func Connect(cfg Config, logger *slog.Logger) (*Bus, error) {
	nc, err := nats.Connect(cfg.URL, nats.Name(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Bus{
		nc:     nc,
		cfg:    cfg,
		logger: logger.With("system", "bus"),
	}, nil
}

// Respond registers h on subject within the configured queue group.
func (b *Bus) Respond(subject string, h Handler) error {
	sub, err := b.nc.QueueSubscribe(subject, b.cfg.QueueGroup, func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.Timeout)
		defer cancel()

		start := time.Now()
		out, err := h(ctx, msg.Data)
		if err != nil {
			b.logger.Warn("request failed", "subject", msg.Subject, "error", err)
			b.reply(msg, errorBody(err), true)
			return
		}

		b.reply(msg, out, false)
		b.logger.Info(
			"request",
			"subject", msg.Subject,
			"bytes", len(msg.Data),
			"duration", time.Since(start),
		)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	b.logger.Info("responder registered", "subject", subject, "queue", b.cfg.QueueGroup)
	return nil
}

// Request sends data to subject and waits for the reply. Error replies are
// returned as ErrRemote.
func (b *Bus) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	resp, err := b.nc.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", subject, err)
	}

	if resp.Header.Get(ErrorHeader) != "" {
		var body struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(resp.Data, &body); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrRemote, resp.Data)
		}
		return nil, fmt.Errorf("%w: %s", ErrRemote, body.Error)
	}

	return resp.Data, nil
}

// Ready reports whether the connection is currently established.
func (b *Bus) Ready() bool {
	return b.nc.IsConnected()
}

// Close drains subscriptions and closes the connection.
func (b *Bus) Close() error {
	if err := b.nc.Drain(); err != nil {
		b.nc.Close()
		return fmt.Errorf("nats drain: %w", err)
	}
	return nil
}

func (b *Bus) reply(msg *nats.Msg, data []byte, failed bool) {
	if msg.Reply == "" {
		return
	}
	out := nats.NewMsg(msg.Reply)
	out.Data = data
	if failed {
		out.Header.Set(ErrorHeader, "1")
	}
	if err := msg.RespondMsg(out); err != nil {
		b.logger.Error("reply failed", "subject", msg.Subject, "error", err)
	}
}

func errorBody(err error) []byte {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return data
}
