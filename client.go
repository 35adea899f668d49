package pipewire

import (
	"log/slog"
	"time"
)

// Observer receives one notification per adapter call. err is nil on
// success.
type Observer interface {
	ObserveCall(op string, err error, elapsed time.Duration)
}

// Client forwards adapter calls to a Library. A Client holds no per-call
// state and is safe for concurrent use as long as the Library is; PipeWire
// itself expects core calls from the loop thread or with the loop locked.
type Client struct {
	lib      Library
	config   Config
	logger   *slog.Logger
	observer Observer
}

// Option configures a Client.
type Option func(*Client)

// WithConfig sets the adapter configuration.
func WithConfig(cfg Config) Option {
	return func(c *Client) { c.config = cfg }
}

// WithLogger sets the logger. Delegations are logged at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver sets an Observer notified after every adapter call.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient returns a Client forwarding to lib.
func NewClient(lib Library, opts ...Option) *Client {
	c := &Client{
		lib:    lib,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "pipewire")
	return c
}

// NewDefaultClient returns a Client over the registered native backend.
func NewDefaultClient(opts ...Option) (*Client, error) {
	lib, err := DefaultLibrary()
	if err != nil {
		return nil, err
	}
	return NewClient(lib, opts...), nil
}

// Config returns the client configuration.
func (c *Client) Config() Config { return c.config }

// Library returns the backend the client forwards to.
func (c *Client) Library() Library { return c.lib }

func (c *Client) observe(op string, start time.Time, err error) {
	if err != nil {
		c.logger.Warn("pipewire call failed", "op", op, "code", Code(err), "error", err)
	}
	if c.observer != nil {
		c.observer.ObserveCall(op, err, time.Since(start))
	}
}
