package tracker

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/danmuck/asayer/internal/capability"
	"github.com/danmuck/asayer/internal/logging"
	"github.com/danmuck/asayer/internal/observability"
	"github.com/danmuck/asayer/internal/transport"
	"github.com/rs/zerolog"
)

// DefaultMaxBodyBytes bounds captured fetch request and response bodies.
const DefaultMaxBodyBytes int64 = 64 << 10

// Synthetic event names emitted by the client itself.
const (
	FetchEventName   = "__asayer_fetch"
	ProfileEventName = "__asayer_profile"
)

// Client forwards validated calls to a transport bundle.
// The zero value is not usable; construct with NewClient.
type Client struct {
	bundle      transport.Bundle
	logger      zerolog.Logger
	supported   bool
	environment capability.Environment
	maxBody     int64
	now         func() time.Time
	fetchClient *http.Client

	mu          sync.RWMutex
	initialized bool
	siteID      int
	header      string
}

// Option customizes a Client at construction.
type Option func(*clientConfig)

type clientConfig struct {
	logger      *zerolog.Logger
	environment *capability.Environment
	httpClient  *http.Client
	maxBody     int64
	now         func() time.Time
}

func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = &logger }
}

// WithEnvironment replaces the host probe.
func WithEnvironment(env capability.Environment) Option {
	return func(cfg *clientConfig) { cfg.environment = &env }
}

// WithHTTPClient sets the client Fetch sends through. Its Transport is
// wrapped, the original value is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = hc }
}

func WithMaxBodyBytes(n int64) Option {
	return func(cfg *clientConfig) { cfg.maxBody = n }
}

func WithClock(now func() time.Time) Option {
	return func(cfg *clientConfig) { cfg.now = now }
}

// NewClient builds a Client around bundle. The capability check runs here,
// once, and is never repeated.
func NewClient(bundle transport.Bundle, opts ...Option) (*Client, error) {
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	cfg := clientConfig{maxBody: DefaultMaxBodyBytes, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	env := capability.Probe()
	if cfg.environment != nil {
		env = *cfg.environment
	}
	logger := logging.Component("asayer")
	if cfg.logger != nil {
		logger = *cfg.logger
	}
	if cfg.maxBody <= 0 {
		cfg.maxBody = DefaultMaxBodyBytes
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}

	c := &Client{
		bundle:      bundle,
		logger:      logger,
		supported:   env.Supported(),
		environment: env,
		maxBody:     cfg.maxBody,
		now:         cfg.now,
		header:      transport.DefaultSessionIDHeader,
	}

	base := http.DefaultClient
	if cfg.httpClient != nil {
		base = cfg.httpClient
	}
	fc := *base
	fc.Transport = c.RoundTripper(base.Transport)
	c.fetchClient = &fc
	return c, nil
}

func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return StateUninitialized
	}
	if !c.supported {
		return StateUnsupported
	}
	return StateReady
}

// SiteID returns the identifier set by a successful Init.
func (c *Client) SiteID() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.siteID, c.initialized
}

func (c *Client) SessionIDHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header
}

// Environment returns the capability snapshot taken at construction.
func (c *Client) Environment() capability.Environment {
	return c.environment
}

// ready is the method gate: it logs when the client was never initialized,
// stays silent when the host is unsupported, and reports whether to proceed.
func (c *Client) ready(method string) bool {
	switch c.State() {
	case StateUninitialized:
		observability.RecordCall(method, observability.OutcomeUninitialized)
		c.logger.Error().Str("method", method).Msg("package was not initialized")
		return false
	case StateUnsupported:
		observability.RecordCall(method, observability.OutcomeUnsupported)
		return false
	}
	observability.RecordCall(method, observability.OutcomeForwarded)
	return true
}

func gate[T any](c *Client, method string, def T, fn func() T) T {
	if !c.ready(method) {
		return def
	}
	return fn()
}

func (c *Client) emit(name string, record any) {
	data, err := json.Marshal(record)
	if err != nil {
		c.logger.Warn().Err(err).Str("event", name).Msg("synthetic event could not be encoded")
		return
	}
	c.bundle.Messages.UserEvent(name, string(data))
}
