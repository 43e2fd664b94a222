package tracker

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danmuck/asayer/internal/capability"
	"github.com/danmuck/asayer/internal/testutil/testlog"
	"github.com/danmuck/asayer/internal/transport"
	"github.com/rs/zerolog"
)

var fixedNow = time.UnixMilli(1700000000000)

// syncBuffer guards log output written from fetch goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Count(substr string) int {
	return strings.Count(b.String(), substr)
}

type harness struct {
	client *Client
	mem    *transport.Memory
	logs   *syncBuffer
}

func newHarness(t *testing.T, env capability.Environment, opts ...Option) harness {
	t.Helper()
	testlog.Start(t)
	mem := transport.NewMemory()
	logs := &syncBuffer{}
	all := append([]Option{
		WithEnvironment(env),
		WithLogger(zerolog.New(logs)),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	c, err := NewClient(mem.Bundle(), all...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return harness{client: c, mem: mem, logs: logs}
}

// readyHarness returns an initialized client on a fully capable host.
func readyHarness(t *testing.T, opts ...Option) harness {
	t.Helper()
	h := newHarness(t, capability.Full(), opts...)
	h.client.Init(Options{SiteID: 42})
	if h.client.State() != StateReady {
		t.Fatalf("expected ready client, got=%s", h.client.State())
	}
	return h
}

func fullEnv() capability.Environment {
	return capability.Full()
}
