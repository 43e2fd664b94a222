package tracker

import (
	"fmt"
	"reflect"
	"runtime"
	"time"

	"github.com/danmuck/asayer/internal/observability"
)

type profileRecord struct {
	Name   string `json:"name"`
	Args   []any  `json:"args"`
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Profiler instruments code paths under one name. A Profiler obtained from a
// client that is not ready hands out nil spans, which are no-ops.
type Profiler struct {
	client  *Client
	name    string
	enabled bool
}

// Span is one profiled invocation.
type Span struct {
	profiler *Profiler
	args     []any
	start    time.Time
	ended    bool
}

// Profiler returns an instrumentation handle for explicit use in methods:
//
//	defer c.Profiler("Cart.Checkout").Begin(items).End()
func (c *Client) Profiler(name string) *Profiler {
	return &Profiler{client: c, name: name, enabled: c.ready("profiler")}
}

func (p *Profiler) Name() string {
	return p.name
}

// Begin snapshots args and starts timing.
func (p *Profiler) Begin(args ...any) *Span {
	if p == nil || !p.enabled {
		return nil
	}
	snap := make([]any, len(args))
	for i, a := range args {
		snap[i] = snapshot(a)
	}
	return &Span{profiler: p, args: snap, start: p.client.now()}
}

// End reports the span with its results: none is null, one is the value,
// several are an array. Only the first call reports.
func (s *Span) End(results ...any) {
	s.finish(results, "")
}

// Fail reports the span with an error text and no result.
func (s *Span) Fail(reason any) {
	s.finish(nil, fmt.Sprint(reason))
}

func (s *Span) finish(results []any, failure string) {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	p := s.profiler
	end := p.client.now()

	var result any
	switch len(results) {
	case 0:
	case 1:
		result = snapshot(results[0])
	default:
		all := make([]any, len(results))
		for i, r := range results {
			all[i] = snapshot(r)
		}
		result = all
	}
	observability.RecordProfile(p.name, failure != "")
	p.client.emit(ProfileEventName, profileRecord{
		Name:   p.name,
		Args:   s.args,
		Start:  s.start.UnixMilli(),
		End:    end.UnixMilli(),
		Result: result,
		Error:  failure,
	})
}

// Wrap returns fn instrumented under name. When the client is not ready fn is
// returned unchanged. An empty name uses the function's symbol name. If fn
// panics the event is reported first and the panic continues unchanged.
func Wrap[F any](c *Client, name string, fn F) F {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		c.logger.Warn().Msgf("profiler wrong param %T. Should be a function.", fn)
		return fn
	}
	if name == "" {
		name = funcName(rv)
	}
	p := c.Profiler(name)
	if !p.enabled {
		return fn
	}

	variadic := rv.Type().IsVariadic()
	wrapped := reflect.MakeFunc(rv.Type(), func(in []reflect.Value) []reflect.Value {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}
		span := p.Begin(args...)
		completed := false
		defer func() {
			if completed {
				return
			}
			if r := recover(); r != nil {
				span.Fail(r)
				panic(r)
			}
		}()

		var out []reflect.Value
		if variadic {
			out = rv.CallSlice(in)
		} else {
			out = rv.Call(in)
		}
		completed = true

		results := make([]any, len(out))
		for i, v := range out {
			results[i] = v.Interface()
		}
		span.End(results...)
		return out
	})
	return wrapped.Interface().(F)
}

func funcName(rv reflect.Value) string {
	if f := runtime.FuncForPC(rv.Pointer()); f != nil {
		return f.Name()
	}
	return rv.Type().String()
}
