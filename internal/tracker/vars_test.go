package tracker

import (
	"math"
	"testing"

	"github.com/danmuck/asayer/internal/transport"
)

func TestVarsObjectFormFlattens(t *testing.T) {
	h := readyHarness(t)
	h.client.Vars(map[string]any{"b": "x", "a": 1})

	got := h.mem.Vars()
	want := []transport.UserVar{{Key: "a", Value: "1"}, {Key: "b", Value: "x"}}
	if len(got) != len(want) {
		t.Fatalf("unexpected vars=%+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("var[%d] got=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestVarsObjectFormMatchesPairs(t *testing.T) {
	obj := readyHarness(t)
	obj.client.Vars(map[string]any{"a": 1, "b": "x"})

	pairs := readyHarness(t)
	pairs.client.Vars("a", 1)
	pairs.client.Vars("b", "x")

	a, b := obj.mem.Vars(), pairs.mem.Vars()
	if len(a) != len(b) {
		t.Fatalf("object=%+v pairs=%+v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("object=%+v pairs=%+v", a, b)
		}
	}
}

func TestVarsStructObjectForm(t *testing.T) {
	h := readyHarness(t)
	h.client.Vars(struct {
		Plan  string `json:"plan"`
		Seats int    `json:"seats"`
	}{Plan: "pro", Seats: 3})

	got := h.mem.Vars()
	if len(got) != 2 || got[0] != (transport.UserVar{Key: "plan", Value: "pro"}) || got[1] != (transport.UserVar{Key: "seats", Value: "3"}) {
		t.Fatalf("unexpected vars=%+v", got)
	}
}

func TestVarsRejectsBadObjects(t *testing.T) {
	for _, in := range []any{nil, []any{"a"}, [2]string{"a", "b"}, "solo", map[int]string{1: "a"}} {
		h := readyHarness(t)
		h.client.Vars(in)
		if len(h.mem.Vars()) != 0 {
			t.Fatalf("input %#v reached transport", in)
		}
		if h.logs.Count("Should be an object.") != 1 {
			t.Fatalf("input %#v: expected warning, logs=%s", in, h.logs.String())
		}
	}
}

func TestVarsRejectsNonStringKey(t *testing.T) {
	h := readyHarness(t)
	h.client.Vars(1, "x")
	if len(h.mem.Vars()) != 0 || h.logs.Count("Should be a string.") != 1 {
		t.Fatalf("expected warning only, logs=%s", h.logs.String())
	}
}

func TestVarsRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		h := readyHarness(t)
		h.client.Vars("k", v)
		if len(h.mem.Vars()) != 0 {
			t.Fatalf("value %v reached transport", v)
		}
		if h.logs.Count("Should be finite.") != 1 {
			t.Fatalf("value %v: expected warning, logs=%s", v, h.logs.String())
		}
	}
}

func TestVarsRejectsUnsupportedValues(t *testing.T) {
	for _, v := range []any{map[string]any{"n": 1}, []int{1}, struct{}{}, func() {}} {
		h := readyHarness(t)
		h.client.Vars("k", v)
		if len(h.mem.Vars()) != 0 {
			t.Fatalf("value %#v reached transport", v)
		}
		if h.logs.Count("vars wrong second param") != 1 {
			t.Fatalf("value %#v: expected warning", v)
		}
	}
}

func TestVarsCoercesScalars(t *testing.T) {
	type label string
	cases := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "plain", want: "plain"},
		{in: label("named"), want: "named"},
		{in: true, want: "true"},
		{in: false, want: "false"},
		{in: -12, want: "-12"},
		{in: uint16(7), want: "7"},
		{in: 1.5, want: "1.5"},
		{in: 100.0, want: "100"},
		{in: float32(0.1), want: "0.1"},
		{in: -0.0, want: "0"},
		{in: 1e21, want: "1e+21"},
		{in: 1e-7, want: "1e-7"},
		{in: 123456789012.25, want: "123456789012.25"},
	}
	for _, tc := range cases {
		h := readyHarness(t)
		h.client.Vars("k", tc.in)
		got := h.mem.Vars()
		if len(got) != 1 || got[0].Value != tc.want {
			t.Fatalf("Vars(k, %#v) got=%+v want=%q", tc.in, got, tc.want)
		}
	}
}
