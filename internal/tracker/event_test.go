package tracker

import (
	"testing"
)

func TestEventArrayPayloadRejected(t *testing.T) {
	h := readyHarness(t)
	h.client.Event("x", []int{1, 2})
	if len(h.mem.Events()) != 0 {
		t.Fatalf("array payload reached transport")
	}
	if h.logs.Count("Should be a hash.") != 1 {
		t.Fatalf("expected warning, logs=%s", h.logs.String())
	}
}

func TestEventScalarPayloadRejected(t *testing.T) {
	for _, p := range []any{"text", 3, true, [1]int{1}} {
		h := readyHarness(t)
		h.client.Event("x", p)
		if len(h.mem.Events()) != 0 {
			t.Fatalf("payload %#v reached transport", p)
		}
	}
}

func TestEventNameMustBeString(t *testing.T) {
	h := readyHarness(t)
	h.client.Event(12, map[string]any{})
	if len(h.mem.Events()) != 0 || h.logs.Count("Should be a string.") != 1 {
		t.Fatalf("expected warning only, logs=%s", h.logs.String())
	}
}

func TestEventPayloadEncoding(t *testing.T) {
	type order struct {
		ID    string `json:"id"`
		Total int    `json:"total"`
	}
	var nilOrder *order
	cases := []struct {
		payload []any
		want    string
	}{
		{payload: nil, want: "null"},
		{payload: []any{nil}, want: "null"},
		{payload: []any{nilOrder}, want: "null"},
		{payload: []any{map[string]any{"a": 1}}, want: `{"a":1}`},
		{payload: []any{order{ID: "o1", Total: 3}}, want: `{"id":"o1","total":3}`},
		{payload: []any{&order{ID: "o2"}}, want: `{"id":"o2","total":0}`},
	}
	for _, tc := range cases {
		h := readyHarness(t)
		h.client.Event("checkout", tc.payload...)
		events := h.mem.Events()
		if len(events) != 1 {
			t.Fatalf("payload %#v: events=%+v", tc.payload, events)
		}
		if events[0].Name != "checkout" || events[0].Payload != tc.want {
			t.Fatalf("payload %#v: got=%+v want=%q", tc.payload, events[0], tc.want)
		}
	}
}

func TestEventUnencodablePayloadWarns(t *testing.T) {
	h := readyHarness(t)
	h.client.Event("bad", map[string]any{"fn": func() {}})
	if len(h.mem.Events()) != 0 {
		t.Fatalf("unencodable payload reached transport")
	}
	if h.logs.Count("could not be encoded") != 1 {
		t.Fatalf("expected encode warning, logs=%s", h.logs.String())
	}
}
