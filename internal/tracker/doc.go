// Package tracker is the caller-facing facade of the recording SDK.
//
// A Client validates dynamic input and forwards it to a transport.Bundle.
// Misuse never panics or returns an error: it is reported through the
// client's logger and the call degrades to a default value or a no-op.
//
// Ownership boundary:
// - init guard and readiness gate
// - user vars and user events
// - fetch interception (http.RoundTripper)
// - function profiling
package tracker
