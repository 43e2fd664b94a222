// Package transport defines the collaborators the tracker forwards to.
//
// Ownership boundary:
// - Session, Socket and Messages contracts
// - in-memory recorder for tests
// - log-backed bundle for dry runs
//
// The recording protocol, socket reconnection and message serialization live
// behind these interfaces and are not implemented here.
package transport
