// Package capability decides once whether the host environment may record.
//
// A host that signals do-not-track, or lacks any of the observer, crypto or
// performance-timing facilities, is unsupported and every tracker call
// degrades to a no-op.
package capability

import (
	"crypto/rand"
	"os"
	"strings"
)

// EnvDoNotTrack follows the console do-not-track convention.
const EnvDoNotTrack = "DO_NOT_TRACK"

// Environment is a snapshot of host facilities.
type Environment struct {
	// DoNotTrack mirrors the navigator flag; "1" opts out.
	DoNotTrack string
	// GlobalDoNotTrack mirrors the window-level flag; any true value opts out.
	GlobalDoNotTrack  bool
	MutationObserver  bool
	Crypto            bool
	Performance       bool
	PerformanceTiming bool
}

// Supported reports whether recording may run in env.
func (env Environment) Supported() bool {
	return strings.TrimSpace(env.DoNotTrack) != "1" &&
		!env.GlobalDoNotTrack &&
		env.MutationObserver &&
		env.Crypto &&
		env.Performance &&
		env.PerformanceTiming
}

// Full returns an environment with every facility present and no opt-out.
func Full() Environment {
	return Environment{
		MutationObserver:  true,
		Crypto:            true,
		Performance:       true,
		PerformanceTiming: true,
	}
}

// Probe inspects the current process.
func Probe() Environment {
	env := Full()
	env.DoNotTrack = os.Getenv(EnvDoNotTrack)
	env.Crypto = cryptoAvailable()
	return env
}

func cryptoAvailable() bool {
	var b [1]byte
	_, err := rand.Read(b[:])
	return err == nil
}
