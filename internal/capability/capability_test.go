package capability

import (
	"testing"

	"github.com/danmuck/asayer/internal/testutil/testlog"
)

func TestSupportedRequiresEveryFacility(t *testing.T) {
	testlog.Start(t)
	if !Full().Supported() {
		t.Fatalf("full environment should be supported")
	}

	missing := []func(*Environment){
		func(e *Environment) { e.MutationObserver = false },
		func(e *Environment) { e.Crypto = false },
		func(e *Environment) { e.Performance = false },
		func(e *Environment) { e.PerformanceTiming = false },
		func(e *Environment) { e.DoNotTrack = "1" },
		func(e *Environment) { e.GlobalDoNotTrack = true },
	}
	for i, mutate := range missing {
		env := Full()
		mutate(&env)
		if env.Supported() {
			t.Fatalf("case %d: expected unsupported env=%+v", i, env)
		}
	}
}

func TestDoNotTrackOnlyOptsOutOnOne(t *testing.T) {
	testlog.Start(t)
	env := Full()
	env.DoNotTrack = "0"
	if !env.Supported() {
		t.Fatalf("dnt=0 should stay supported")
	}
	env.DoNotTrack = "unspecified"
	if !env.Supported() {
		t.Fatalf("dnt=unspecified should stay supported")
	}
}

func TestProbeReadsDoNotTrackEnv(t *testing.T) {
	testlog.Start(t)
	t.Setenv(EnvDoNotTrack, "1")
	env := Probe()
	if env.DoNotTrack != "1" {
		t.Fatalf("unexpected dnt=%q", env.DoNotTrack)
	}
	if env.Supported() {
		t.Fatalf("probe with DO_NOT_TRACK=1 should be unsupported")
	}
	if !env.Crypto {
		t.Fatalf("crypto/rand should be available")
	}
}
