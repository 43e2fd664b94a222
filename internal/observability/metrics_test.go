package observability

import (
	"testing"
	"time"

	"github.com/danmuck/asayer/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(trackerCalls.WithLabelValues("vars", OutcomeUnsupported))
	RecordCall("vars", OutcomeUnsupported)
	after := testutil.ToFloat64(trackerCalls.WithLabelValues("vars", OutcomeUnsupported))
	if after-before != 1 {
		t.Fatalf("expected one recorded call, got delta=%v", after-before)
	}

	RecordFetch("GET", 200, 12*time.Millisecond)
	RecordProfile("checkout", false)
	RecordSinkRequest("POST", "/echo", 200, true, 3*time.Millisecond)
}
