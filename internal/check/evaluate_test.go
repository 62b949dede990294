package check

import (
	"testing"
	"time"

	"github.com/n0needt0/goodies/check-mrtgtraf/internal/config"
	"github.com/n0needt0/goodies/check-mrtgtraf/internal/mrtg"
)

// helper to build a config quickly
func cfg(agg config.Aggregation, expire int, iw, ic, ow, oc uint64) *config.Config {
	return &config.Config{
		LogFile:          "test.log",
		ExpireMinutes:    expire,
		Aggregation:      agg,
		IncomingWarning:  iw,
		IncomingCritical: ic,
		OutgoingWarning:  ow,
		OutgoingCritical: oc,
	}
}

var record = mrtg.Record{
	Timestamp:  100,
	AverageIn:  500,
	AverageOut: 600,
	MaximumIn:  700,
	MaximumOut: 800,
}

func TestEvaluate_CriticalOnZeroThresholds(t *testing.T) {
	got := Evaluate(cfg(config.AggregationAverage, 0, 0, 0, 0, 0), record, time.Unix(110, 0))

	if got.Status != StatusCritical {
		t.Fatalf("status = %s, want CRITICAL", got.Status)
	}
	want := "Ave. In = 500.0 B/s, Ave. Out = 600.0 B/s"
	if got.Message != want {
		t.Fatalf("message = %q, want %q", got.Message, want)
	}
}

func TestEvaluate_OKMessagePrefix(t *testing.T) {
	got := Evaluate(cfg(config.AggregationAverage, 0, 1000, 2000, 1000, 2000), record, time.Unix(110, 0))

	if got.Status != StatusOK {
		t.Fatalf("status = %s, want OK", got.Status)
	}
	want := "Traffic ok - Ave. In = 500.0 B/s, Ave. Out = 600.0 B/s"
	if got.Message != want {
		t.Fatalf("message = %q, want %q", got.Message, want)
	}
}

func TestEvaluate_StalenessBeatsThresholds(t *testing.T) {
	got := Evaluate(cfg(config.AggregationAverage, 5, 0, 0, 0, 0), record, time.Unix(700, 0))

	if got.Status != StatusWarning {
		t.Fatalf("status = %s, want WARNING", got.Status)
	}
	want := "MRTG data has expired (10 minutes old)"
	if got.Message != want {
		t.Fatalf("message = %q, want %q", got.Message, want)
	}
}

func TestEvaluate_ExpireDisabled(t *testing.T) {
	// expire 0 means no staleness check, even for an ancient sample
	got := Evaluate(cfg(config.AggregationAverage, 0, 1000, 2000, 1000, 2000), record, time.Unix(1<<31, 0))

	if got.Status != StatusOK {
		t.Fatalf("status = %s, want OK", got.Status)
	}
}

func TestEvaluate_StrictThresholdBoundaries(t *testing.T) {
	cases := []struct {
		name string
		ic   uint64
		iw   uint64
		want Status
	}{
		{"equal to critical is not critical", 500, 499, StatusWarning},
		{"one below critical is critical", 499, 499, StatusCritical},
		{"equal to warning is ok", 1000, 500, StatusOK},
		{"one below warning warns", 1000, 499, StatusWarning},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Evaluate(cfg(config.AggregationAverage, 0, c.iw, c.ic, 10000, 20000), record, time.Unix(110, 0))
			if got.Status != c.want {
				t.Fatalf("status = %s, want %s", got.Status, c.want)
			}
		})
	}
}

func TestEvaluate_OutgoingThresholdAlone(t *testing.T) {
	got := Evaluate(cfg(config.AggregationAverage, 0, 10000, 20000, 100, 20000), record, time.Unix(110, 0))

	if got.Status != StatusWarning {
		t.Fatalf("status = %s, want WARNING", got.Status)
	}
}

func TestEvaluate_AggregationSelectsFieldPair(t *testing.T) {
	// thresholds sit between the average and maximum rates
	avg := Evaluate(cfg(config.AggregationAverage, 0, 600, 650, 600, 650), record, time.Unix(110, 0))
	max := Evaluate(cfg(config.AggregationMaximum, 0, 600, 650, 600, 650), record, time.Unix(110, 0))

	if avg.Status != StatusOK {
		t.Fatalf("AVG status = %s, want OK", avg.Status)
	}
	if max.Status != StatusCritical {
		t.Fatalf("MAX status = %s, want CRITICAL", max.Status)
	}
	want := "Max. In = 700.0 B/s, Max. Out = 800.0 B/s"
	if max.Message != want {
		t.Fatalf("MAX message = %q, want %q", max.Message, want)
	}
}

func TestEvaluate_ScaledDisplayRawComparison(t *testing.T) {
	rec := mrtg.Record{Timestamp: 100, AverageIn: 1536, AverageOut: 2621440}

	// thresholds are raw bytes/sec even though the message is scaled
	got := Evaluate(cfg(config.AggregationAverage, 0, 1535, 3000000, 3000000, 4000000), rec, time.Unix(110, 0))

	if got.Status != StatusWarning {
		t.Fatalf("status = %s, want WARNING", got.Status)
	}
	want := "Ave. In = 1.5 KB/s, Ave. Out = 2.5 MB/s"
	if got.Message != want {
		t.Fatalf("message = %q, want %q", got.Message, want)
	}
}

func TestStatusExitCodes(t *testing.T) {
	cases := []struct {
		status Status
		code   int
		label  string
	}{
		{StatusOK, 0, "OK"},
		{StatusWarning, 1, "WARNING"},
		{StatusCritical, 2, "CRITICAL"},
		{StatusUnknown, 3, "UNKNOWN"},
	}

	for _, c := range cases {
		if c.status.ExitCode() != c.code {
			t.Fatalf("%s exit code = %d, want %d", c.label, c.status.ExitCode(), c.code)
		}
		if c.status.String() != c.label {
			t.Fatalf("String() = %q, want %q", c.status.String(), c.label)
		}
	}
}
