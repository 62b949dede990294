package check

import (
	"fmt"
	"time"

	"github.com/n0needt0/goodies/check-mrtgtraf/internal/config"
	"github.com/n0needt0/goodies/check-mrtgtraf/internal/mrtg"
)

// Result is the terminal outcome of one check invocation.
type Result struct {
	Status  Status
	Message string
}

// Evaluate decides the plugin status for one MRTG sample. It is a pure
// function of the configuration, the record and the current time.
//
// A stale sample wins over every rate check and is reported as a
// warning with its age in whole minutes. Otherwise the configured
// aggregation selects the rate pair, and the thresholds are compared
// with strict greater-than against the raw bytes/sec values.
func Evaluate(cfg *config.Config, rec mrtg.Record, now time.Time) Result {
	if cfg.ExpireMinutes > 0 {
		age := now.Unix() - rec.Timestamp
		if age > int64(cfg.ExpireMinutes)*60 {
			return Result{
				Status:  StatusWarning,
				Message: fmt.Sprintf("MRTG data has expired (%d minutes old)", age/60),
			}
		}
	}

	in, out := rec.AverageIn, rec.AverageOut
	if cfg.Aggregation == config.AggregationMaximum {
		in, out = rec.MaximumIn, rec.MaximumOut
	}

	label := cfg.Aggregation.Label()
	inValue, inUnit := Normalize(in)
	outValue, outUnit := Normalize(out)

	message := fmt.Sprintf("%s. In = %0.1f %s, %s. Out = %0.1f %s",
		label, inValue, inUnit, label, outValue, outUnit)

	switch {
	case in > cfg.IncomingCritical || out > cfg.OutgoingCritical:
		return Result{Status: StatusCritical, Message: message}
	case in > cfg.IncomingWarning || out > cfg.OutgoingWarning:
		return Result{Status: StatusWarning, Message: message}
	}

	return Result{Status: StatusOK, Message: "Traffic ok - " + message}
}
