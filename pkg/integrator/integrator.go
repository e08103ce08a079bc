// Package integrator classifies a single camera ray against the black hole
// scene, either in flat space or by stepping a null geodesic through the
// Schwarzschild metric.
package integrator

import "image/color"

// Outcome is how a ray's classification terminated
type Outcome int

const (
	OutcomeSky     Outcome = iota // flat-space ray that hit nothing
	OutcomeHorizon                // flat-space ray that hit the horizon sphere
	OutcomeDisk                   // flat-space ray that hit the accretion disk
	OutcomeCaptured
	OutcomeEscaped
	OutcomeNumericallyInvalid // NaN in position or velocity
	OutcomeMetricUndefined    // g_tt evaluated to NaN
	OutcomeHorizonStall       // too close to the horizon to keep stepping
	OutcomeStepLimit          // neither escaped nor captured within MaxSteps

	NumOutcomes = int(OutcomeStepLimit) + 1
)

var outcomeNames = [NumOutcomes]string{
	OutcomeSky:                "sky",
	OutcomeHorizon:            "horizon",
	OutcomeDisk:               "disk",
	OutcomeCaptured:           "captured",
	OutcomeEscaped:            "escaped",
	OutcomeNumericallyInvalid: "numerically-invalid",
	OutcomeMetricUndefined:    "metric-undefined",
	OutcomeHorizonStall:       "horizon-stall",
	OutcomeStepLimit:          "step-limit",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= NumOutcomes {
		return "unknown"
	}
	return outcomeNames[o]
}

// IsFailure reports whether the outcome is an integration failure. Failure
// colors are diagnostic sentinels, not disk or sky samples.
func (o Outcome) IsFailure() bool {
	switch o {
	case OutcomeNumericallyInvalid, OutcomeMetricUndefined, OutcomeHorizonStall, OutcomeStepLimit:
		return true
	}
	return false
}

// Sentinel colors for integration failures
var (
	ColorNumericallyInvalid = color.RGBA{R: 255, A: 255}
	ColorMetricUndefined    = color.RGBA{B: 255, A: 255}
	ColorHorizonStall       = color.RGBA{R: 255, B: 255, A: 255}
	ColorStepLimit          = color.RGBA{G: 255, A: 255}

	black = color.RGBA{A: 255}
)

// Result is the classification of one ray
type Result struct {
	Outcome Outcome
	Color   color.RGBA
	Steps   int // integration steps taken; 0 for flat-space rays
}
