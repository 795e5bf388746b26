package service

import "sentinl"

// A forecast closer than this many ticks to the critical temperature is
// urgent enough to recommend emergency shutdown.
const UrgentThresholdTicks = 10.0

// Predict extrapolates the time until temperature crosses the critical
// threshold from exactly two consecutive readings (tick interval = 1).
// A non-rising trend is stable regardless of the absolute temperature.
// Deliberately a two-point slope, not a fitted regression over history.
func Predict(current, previous sentinl.Reading) sentinl.Forecast {
	rate := current.Temperature - previous.Temperature
	if rate <= 0 {
		return sentinl.Forecast{Stable: true}
	}

	steps := (CriticalTempC - current.Temperature) / rate
	if steps < 0 {
		steps = 0
	}

	return sentinl.Forecast{
		Stable:         false,
		Urgent:         steps < UrgentThresholdTicks,
		StepsToFailure: steps,
	}
}
