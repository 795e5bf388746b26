package presenter

import (
	"fmt"
	"io"

	"sentinl"
	"sentinl/internal/service"
)

// Console renders the dashboard to a writer. The monitoring core only sees
// the Presenter interface; this is the terminal-facing implementation.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

var _ service.Presenter = (*Console)(nil)

const rule = "===================================================="

// Render prints the sensor panel for one tick.
func (c *Console) Render(r sentinl.Reading, f *sentinl.Forecast) {
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, "  SENTINL | INDUSTRIAL MONITORING")
	fmt.Fprintln(c.out, rule)
	fmt.Fprintf(c.out, "  Tick        : %d\n", r.TimeStep)
	fmt.Fprintf(c.out, "  Temperature : %.2f C  %s\n", r.Temperature, tempBar(r.Temperature))
	fmt.Fprintf(c.out, "  Vibration   : %.2f\n", r.Vibration)
	fmt.Fprintf(c.out, "  Status      : %s\n", r.Status)
	c.renderForecast(f)
}

// Alert prints the terminal halt banner.
func (c *Console) Alert(r sentinl.Reading) {
	fmt.Fprintln(c.out, rule)
	fmt.Fprintf(c.out, "  *** CRITICAL FAILURE DETECTED AT TICK %d ***\n", r.TimeStep)
	fmt.Fprintln(c.out, "  *** SYSTEM HALTED ***")
	fmt.Fprintln(c.out, rule)
}

// Summary prints the session epilogue.
func (c *Console) Summary(s sentinl.SessionSummary) {
	fmt.Fprintf(c.out, "  Session ended after %d ticks", s.TotalTicks)
	if s.HaltReason != "" {
		fmt.Fprintf(c.out, " (%s)", s.HaltReason)
	}
	fmt.Fprintln(c.out)
}

func tempBar(t float64) string {
	switch {
	case t < 60:
		return "[====      ]"
	case t < 90:
		return "[========  ]"
	default:
		return "[==========] !!!"
	}
}

func (c *Console) renderForecast(f *sentinl.Forecast) {
	switch {
	case f == nil:
		fmt.Fprintln(c.out, "  Trend       : insufficient data")
	case f.Stable:
		fmt.Fprintln(c.out, "  Trend       : stable, no immediate risk")
	case f.Urgent:
		fmt.Fprintf(c.out, "  Trend       : PREDICTED FAILURE IN %.0f TICKS; recommend emergency shutdown\n", f.StepsToFailure)
	default:
		fmt.Fprintf(c.out, "  Trend       : safe operation for next %.0f ticks\n", f.StepsToFailure)
	}
}
