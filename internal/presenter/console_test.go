package presenter

import (
	"bytes"
	"strings"
	"testing"

	"sentinl"
)

func TestConsole_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		reading  sentinl.Reading
		forecast *sentinl.Forecast
		contains []string
	}{
		{
			name: "first tick has no trend data",
			reading: sentinl.Reading{
				TimeStep:    1,
				Temperature: 43.0,
				Vibration:   11.5,
				Status:      sentinl.StatusOK,
			},
			forecast: nil,
			contains: []string{
				"Tick        : 1",
				"Temperature : 43.00 C",
				"Vibration   : 11.50",
				"Status      : OK",
				"Trend       : insufficient data",
			},
		},
		{
			name: "stable trend",
			reading: sentinl.Reading{
				TimeStep:    5,
				Temperature: 55.0,
				Vibration:   17.5,
				Status:      sentinl.StatusOK,
			},
			forecast: &sentinl.Forecast{Stable: true},
			contains: []string{"Trend       : stable, no immediate risk"},
		},
		{
			name: "non-urgent countdown",
			reading: sentinl.Reading{
				TimeStep:    2,
				Temperature: 46.0,
				Vibration:   13.0,
				Status:      sentinl.StatusOK,
			},
			forecast: &sentinl.Forecast{StepsToFailure: 18},
			contains: []string{"Trend       : safe operation for next 18 ticks"},
		},
		{
			name: "urgent warning",
			reading: sentinl.Reading{
				TimeStep:    15,
				Temperature: 85.0,
				Vibration:   32.5,
				Status:      sentinl.StatusWarning,
			},
			forecast: &sentinl.Forecast{Urgent: true, StepsToFailure: 5},
			contains: []string{
				"Status      : WARNING",
				"PREDICTED FAILURE IN 5 TICKS",
				"recommend emergency shutdown",
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			NewConsole(&buf).Render(tc.reading, tc.forecast)

			out := buf.String()
			for _, want := range tc.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestConsole_TempBarEscalates(t *testing.T) {
	t.Parallel()

	if got := tempBar(43.0); got != "[====      ]" {
		t.Fatalf("low bar: %q", got)
	}
	if got := tempBar(75.0); got != "[========  ]" {
		t.Fatalf("mid bar: %q", got)
	}
	if got := tempBar(95.0); !strings.Contains(got, "!!!") {
		t.Fatalf("hot bar must carry the alarm marker: %q", got)
	}
}

func TestConsole_Alert(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewConsole(&buf).Alert(sentinl.Reading{TimeStep: 21, Temperature: 103.0, Status: sentinl.StatusCritical})

	out := buf.String()
	if !strings.Contains(out, "CRITICAL FAILURE DETECTED AT TICK 21") {
		t.Fatalf("missing failure banner:\n%s", out)
	}
	if !strings.Contains(out, "SYSTEM HALTED") {
		t.Fatalf("missing halt banner:\n%s", out)
	}
}

func TestConsole_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Summary(sentinl.SessionSummary{TotalTicks: 21, Halted: true, HaltReason: "critical classification at tick 21"})
	if got := buf.String(); !strings.Contains(got, "Session ended after 21 ticks (critical classification at tick 21)") {
		t.Fatalf("unexpected summary: %q", got)
	}

	buf.Reset()
	c.Summary(sentinl.SessionSummary{TotalTicks: 4})
	if got := buf.String(); got != "  Session ended after 4 ticks\n" {
		t.Fatalf("unexpected summary: %q", got)
	}
}
