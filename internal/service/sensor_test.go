package service

import (
	"math/rand"
	"testing"

	"sentinl"
)

func zeroNoise() (float64, float64) { return 0, 0 }

func TestClassify_CriticalOnEitherChannel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		temp float64
		vib  float64
		want sentinl.Status
	}{
		{"temp above critical", 100.01, 0, sentinl.StatusCritical},
		{"temp far above critical, vib ok", 250, 10, sentinl.StatusCritical},
		{"vib above critical, temp ok", 20, 50.01, sentinl.StatusCritical},
		{"both above critical", 120, 60, sentinl.StatusCritical},
		{"temp exactly critical is not critical", 100.0, 0, sentinl.StatusWarning},
		{"vib exactly critical is not critical", 20, 50.0, sentinl.StatusOK},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.temp, tc.vib); got != tc.want {
				t.Fatalf("Classify(%v, %v) = %v, want %v", tc.temp, tc.vib, got, tc.want)
			}
		})
	}
}

func TestClassify_WarningGatedOnTemperatureOnly(t *testing.T) {
	t.Parallel()

	// temperature in (80, 100] with vibration within limits → WARNING
	for _, temp := range []float64{80.01, 90, 99.99, 100.0} {
		if got := Classify(temp, 49.9); got != sentinl.StatusWarning {
			t.Fatalf("Classify(%v, 49.9) = %v, want WARNING", temp, got)
		}
	}

	// high-but-subcritical vibration never raises WARNING on its own
	for _, vib := range []float64{40.0, 49.99, 50.0} {
		if got := Classify(70, vib); got != sentinl.StatusOK {
			t.Fatalf("Classify(70, %v) = %v, want OK", vib, got)
		}
	}
}

func TestClassify_OKBelowThresholds(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]float64{{0, 0}, {40, 10}, {80.0, 50.0}, {-5, -1}} {
		if got := Classify(tc[0], tc[1]); got != sentinl.StatusOK {
			t.Fatalf("Classify(%v, %v) = %v, want OK", tc[0], tc[1], got)
		}
	}
}

func TestGenerate_MonotonicBaselineWithZeroNoise(t *testing.T) {
	t.Parallel()

	svc := NewSensorServiceWithNoise(zeroNoise)

	for step := 1; step <= 30; step++ {
		r := svc.Generate(step)
		wantTemp := BaselineTempC + TempRisePerTick*float64(step)
		wantVib := BaselineVibration + VibrationRisePerTick*float64(step)

		if r.TimeStep != step {
			t.Fatalf("step %d: got TimeStep %d", step, r.TimeStep)
		}
		if r.Temperature != wantTemp {
			t.Fatalf("step %d: temperature %.4f, want %.4f", step, r.Temperature, wantTemp)
		}
		if r.Vibration != wantVib {
			t.Fatalf("step %d: vibration %.4f, want %.4f", step, r.Vibration, wantVib)
		}
		if r.Status != Classify(r.Temperature, r.Vibration) {
			t.Fatalf("step %d: status %v disagrees with classification rule", step, r.Status)
		}
	}
}

func TestGenerate_NoiseStaysWithinBounds(t *testing.T) {
	t.Parallel()

	svc := NewSensorService(1)

	for step := 1; step <= 500; step++ {
		r := svc.Generate(step)
		baseTemp := BaselineTempC + TempRisePerTick*float64(step)
		baseVib := BaselineVibration + VibrationRisePerTick*float64(step)

		if r.Temperature < baseTemp || r.Temperature >= baseTemp+TempNoiseMax {
			t.Fatalf("step %d: temperature noise out of [0, %v): %.4f vs base %.4f",
				step, TempNoiseMax, r.Temperature, baseTemp)
		}
		if r.Vibration < baseVib || r.Vibration >= baseVib+VibrationNoiseMax {
			t.Fatalf("step %d: vibration noise out of [0, %v): %.4f vs base %.4f",
				step, VibrationNoiseMax, r.Vibration, baseVib)
		}
	}
}

func TestGenerate_SameSeedReproducesSession(t *testing.T) {
	t.Parallel()

	a := NewSensorService(1234)
	b := NewSensorService(1234)

	for step := 1; step <= 50; step++ {
		if ra, rb := a.Generate(step), b.Generate(step); ra != rb {
			t.Fatalf("step %d: readings diverged: %+v vs %+v", step, ra, rb)
		}
	}
}

func TestUniformNoise_UsesConfiguredBounds(t *testing.T) {
	t.Parallel()

	noise := uniformNoise(rand.New(rand.NewSource(7)))
	for i := 0; i < 1000; i++ {
		nt, nv := noise()
		if nt < 0 || nt >= TempNoiseMax {
			t.Fatalf("temperature noise %v out of [0, %v)", nt, TempNoiseMax)
		}
		if nv < 0 || nv >= VibrationNoiseMax {
			t.Fatalf("vibration noise %v out of [0, %v)", nv, VibrationNoiseMax)
		}
	}
}
