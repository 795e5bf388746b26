package service

import (
	"math/rand"

	"sentinl"
)

// ----------- Simulation and classification constants -----------
const (
	CriticalTempC     = 100.0 // halt threshold °C
	CriticalVibration = 50.0  // halt threshold, vibration units
	WarningTempC      = 0.8 * CriticalTempC

	BaselineTempC        = 40.0 // temperature at time step 0
	TempRisePerTick      = 3.0  // degradation ramp °C per tick
	BaselineVibration    = 10.0
	VibrationRisePerTick = 1.5

	TempNoiseMax      = 2.0 // uniform noise bound [0, 2.0)
	VibrationNoiseMax = 1.0 // uniform noise bound [0, 1.0)
)

// Classify maps a measurement to a health status. First match wins:
// either channel above its critical limit is CRITICAL; WARNING is gated
// on temperature only, so vibration alone never yields WARNING.
func Classify(temperature, vibration float64) sentinl.Status {
	switch {
	case temperature > CriticalTempC || vibration > CriticalVibration:
		return sentinl.StatusCritical
	case temperature > WarningTempC:
		return sentinl.StatusWarning
	default:
		return sentinl.StatusOK
	}
}

// NoiseFunc returns one pair of additive noise samples per call.
type NoiseFunc func() (temp, vib float64)

func uniformNoise(rng *rand.Rand) NoiseFunc {
	return func() (float64, float64) {
		return rng.Float64() * TempNoiseMax, rng.Float64() * VibrationNoiseMax
	}
}

// SensorService simulates reading the machine's physical sensors: a
// deterministic degradation ramp plus bounded random noise.
type SensorService struct {
	noise NoiseFunc
}

// NewSensorService returns a sampler seeded for reproducible sessions.
func NewSensorService(seed int64) *SensorService {
	return &SensorService{noise: uniformNoise(rand.New(rand.NewSource(seed)))}
}

// NewSensorServiceWithNoise injects a custom noise source.
func NewSensorServiceWithNoise(noise NoiseFunc) *SensorService {
	return &SensorService{noise: noise}
}

// Generate produces the reading for one time step. Total: it succeeds for
// any step, and the status is derived from the sampled values only.
func (s *SensorService) Generate(timeStep int) sentinl.Reading {
	noiseTemp, noiseVib := s.noise()

	temp := BaselineTempC + TempRisePerTick*float64(timeStep) + noiseTemp
	vib := BaselineVibration + VibrationRisePerTick*float64(timeStep) + noiseVib

	return sentinl.Reading{
		TimeStep:    timeStep,
		Temperature: temp,
		Vibration:   vib,
		Status:      Classify(temp, vib),
	}
}
