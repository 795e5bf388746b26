package service

import (
	"context"
	"time"

	"sentinl"
	"sentinl/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted machine snapshot.
// If no tick has been persisted yet, returns a baseline pre-session snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (sentinl.MachineState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return sentinl.MachineState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState is the snapshot before the first tick: no reading sampled,
// no forecast, cycle not halted.
func (s *MonitoringService) baselineState() sentinl.MachineState {
	return sentinl.MachineState{
		ID: 1, // DB schema enforces single-row state with id=1
		Reading: sentinl.Reading{
			TimeStep: 0,
			Status:   sentinl.StatusOK,
		},
		Forecast:  nil,
		Halted:    false,
		UpdatedAt: time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
