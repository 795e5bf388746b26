package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"sentinl"
	"sentinl/internal/logger"
	"sentinl/internal/metrics"
	"sentinl/internal/repository"

	"github.com/google/uuid"
)

// Event types recorded in the session history.
const (
	EventSessionStart = "SESSION_START"
	EventAlert        = "ALERT"
	EventIOFailure    = "IO_FAILURE"
	EventCriticalHalt = "CRITICAL_HALT"
	EventSessionEnd   = "SESSION_END"
)

// ErrHalted is returned by Tick once the cycle reached its terminal state.
var ErrHalted = errors.New("monitoring cycle halted")

// Sampler produces one reading per time step.
type Sampler interface {
	Generate(timeStep int) sentinl.Reading
}

// Presenter receives each reading plus the latest forecast (nil until two
// readings exist). The controller makes no assumption about where or how
// this is displayed.
type Presenter interface {
	Render(r sentinl.Reading, f *sentinl.Forecast)
	Alert(r sentinl.Reading)
	Summary(s sentinl.SessionSummary)
}

// MonitorService owns the monitoring cycle: sample, classify, persist,
// predict, then halt or advance. Two states: running and halted (terminal).
type MonitorService struct {
	sampler   Sampler
	readings  repository.ReadingLog
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	presenter Presenter
	log       *logger.Logger

	mu         sync.Mutex
	timeStep   int
	previous   *sentinl.Reading // retained for the two-point trend; at most one
	last       *sentinl.Reading
	halted     bool
	haltReason string
}

func NewMonitorService(
	sampler Sampler,
	readings repository.ReadingLog,
	stateRepo repository.StateRepo,
	eventRepo repository.EventRepo,
	presenter Presenter,
	log *logger.Logger,
) *MonitorService {
	return &MonitorService{
		sampler:   sampler,
		readings:  readings,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		presenter: presenter,
		log:       log,
	}
}

// Run ticks at the given interval until the cycle halts on a CRITICAL
// reading or ctx is canceled by the supervisor. Either way the session
// summary is reported and a SESSION_END event recorded.
func (m *MonitorService) Run(ctx context.Context, tick time.Duration) {
	if err := m.readings.Reset(); err != nil {
		// Keep monitoring even without a clean store; appends will report too.
		m.log.Errorw("reading_log_reset_failed", "err", err)
	}
	if err := m.eventRepo.Append(ctx, sentinl.MonitorEvent{
		EventID:     uuid.NewString(),
		Type:        EventSessionStart,
		Description: "Monitoring session started",
	}); err != nil {
		m.log.Errorw("session_start_event_failed", "err", err)
	}

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			m.finish("supervisor stop")
			return
		case <-t.C:
			if err := m.Tick(ctx); err != nil && !errors.Is(err, ErrHalted) {
				m.log.Errorw("tick_failed", "err", err)
			}
			if m.IsHalted() {
				m.finish("")
				return
			}
		}
	}
}

// Tick advances the cycle by one step. Only valid while running; after the
// halt it returns ErrHalted without sampling.
func (m *MonitorService) Tick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}

	m.timeStep++
	current := m.sampler.Generate(m.timeStep)

	// Persist to the durable store. Failure is recoverable: the observation
	// is lost for this tick but monitoring continues, and the loss is made
	// visible through a warning and an IO_FAILURE event.
	if err := m.readings.Append(current); err != nil {
		metrics.LogFailuresTotal.Inc()
		m.log.Warnw("reading_log_append_failed", "time_step", current.TimeStep, "err", err)
		m.appendEvent(ctx, EventIOFailure, "Reading lost: durable log append failed", map[string]any{
			"time_step": current.TimeStep,
			"error":     err.Error(),
		})
	}

	var forecast *sentinl.Forecast
	if m.previous != nil {
		f := Predict(current, *m.previous)
		forecast = &f
		if !f.Stable {
			metrics.StepsToFailure.Set(f.StepsToFailure)
		}
		if f.Urgent {
			m.log.Warnw("failure_predicted",
				"time_step", current.TimeStep,
				"steps_to_failure", f.StepsToFailure,
			)
			m.appendEvent(ctx, EventAlert, "Predicted failure within urgency window", map[string]any{
				"time_step":        current.TimeStep,
				"steps_to_failure": f.StepsToFailure,
			})
		}
	}

	m.presenter.Render(current, forecast)
	m.observe(current)

	halted := current.Status == sentinl.StatusCritical
	m.saveSnapshot(ctx, current, forecast, halted)

	m.last = &current
	if halted {
		m.halted = true
		m.haltReason = "critical classification at tick " + strconv.Itoa(current.TimeStep)
		m.log.Errorw("critical_halt",
			"time_step", current.TimeStep,
			"temperature", current.Temperature,
			"vibration", current.Vibration,
		)
		m.appendEvent(ctx, EventCriticalHalt, "Critical failure detected; cycle halted", map[string]any{
			"time_step":   current.TimeStep,
			"temperature": current.Temperature,
			"vibration":   current.Vibration,
		})
		m.presenter.Alert(current)
		return nil
	}

	m.previous = &current
	return nil
}

// IsHalted reports whether the cycle reached its terminal state.
func (m *MonitorService) IsHalted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.halted
}

// Summary describes the session so far.
func (m *MonitorService) Summary() sentinl.SessionSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sentinl.SessionSummary{
		TotalTicks:  m.timeStep,
		LastReading: m.last,
		Halted:      m.halted,
		HaltReason:  m.haltReason,
	}
}

// finish reports the session summary once the loop stops. reason overrides
// the halt reason for supervisor-driven stops.
func (m *MonitorService) finish(reason string) {
	m.mu.Lock()
	if reason != "" && m.haltReason == "" {
		m.haltReason = reason
	}
	m.mu.Unlock()

	summary := m.Summary()
	m.presenter.Summary(summary)

	// The run context may already be canceled; give the final event its own.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	m.appendEvent(ctx, EventSessionEnd, "Monitoring session ended", map[string]any{
		"total_ticks": summary.TotalTicks,
		"halted":      summary.Halted,
		"halt_reason": summary.HaltReason,
	})
	m.log.Infow("session_ended", "total_ticks", summary.TotalTicks, "halted", summary.Halted)
}

// appendEvent records an event, logging instead of failing the tick.
func (m *MonitorService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	err := m.eventRepo.Append(ctx, sentinl.MonitorEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		m.log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}

// saveSnapshot persists the latest observable state, best effort.
func (m *MonitorService) saveSnapshot(ctx context.Context, r sentinl.Reading, f *sentinl.Forecast, halted bool) {
	err := m.stateRepo.Save(ctx, sentinl.MachineState{
		ID:        1,
		Reading:   r,
		Forecast:  f,
		Halted:    halted,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		m.log.Warnw("snapshot_save_failed", "time_step", r.TimeStep, "err", err)
	}
}

// observe updates the Prometheus view of the machine.
func (m *MonitorService) observe(r sentinl.Reading) {
	metrics.TicksTotal.Inc()
	metrics.ReadingsByStatus.WithLabelValues(r.Status.String()).Inc()
	metrics.Temperature.Set(r.Temperature)
	metrics.Vibration.Set(r.Vibration)
	metrics.MachineStatus.Set(float64(r.Status))
}
