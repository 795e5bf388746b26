package sentinl

import "time"

// Status is the discrete health classification of a reading.
// The integer codes are part of the durable CSV record format.
type Status int

const (
	StatusOK       Status = 0
	StatusWarning  Status = 1
	StatusCritical Status = 2
)

// String returns the display name used on dashboards and in logs.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Reading is one sampled observation of the machine. It is immutable once
// produced: Status is derived from Temperature/Vibration at creation time
// and never set independently.
type Reading struct {
	TimeStep    int     `json:"time_step"`   // monotonically increasing, starts at 1
	Temperature float64 `json:"temperature"` // °C
	Vibration   float64 `json:"vibration"`   // vibration units
	Status      Status  `json:"status"`      // 0=OK 1=WARNING 2=CRITICAL
}

// Forecast is the predicted time-to-critical under a constant-rate
// assumption derived from exactly two consecutive readings.
type Forecast struct {
	Stable         bool    `json:"stable"`                     // non-rising trend, no risk computed
	Urgent         bool    `json:"urgent,omitempty"`           // failure predicted within 10 ticks
	StepsToFailure float64 `json:"steps_to_failure,omitempty"` // ticks until temperature crosses critical
}

// MachineState is the latest persisted snapshot of the monitored machine.
type MachineState struct {
	ID        int       `json:"id"`
	Reading   Reading   `json:"reading"`
	Forecast  *Forecast `json:"forecast,omitempty"` // nil until two readings exist
	Halted    bool      `json:"halted"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonitorEvent is a single entry in the append-only session event log.
type MonitorEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SESSION_START | ALERT | IO_FAILURE | CRITICAL_HALT | SESSION_END
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// SessionSummary describes a finished (or running) monitoring session.
type SessionSummary struct {
	TotalTicks  int      `json:"total_ticks"`
	LastReading *Reading `json:"last_reading,omitempty"`
	Halted      bool     `json:"halted"`
	HaltReason  string   `json:"halt_reason,omitempty"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never exposed
}
