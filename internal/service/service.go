package service

import (
	"context"
	"time"

	"sentinl"
	"sentinl/internal/logger"
	"sentinl/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Monitor runs the periodic sampling cycle: read the sensors, classify,
// persist, forecast, then decide whether to keep going. Stop via context
// cancellation in main() for graceful shutdown; the cycle also stops
// itself on a CRITICAL classification.
type Monitor interface {
	Run(ctx context.Context, tick time.Duration)
	Tick(ctx context.Context) error
	IsHalted() bool
	Summary() sentinl.SessionSummary
}

// Monitoring exposes the read-only latest snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (sentinl.MachineState, error)
}

// EventLog exposes the append-only session history with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]sentinl.MonitorEvent, error)
}

// Audit exposes the durable reading store for read-back.
type Audit interface {
	ListReadings() ([]sentinl.Reading, error)
}

// Root Service aggregates all sub-services.
type Service struct {
	Monitor
	Monitoring
	EventLog
	Audit
	Authorization
}

// Deps carries everything the service layer is wired from.
type Deps struct {
	Repos      *repository.Repository
	Presenter  Presenter
	Log        *logger.Logger
	Seed       int64
	SigningKey string
}

// NewService wires the repository layer into concrete services.
func NewService(d Deps) *Service {
	sampler := NewSensorService(d.Seed)
	return &Service{
		Monitor:       NewMonitorService(sampler, d.Repos.ReadingLog, d.Repos.StateRepo, d.Repos.EventRepo, d.Presenter, d.Log),
		Monitoring:    NewMonitoringService(d.Repos.StateRepo),
		EventLog:      NewEventLogService(d.Repos.EventRepo),
		Audit:         NewAuditService(d.Repos.ReadingLog),
		Authorization: NewAuthService(d.Repos.Auth, d.SigningKey),
	}
}
