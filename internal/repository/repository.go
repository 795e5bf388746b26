package repository

import (
	"context"
	"database/sql"
	"time"

	"sentinl"
	"sentinl/internal/repository/db"
)

// InitDB opens the SQLite store and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*sentinl.User, error)
}

// StateRepo persists the single latest machine snapshot.
type StateRepo interface {
	Save(ctx context.Context, s sentinl.MachineState) error
	Load(ctx context.Context) (sentinl.MachineState, error)
}

// EventRepo is the append-only session event history.
type EventRepo interface {
	Append(ctx context.Context, e sentinl.MonitorEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]sentinl.MonitorEvent, error)
}

// ReadingLog is the durable per-reading audit store. Reset truncates the
// store and writes the header at session start; Append must leave the
// record on stable storage before returning.
type ReadingLog interface {
	Reset() error
	Append(r sentinl.Reading) error
	List() ([]sentinl.Reading, error)
}

type Repository struct {
	StateRepo  StateRepo
	EventRepo  EventRepo
	ReadingLog ReadingLog
	Auth       Authorization
}

func NewRepository(db *sql.DB, readingLogPath string) *Repository {
	return &Repository{
		StateRepo:  NewStateSQLite(db),
		EventRepo:  NewEventSQLite(db),
		ReadingLog: NewCSVReadingLog(readingLogPath),
		Auth:       NewUserRepository(db),
	}
}
