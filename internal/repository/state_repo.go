package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"sentinl"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

var _ StateRepo = (*StateSQLite)(nil)

const (
	machineStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO machine_state (id, time_step, temperature, vibration, status, forecast, halted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			time_step=excluded.time_step,
			temperature=excluded.temperature,
			vibration=excluded.vibration,
			status=excluded.status,
			forecast=excluded.forecast,
			halted=excluded.halted,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, time_step, temperature, vibration, status, forecast, halted, updated_at
		FROM machine_state WHERE id=?
	`
)

// marshalForecast converts the forecast to a JSON string; nil stays empty.
func marshalForecast(f *sentinl.Forecast) (string, error) {
	if f == nil {
		return "", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalForecast parses a JSON string; empty means no forecast yet.
func unmarshalForecast(s string) (*sentinl.Forecast, error) {
	if s == "" {
		return nil, nil
	}
	var f sentinl.Forecast
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save upserts the machine_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state sentinl.MachineState) error {
	forecastJSON, err := marshalForecast(state.Forecast)
	if err != nil {
		return err
	}

	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err = r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		machineStateRowID,
		state.Reading.TimeStep,
		state.Reading.Temperature,
		state.Reading.Vibration,
		int(state.Reading.Status),
		forecastJSON,
		state.Halted,
		tsUTC,
	)
	return err
}

// Load fetches the single machine_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (sentinl.MachineState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, machineStateRowID)

	var (
		s            sentinl.MachineState
		status       int
		forecastJSON string
	)
	if err := row.Scan(
		&s.ID,
		&s.Reading.TimeStep,
		&s.Reading.Temperature,
		&s.Reading.Vibration,
		&status,
		&forecastJSON,
		&s.Halted,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinl.MachineState{}, nil // no snapshot yet
		}
		return sentinl.MachineState{}, err
	}
	s.Reading.Status = sentinl.Status(status)

	forecast, err := unmarshalForecast(forecastJSON)
	if err != nil {
		return sentinl.MachineState{}, err
	}
	s.Forecast = forecast
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
