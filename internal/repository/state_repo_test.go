package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"sentinl"
	"sentinl/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStateSQLite_Save_SetsUTCNow_WhenTimeZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := repository.NewStateSQLite(db)

	// Zero UpdatedAt should be replaced by time.Now().UTC().
	state := sentinl.MachineState{
		Reading: sentinl.Reading{
			TimeStep:    11,
			Temperature: 73.0,
			Vibration:   26.5,
			Status:      sentinl.StatusOK,
		},
		Forecast: &sentinl.Forecast{Urgent: true, StepsToFailure: 9},
		Halted:   false,
		// UpdatedAt is zero
	}

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok {
			return false
		}
		if tm.Location() != time.UTC {
			return false
		}
		// allow small delta around now (test execution time)
		now := time.Now().UTC()
		if tm.Before(now.Add(-5*time.Second)) || tm.After(now.Add(5*time.Second)) {
			return false
		}
		return true
	})

	// The SQL constant is private; match by fragment.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO machine_state")).
		WithArgs(
			1, // single row id
			state.Reading.TimeStep,
			state.Reading.Temperature,
			state.Reading.Vibration,
			int(state.Reading.Status),
			`{"stable":false,"urgent":true,"steps_to_failure":9}`,
			state.Halted,
			isUTCRecent,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ConvertsGivenTimeToUTC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := repository.NewStateSQLite(db)

	original := time.Date(2026, 8, 5, 12, 34, 56, 0, time.FixedZone("UTC+9", 9*3600))
	expectedUTC := original.UTC()

	state := sentinl.MachineState{
		Reading: sentinl.Reading{
			TimeStep:    21,
			Temperature: 103.0,
			Vibration:   41.5,
			Status:      sentinl.StatusCritical,
		},
		Forecast:  nil, // persisted as empty string
		Halted:    true,
		UpdatedAt: original,
	}

	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok {
			return false
		}
		return tm.Equal(expectedUTC) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO machine_state")).
		WithArgs(
			1,
			state.Reading.TimeStep,
			state.Reading.Temperature,
			state.Reading.Vibration,
			int(state.Reading.Status),
			"",
			state.Halted,
			isExactUTC,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_PropagatesExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := repository.NewStateSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO machine_state")).
		WillReturnError(errors.New("database is locked"))

	if err := repo.Save(context.Background(), sentinl.MachineState{}); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Load_NoRows_ReturnsZeroValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := repository.NewStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, time_step, temperature, vibration, status, forecast, halted, updated_at")).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing snapshot", err)
	}
	if !reflect.DeepEqual(got, sentinl.MachineState{}) {
		t.Fatalf("Load() = %+v, want zero value", got)
	}
}

func TestStateSQLite_Load_Success_UnmarshalsForecast(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := repository.NewStateSQLite(db)

	stored := time.Date(2026, 8, 5, 3, 21, 0, 0, time.FixedZone("UTC+2", 2*3600))

	rows := sqlmock.NewRows(
		[]string{"id", "time_step", "temperature", "vibration", "status", "forecast", "halted", "updated_at"},
	).AddRow(1, 14, 84.3, 31.1, 1, `{"stable":false,"urgent":false,"steps_to_failure":18}`, false, stored)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, time_step, temperature, vibration, status, forecast, halted, updated_at")).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Reading.TimeStep != 14 || got.Reading.Status != sentinl.StatusWarning {
		t.Fatalf("unexpected reading: %+v", got.Reading)
	}
	if got.Forecast == nil || got.Forecast.StepsToFailure != 18 {
		t.Fatalf("forecast not restored: %+v", got.Forecast)
	}
	if got.UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt not UTC: %v", got.UpdatedAt.Location())
	}
}

func TestStateSQLite_Load_InvalidForecastJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := repository.NewStateSQLite(db)

	rows := sqlmock.NewRows(
		[]string{"id", "time_step", "temperature", "vibration", "status", "forecast", "halted", "updated_at"},
	).AddRow(1, 3, 49.0, 14.5, 0, `{broken`, false, time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, time_step, temperature, vibration, status, forecast, halted, updated_at")).
		WithArgs(1).
		WillReturnRows(rows)

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("Load() expected error due to invalid forecast JSON, got nil")
	}
}

// Helpers

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}
