package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"sentinl"
)

// CSVReadingLog persists one comma-separated record per reading. The file
// handle is deliberately not held between calls: every Append is an
// open-write-sync-close cycle so the record is on stable storage before
// the next tick starts.
type CSVReadingLog struct {
	path string
}

func NewCSVReadingLog(path string) *CSVReadingLog {
	return &CSVReadingLog{path: path}
}

var _ ReadingLog = (*CSVReadingLog)(nil)

const csvHeader = "Timestamp,Temperature,Vibration,Status"

// Reset truncates the store and writes the session header. Called once at
// boot; prior sessions' records are discarded.
func (l *CSVReadingLog) Reset() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("reset reading log %q: %w", l.path, err)
	}
	if _, err := fmt.Fprintln(f, csvHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header to %q: %w", l.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync reading log %q: %w", l.path, err)
	}
	return f.Close()
}

// Append durably records one reading. Fields are rendered with exactly two
// fractional digits and the integer status code.
func (l *CSVReadingLog) Append(r sentinl.Reading) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open reading log %q: %w", l.path, err)
	}
	if _, err := fmt.Fprintf(f, "%d,%.2f,%.2f,%d\n",
		r.TimeStep, r.Temperature, r.Vibration, int(r.Status)); err != nil {
		_ = f.Close()
		return fmt.Errorf("append reading %d to %q: %w", r.TimeStep, l.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync reading log %q: %w", l.path, err)
	}
	return f.Close()
}

// List reads the whole store back for audit, skipping the header line.
func (l *CSVReadingLog) List() ([]sentinl.Reading, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open reading log %q: %w", l.path, err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 4

	// header
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header of %q: %w", l.path, err)
	}

	var out []sentinl.Reading
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record from %q: %w", l.path, err)
		}
		r, err := parseReadingRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("parse record %v in %q: %w", rec, l.path, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func parseReadingRecord(rec []string) (sentinl.Reading, error) {
	step, err := strconv.Atoi(rec[0])
	if err != nil {
		return sentinl.Reading{}, err
	}
	temp, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return sentinl.Reading{}, err
	}
	vib, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return sentinl.Reading{}, err
	}
	status, err := strconv.Atoi(rec[3])
	if err != nil {
		return sentinl.Reading{}, err
	}
	return sentinl.Reading{
		TimeStep:    step,
		Temperature: temp,
		Vibration:   vib,
		Status:      sentinl.Status(status),
	}, nil
}
