package service

import "time"

// LogFilter narrows the event history by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SESSION_START", "ALERT", "IO_FAILURE", "CRITICAL_HALT", "SESSION_END"
}
