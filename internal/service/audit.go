package service

import (
	"sentinl"
	"sentinl/internal/repository"
)

// AuditService reads the durable per-reading store back for inspection.
type AuditService struct {
	readings repository.ReadingLog
}

func NewAuditService(readings repository.ReadingLog) *AuditService {
	return &AuditService{readings: readings}
}

// ListReadings returns every record of the current session in append order.
func (s *AuditService) ListReadings() ([]sentinl.Reading, error) {
	return s.readings.List()
}
