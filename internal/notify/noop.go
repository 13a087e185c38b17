package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded reports. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards reports with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// JobFinished logs and discards a job report.
func (n *NoOpNotifier) JobFinished(_ context.Context, s *JobSummary) error {
	n.log.Debug("notification discarded (no backend configured)",
		"job_id", s.JobID,
		"shop", s.ShopDomain,
		"status", s.Status,
	)
	return nil
}
