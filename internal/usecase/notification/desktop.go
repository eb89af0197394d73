package notification

import (
	"context"

	"go.uber.org/zap"
)

// Desktop raises notifications on the local machine
type Desktop interface {
	// RequestPermission asks the user once whether local notifications are allowed
	RequestPermission(ctx context.Context) bool
	Show(ctx context.Context, title, body string) error
}

// LogDesktop is the default Desktop: it writes the notification as a log line.
// Permission is whatever the configuration says.
type LogDesktop struct {
	logger  *zap.Logger
	allowed bool
}

// NewLogDesktop creates a log-backed Desktop
func NewLogDesktop(logger *zap.Logger, allowed bool) *LogDesktop {
	return &LogDesktop{logger: logger, allowed: allowed}
}

func (d *LogDesktop) RequestPermission(context.Context) bool {
	return d.allowed
}

func (d *LogDesktop) Show(_ context.Context, title, body string) error {
	if d.logger != nil {
		d.logger.Info("🔔 "+title, zap.String("body", body))
	}
	return nil
}
