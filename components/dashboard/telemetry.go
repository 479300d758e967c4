package dashboard

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// LogrusTelemetry writes telemetry events as structured log entries.
type LogrusTelemetry struct {
	Logger log.FieldLogger
	Level  log.Level
}

// NewLogrusTelemetry logs events at info level through logger. A nil logger
// uses the logrus standard logger.
func NewLogrusTelemetry(logger log.FieldLogger) *LogrusTelemetry {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogrusTelemetry{Logger: logger, Level: log.InfoLevel}
}

func (t *LogrusTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	fields := make(log.Fields, len(payload)+1)
	for key, value := range payload {
		fields[key] = value
	}
	fields["event"] = event
	entry := t.Logger.WithFields(fields)
	switch t.Level {
	case log.DebugLevel, log.TraceLevel:
		entry.Debug(event)
	case log.WarnLevel:
		entry.Warn(event)
	default:
		entry.Info(event)
	}
}
