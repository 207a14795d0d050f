package domain

// LogLevel is the severity attached to a vertex log message.
// The values line up with slog so adapters can convert by casting.
type LogLevel int

// Severities understood by telemetry vertices.
const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

// String returns the upper-case level name. Unknown levels print as INFO.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
