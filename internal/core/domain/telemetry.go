package domain

// StageStatus represents the terminal state of a pipeline stage.
type StageStatus string

const (
	// StageRunning indicates the stage started and has not finished.
	StageRunning StageStatus = "running"
	// StageCompleted indicates the stage ran successfully.
	StageCompleted StageStatus = "completed"
	// StageFailed indicates the stage ran and failed.
	StageFailed StageStatus = "failed"
	// StageCached indicates the stage was skipped because its output is current.
	StageCached StageStatus = "cached"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
