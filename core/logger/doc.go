// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) for a CLI tool.
//
// # Session Awareness
//
// Each invocation of a sync run is tagged with a session id. The WithSession
// helper attaches that id to the log entry, ensuring that all logs related to
// a specific run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync started")
//
//	// In a sync session:
//	l := logger.WithSession(log, sessionID)
//	l.Error("Upload failed", zap.Error(err))
package logger
