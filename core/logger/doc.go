// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Correlation
//
// Two helpers attach correlation fields to a logger:
//
//   - WithRayID extracts the RayID from a Fiber context, ensuring that all
//     logs related to a specific request can be traced together.
//   - WithRun tags the logger with a sync run ID, so every warning emitted
//     while ingesting a snapshot points back to the run that produced it.
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
package logger
