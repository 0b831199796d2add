// Package logger provides a structured logging facility based on Zap.
//
// Every component of the ingestion pipeline receives a *zap.Logger at construction
// time instead of reaching for a global. The status server additionally tags request
// logs with the RayID assigned by the rayid middleware.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Subscribed to world", zap.Int64("world_id", 402))
package logger
