// Package jobs implements background job processing for the Mandalateu API.
//
// The jobs package contains scheduled tasks that run independently of
// HTTP request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - TokenCleanupProcessor: Expired refresh token removal
//
// # Lifecycle
//
// Jobs run on a ticker and stop via the Stop method during graceful
// shutdown:
//
//	cleanup := jobs.NewTokenCleanupProcessor(tokenService, time.Hour)
//	cleanup.Start()
//	defer cleanup.Stop()
//
// # Error Handling
//
// Jobs log errors but don't crash the application. A failed run is
// retried on the next tick.
package jobs
