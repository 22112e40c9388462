// Package shutdown turns termination signals into context cancellation.
//
// Usage:
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
//
// The analysis checks the context between stages, so an interrupted run
// stops early without printing a partial report.
package shutdown
