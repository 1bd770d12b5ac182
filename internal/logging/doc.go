// Package logging provides concrete implementations of the porekit.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: prefixed lines on stderr (or any io.Writer), mutex-guarded
//   - NullLogger: discards all messages
//
// Aggregation workers share one logger, so both are safe for concurrent use.
package logging
