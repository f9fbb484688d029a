// Package logging constructs the application slog logger.
//
// Two formats are supported: a console handler that renders one compact
// line per record with flattened key=value attributes, and a JSON handler
// for machine consumption. Pipeline packages receive the logger through
// their options and stay silent on noisy-but-expected data (derived-key
// collisions, count reconciliation) above debug level.
package logging
