// Package logging configures the log/slog logger used by every command.
//
// Logs always go to stderr so stdout stays reserved for the rendered report.
package logging
