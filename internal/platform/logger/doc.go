// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Output goes to a file because the terminal UI owns
// stdout and stderr while it runs.
package logger
