// Package logger provides logging for captainslog.
//
// The Logger interface distinguishes internal debug logging from
// user-facing output. Because captainslog usually runs inside a git
// post-commit hook, user-facing output must be sparse and meaningful;
// everything else goes to a debug log file when --debug is enabled.
//
// The default implementation writes structured logs via log/slog to a
// file under the XDG data directory and emoji-prefixed plain messages
// to stdout/stderr.
package logger
