// Package connectors defines how daybook runs local helper programs,
// such as desktop notifiers.
package connectors

import "context"

// ExecResult is what a notifier run produced. A non-zero ExitCode is
// not an error from Execute; callers decide.
type ExecResult struct {
	Command  string   `json:"command"`
	Args     []string `json:"args"`
	ExitCode int      `json:"exit_code"`
	Stdout   string   `json:"stdout"`
	Stderr   string   `json:"stderr"`
}

// Connector runs notifier commands. Implementations refuse anything
// outside their allowlist with an error instead of running it.
type Connector interface {
	Execute(ctx context.Context, cmd string, args []string) (*ExecResult, error)
}
