// Package localexec runs allowlisted desktop notification commands.
package localexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/fentz26/daybook/internal/connectors"
)

// appleNotification matches a single display notification statement
// whose operands are string literals.
var appleNotification = regexp.MustCompile(
	`^display notification "(?:[^"\\]|\\.)*"` +
		`(?: with title "(?:[^"\\]|\\.)*")?` +
		`(?: subtitle "(?:[^"\\]|\\.)*")?$`)

// allowedCommands maps each notifier to a check on its arguments.
var allowedCommands = map[string]func(args []string) bool{
	// notify-send [options] SUMMARY [BODY]
	"notify-send": func(args []string) bool {
		return len(args) > 0
	},
	// osascript -e 'display notification ...'
	"osascript": func(args []string) bool {
		return len(args) == 2 && args[0] == "-e" && appleNotification.MatchString(args[1])
	},
	// terminal-notifier -title T -message M
	"terminal-notifier": func(args []string) bool {
		return len(args) > 0 && !containsFlag(args, "-execute")
	},
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// LocalExec implements the Connector interface for local command execution.
type LocalExec struct {
	workDir string
}

var _ connectors.Connector = (*LocalExec)(nil)

// New creates a new LocalExec connector.
func New(workDir string) *LocalExec {
	return &LocalExec{workDir: workDir}
}

// IsAllowed checks if a command is in the allowlist.
func (l *LocalExec) IsAllowed(cmd string, args []string) bool {
	check, ok := allowedCommands[cmd]
	if !ok {
		return false
	}
	return check(args)
}

// Supported reports whether cmd is a known notifier, regardless of args.
func Supported(cmd string) bool {
	_, ok := allowedCommands[cmd]
	return ok
}

// Execute runs a command if it's in the allowlist.
func (l *LocalExec) Execute(ctx context.Context, cmd string, args []string) (*connectors.ExecResult, error) {
	if !l.IsAllowed(cmd, args) {
		return nil, fmt.Errorf("command not allowed: %s %s", cmd, strings.Join(args, " "))
	}

	execCmd := exec.CommandContext(ctx, cmd, args...)
	if l.workDir != "" {
		execCmd.Dir = l.workDir
	}

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()

	exitCode := 0
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			exitCode = exitError.ExitCode()
		} else {
			return nil, fmt.Errorf("exec error: %w", err)
		}
	}

	return &connectors.ExecResult{
		Command:  cmd,
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
