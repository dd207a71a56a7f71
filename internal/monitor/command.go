package monitor

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rileyhilliard/rtop/internal/collector"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
)

// killTimeout bounds a single kill invocation.
const killTimeout = 2 * time.Second

// KillCommand returns the command that asks pid to terminate.
func KillCommand(pid int32) (string, []string) {
	return "kill", []string{"-TERM", strconv.Itoa(int(pid))}
}

// exitCoder matches *exec.ExitError and test doubles.
type exitCoder interface {
	ExitCode() int
}

// terminate sends SIGTERM to pid through runner and returns the status
// message for the process panel. Failures are also returned as an
// ErrProcess error for logging.
func terminate(ctx context.Context, runner collector.Runner, pid int32, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, killTimeout)
	defer cancel()

	cmd, args := KillCommand(pid)
	_, err := runner.Run(ctx, cmd, args...)
	if err == nil {
		return fmt.Sprintf("SIGTERM sent to %s (%d)", name, pid), nil
	}

	var ec exitCoder
	if stderrors.As(err, &ec) {
		msg := fmt.Sprintf("Failed to terminate PID %d (exit %d)", pid, ec.ExitCode())
		return msg, errors.WrapWithCode(err, errors.ErrProcess, msg,
			"The process may have exited or belong to another user")
	}

	msg := fmt.Sprintf("Failed to run kill for PID %d: %v", pid, err)
	return msg, errors.WrapWithCode(err, errors.ErrProcess, msg,
		"Make sure the kill command is on your PATH")
}

// killer runs confirmed terminations for the process panel.
type killer struct {
	runner collector.Runner
	log    logger.Logger
}

func (k killer) kill(ctx context.Context, pid int32, name string) string {
	msg, err := terminate(ctx, k.runner, pid, name)
	if err != nil {
		k.log.Warn("%v", err)
	} else {
		k.log.Info("%s", msg)
	}
	return msg
}
