package monitor

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
)

type exitErr struct{ code int }

func (e exitErr) Error() string { return "exit status" }
func (e exitErr) ExitCode() int { return e.code }

// stubRunner records the last command and answers with err.
type stubRunner struct {
	name string
	args []string
	err  error
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	s.name, s.args = name, args
	return "", s.err
}

func TestKillCommand(t *testing.T) {
	name, args := KillCommand(4242)
	assert.Equal(t, "kill", name)
	assert.Equal(t, []string{"-TERM", "4242"}, args)
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		wantCode bool
	}{
		{
			name: "success",
			want: "SIGTERM sent to sleep (77)",
		},
		{
			name:     "non-zero exit",
			err:      exitErr{code: 1},
			want:     "Failed to terminate PID 77 (exit 1)",
			wantCode: true,
		},
		{
			name:     "spawn failure",
			err:      stderrors.New("executable file not found"),
			want:     "Failed to run kill for PID 77: executable file not found",
			wantCode: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{err: tt.err}
			msg, err := terminate(context.Background(), runner, 77, "sleep")

			assert.Equal(t, tt.want, msg)
			assert.Equal(t, "kill", runner.name)
			assert.Equal(t, []string{"-TERM", "77"}, runner.args)
			if tt.wantCode {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrProcess))
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKiller_Logs(t *testing.T) {
	log := logger.NewBufferLogger()

	k := killer{runner: &stubRunner{}, log: log}
	assert.Equal(t, "SIGTERM sent to vim (9)", k.kill(context.Background(), 9, "vim"))
	assert.True(t, log.HasMessage("info", "SIGTERM sent to vim"))

	log.Clear()
	k.runner = &stubRunner{err: exitErr{code: 1}}
	k.kill(context.Background(), 9, "vim")
	assert.True(t, log.HasLevel("warn"))
	assert.False(t, log.HasLevel("info"))
}
