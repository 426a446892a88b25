package runenv

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/xmazu/denv/internal/envfile"
)

// StopTimeout is how long Stop waits after SIGTERM before escalating.
var StopTimeout = 5 * time.Second

// Environ overlays pairs onto base, later entries winning. The result keeps
// base order with overridden entries replaced in place; new keys are appended
// in pair order.
func Environ(base []string, pairs []envfile.Pair) []string {
	env := make([]string, 0, len(base)+len(pairs))
	index := make(map[string]int, len(base))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if i, ok := index[key]; ok {
			env[i] = kv
			continue
		}
		index[key] = len(env)
		env = append(env, kv)
	}
	for _, p := range pairs {
		kv := p.Key + "=" + p.Value
		if i, ok := index[p.Key]; ok {
			env[i] = kv
			continue
		}
		index[p.Key] = len(env)
		env = append(env, kv)
	}
	return env
}

// ProcessRunner supervises a command as a child process so it can be
// restarted when its environment changes.
type ProcessRunner struct {
	Command string
	Args    []string
	Env     []string

	cmd  *exec.Cmd
	done chan error
}

func (r *ProcessRunner) Start() error {
	r.cmd = exec.Command(r.Command, r.Args...)
	r.cmd.Env = r.Env
	r.cmd.Stdin = os.Stdin
	r.cmd.Stdout = os.Stdout
	r.cmd.Stderr = os.Stderr
	setProcessGroup(r.cmd)

	if err := r.cmd.Start(); err != nil {
		return err
	}
	r.done = make(chan error, 1)
	cmd, done := r.cmd, r.done
	go func() {
		done <- cmd.Wait()
	}()
	return nil
}

// Wait blocks until the child exits. It may be called more than once.
func (r *ProcessRunner) Wait() error {
	if r.done == nil {
		return fmt.Errorf("process not started")
	}
	err := <-r.done
	r.done <- err
	return err
}

// Done returns a channel that yields the child's exit error. The value is
// consumed by the receive; use Wait to observe it again.
func (r *ProcessRunner) Done() <-chan error {
	return r.done
}

func (r *ProcessRunner) ExitCode() int {
	if r.cmd == nil || r.cmd.ProcessState == nil {
		return -1
	}
	return r.cmd.ProcessState.ExitCode()
}

func (r *ProcessRunner) Running() bool {
	if r.done == nil {
		return false
	}
	select {
	case err := <-r.done:
		r.done <- err
		return false
	default:
		return true
	}
}
