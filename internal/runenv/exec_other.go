//go:build !unix

package runenv

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

var exitFunc = os.Exit

// Exec runs command as a child with stdio attached and exits with its exit
// code, since the process image cannot be replaced on this platform. It only
// returns when the command cannot be started.
func Exec(command string, args []string, env []string) error {
	path, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("exec %s: %w", command, err)
	}
	cmd := exec.Command(path, args...)
	cmd.Args[0] = command
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("exec %s: %w", command, err)
		}
	}
	exitFunc(cmd.ProcessState.ExitCode())
	return nil
}

func setProcessGroup(*exec.Cmd) {}

// Stop kills the child and waits for it to exit. There is no graceful
// termination signal to send first.
func (r *ProcessRunner) Stop() error {
	if !r.Running() {
		return nil
	}
	_ = r.cmd.Process.Kill()
	select {
	case <-time.After(StopTimeout):
		return fmt.Errorf("process did not exit after kill")
	case err := <-r.done:
		r.done <- err
		return err
	}
}
