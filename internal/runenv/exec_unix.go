//go:build unix

package runenv

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

var execFunc = syscall.Exec

// Exec replaces the current process with command, looked up on PATH. It only
// returns on failure.
func Exec(command string, args []string, env []string) error {
	path, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("exec %s: %w", command, err)
	}
	argv := append([]string{command}, args...)
	if err := execFunc(path, argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", command, err)
	}
	return nil
}

func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

var execPgrep = func(ppid int) ([]byte, error) {
	return exec.Command("pgrep", "-P", fmt.Sprintf("%d", ppid)).Output()
}

// killFunc is injectable for tests; production uses syscall.Kill.
var killFunc = func(pid int, sig syscall.Signal) error {
	return syscall.Kill(pid, sig)
}

func getChildPids(rootPgid int) ([]int, error) {
	out, err := execPgrep(rootPgid)
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		var pid int
		if _, err := fmt.Sscanf(line, "%d", &pid); err == nil && pid > 0 {
			pids = append(pids, pid)
			children, _ := getChildPids(pid)
			pids = append(pids, children...)
		}
	}
	return pids, nil
}

func signalProcessTree(pgid int, sig syscall.Signal) error {
	pids, err := getChildPids(pgid)
	if err == nil {
		for _, pid := range pids {
			_ = killFunc(pid, sig)
		}
	}
	return killFunc(-pgid, sig)
}

// Stop sends SIGTERM to the child's process group and waits for it to exit,
// escalating to SIGKILL after StopTimeout.
func (r *ProcessRunner) Stop() error {
	if !r.Running() {
		return nil
	}
	pgid, err := syscall.Getpgid(r.cmd.Process.Pid)
	if err != nil {
		_ = r.cmd.Process.Kill()
		return r.Wait()
	}
	if err := signalProcessTree(pgid, syscall.SIGTERM); err != nil {
		_ = r.cmd.Process.Kill()
	}
	select {
	case <-time.After(StopTimeout):
		_ = signalProcessTree(pgid, syscall.SIGKILL)
		err := <-r.done
		r.done <- err
		return fmt.Errorf("process did not exit gracefully, killed")
	case err := <-r.done:
		r.done <- err
		return err
	}
}
