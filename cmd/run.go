package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xmazu/denv/internal/envfile"
	"github.com/xmazu/denv/internal/runenv"
	"github.com/xmazu/denv/internal/tui"
	"github.com/xmazu/denv/internal/watch"
)

// exitFunc is swapped in tests so the watch loop can report child exit codes.
var exitFunc = os.Exit

// runWithWatch runs command as a supervised child instead of replacing the
// process, and restarts it whenever one of files changes and still parses.
func runWithWatch(cmd *cobra.Command, files []string, command string, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	pairs, err := envfile.Collect(files)
	if err != nil {
		return err
	}

	fw, err := watch.NewFileWatcher(s.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	stderr := cmd.ErrOrStderr()
	for _, f := range files {
		if err := fw.Add(f); err != nil {
			fmt.Fprintf(stderr, "%s could not watch %s: %v\n", tui.Warning("warning:"), f, err)
		}
	}

	changes := fw.Start()
	logger.Debug("watching", "files", fw.Files())

	runner := &runenv.ProcessRunner{
		Command: command,
		Args:    args,
		Env:     runenv.Environ(os.Environ(), pairs),
	}
	if err := runner.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}
	logger.Debug("started child", "command", command, "vars", len(pairs))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			_ = runner.Stop()
			if sig == syscall.SIGTERM {
				exitFunc(143)
			} else {
				exitFunc(130)
			}
			return nil

		case changed := <-changes:
			newPairs, err := envfile.Collect(files)
			if err != nil {
				fmt.Fprintf(stderr, "%s %v (keeping current process)\n", tui.Error("reload failed:"), err)
				continue
			}
			fmt.Fprintf(stderr, "%s %s changed, restarting...\n", tui.Label("⚡"), changed)
			logger.Debug("reloading", "file", changed, "vars", len(newPairs))

			if err := runner.Stop(); err != nil {
				logger.Debug("stop", "err", err)
			}
			runner.Env = runenv.Environ(os.Environ(), newPairs)
			if err := runner.Start(); err != nil {
				return fmt.Errorf("restart command: %w", err)
			}

		case err := <-runner.Done():
			code := runner.ExitCode()
			logger.Debug("child exited", "code", code, "err", err)
			if code != 0 {
				if code < 0 {
					return fmt.Errorf("command %s: %w", command, err)
				}
				exitFunc(code)
			}
			return nil
		}
	}
}
