//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another instance of the executable is alive.
var ErrAlreadyRunning = errors.New("another instance is already running")

// OtherInstances lists the PIDs of processes running executable, excluding this one.
func OtherInstances(executable string) ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()
	wanted := normalizeExecutable(executable)

	var pids []int

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if normalizeExecutable(process.Executable()) != wanted {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids, nil
}

// EnsureSingleInstance fails with ErrAlreadyRunning when the current executable runs elsewhere.
func EnsureSingleInstance() error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	pids, err := OtherInstances(filepath.Base(self))
	if err != nil {
		return err
	}

	if len(pids) > 0 {
		return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, pids[0])
	}

	return nil
}

// normalizeExecutable strips the Windows extension and case so names compare across platforms.
func normalizeExecutable(name string) string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return strings.TrimSuffix(strings.ToLower(name), ".exe")
	}

	return name
}
