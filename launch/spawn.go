package launch

import (
	"fmt"
	"os/exec"
)

// Spawner starts a program without waiting for it. An empty dir inherits
// the current working directory.
type Spawner interface {
	Spawn(program string, args []string, dir string) error
}

// ExecSpawner starts real processes, detached from the launcher's session
// so they outlive it.
type ExecSpawner struct{}

func (ExecSpawner) Spawn(program string, args []string, dir string) error {
	cmd := exec.Command(program, args...)
	cmd.Dir = dir
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release %s: %w", program, err)
	}
	return nil
}
