// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package job

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// Supported reports whether process groups can be managed on this
// platform.
func Supported() bool {
	return true
}

// SetGroup arranges for cmd to start in its own new process group, so
// that Kill can later terminate it and every process it spawns (e.g. a
// linker invoked by "go build") as a unit.
func SetGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// Kill sends sig to every process in cmd's group. It is a no-op if cmd
// was never started. If SetGroup was never applied, there is no group
// whose id is cmd's pid and the kill normally fails with an error.
func Kill(cmd *exec.Cmd, sig syscall.Signal) error {
	if cmd.Process == nil {
		return nil
	}

	return unix.Kill(-cmd.Process.Pid, sig)
}
