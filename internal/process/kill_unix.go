//go:build !windows

// Package process terminates the headless browser tree started for PDF export.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking the
// browser's renderer and GPU children down with it.
func KillProcessGroup(pid int) {
	// launcher.Kill() is the fallback when the group is already gone.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
