//go:build unix

package editor

import "golang.org/x/sys/unix"

const canReplace = true

// execSyscall replaces the current process with a new one.
// This function does not return on success.
func execSyscall(path string, args []string, env []string) error {
	return unix.Exec(path, args, env)
}
