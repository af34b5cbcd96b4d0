//go:build !unix

package editor

const canReplace = false

func execSyscall(path string, args []string, env []string) error {
	return ErrReplaceUnsupported
}
