package platform

import "runtime"

// OS represents a supported operating system.
type OS string

const (
	MacOS   OS = "darwin"
	Linux   OS = "linux"
	Windows OS = "windows"
	Unknown OS = "unknown"
)

// Detect returns the current operating system.
func Detect() OS {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) OS {
	switch goos {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	case "windows":
		return Windows
	default:
		return Unknown
	}
}

// IsWindows reports whether o is Windows.
func (o OS) IsWindows() bool {
	return o == Windows
}

// IsSupported returns true if the current OS is supported.
func IsSupported() bool {
	return Detect() != Unknown
}
