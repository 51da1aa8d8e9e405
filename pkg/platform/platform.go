package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Info contains the operating system and architecture vocabulary used
// by release artifact names and cache paths.
type Info struct {
	OS   string // linux, darwin, windows
	Arch string // amd64, arm64
}

// UnsupportedError reports an operating system or architecture outside
// the supported set.
type UnsupportedError struct {
	Kind      string // "operating system" or "architecture"
	Value     string
	Supported []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s %q (supported: %s)",
		e.Kind, e.Value, strings.Join(e.Supported, ", "))
}

// Detect returns platform information for the running process.
func Detect() (Info, error) {
	return Map(runtime.GOOS, runtime.GOARCH)
}

// Map normalizes raw operating system and architecture identifiers to
// the release vocabulary. Both Go runtime identifiers and the Node-style
// identifiers used by automation runners are accepted.
func Map(osID, archID string) (Info, error) {
	var info Info

	switch osID {
	case "linux":
		info.OS = "linux"
	case "darwin":
		info.OS = "darwin"
	case "windows", "win32":
		info.OS = "windows"
	default:
		return Info{}, &UnsupportedError{
			Kind:      "operating system",
			Value:     osID,
			Supported: []string{"linux", "darwin", "windows"},
		}
	}

	switch archID {
	case "amd64", "x64":
		info.Arch = "amd64"
	case "arm64":
		info.Arch = "arm64"
	default:
		return Info{}, &UnsupportedError{
			Kind:      "architecture",
			Value:     archID,
			Supported: []string{"amd64", "arm64"},
		}
	}

	return info, nil
}

// IsWindows reports whether the platform is Windows.
func (i Info) IsWindows() bool {
	return i.OS == "windows"
}

// String returns the generic os_arch form used in artifact names.
func (i Info) String() string {
	return fmt.Sprintf("%s_%s", i.OS, i.Arch)
}
