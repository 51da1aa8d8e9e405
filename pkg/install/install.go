// Package install ensures cached, executable tool binaries exist for
// resolved versions. Installations are content-addressed by
// (tool, version, arch) under the cache root and are never re-downloaded
// once the expected binary is present.
package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/elioetibr/tfprovision/pkg/platform"
)

// EnvToolCache names the automation runner's tool cache directory.
// When unset the cache falls back to a home subdirectory, then /tmp.
const EnvToolCache = "RUNNER_TOOL_CACHE"

const cacheDirName = ".tool-versions"

// Error reports a failed installer operation with tool context.
type Error struct {
	Tool    string
	Version string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s %s failed: %v", e.Tool, e.Version, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CacheRoot resolves the base directory for tool installations:
// RUNNER_TOOL_CACHE when set, else <home>/.tool-versions, else
// /tmp/.tool-versions.
func CacheRoot() string {
	if root := os.Getenv(EnvToolCache); root != "" {
		return root
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, cacheDirName)
	}
	return filepath.Join(os.TempDir(), cacheDirName)
}

// Installer places versioned binaries for one tool into the cache.
type Installer struct {
	tool      string
	artifact  Artifact
	platform  platform.Info
	cacheRoot string
}

// New creates an installer for tool. The platform is detected eagerly
// so an unsupported OS or architecture fails before any I/O.
func New(tool string, artifact Artifact) (*Installer, error) {
	p, err := platform.Detect()
	if err != nil {
		return nil, err
	}

	return &Installer{
		tool:      tool,
		artifact:  artifact,
		platform:  p,
		cacheRoot: CacheRoot(),
	}, nil
}

// BinaryName returns the tool's binary file name, with ".exe" appended
// on Windows.
func (i *Installer) BinaryName() string {
	if i.platform.IsWindows() {
		return i.tool + ".exe"
	}
	return i.tool
}

// CacheDir returns the cache entry directory for version.
func (i *Installer) CacheDir(version string) string {
	return filepath.Join(i.cacheRoot, i.tool, version, i.platform.Arch)
}

// IsInstalled reports whether the binary for version is already cached.
func (i *Installer) IsInstalled(version string) bool {
	_, err := os.Stat(filepath.Join(i.CacheDir(version), i.BinaryName()))
	return err == nil
}

// Install ensures an executable binary for version exists in the cache
// and returns the cache entry directory. The call is idempotent: when
// the binary is already present it logs the reuse and returns without
// touching the network.
func (i *Installer) Install(version string, ag agent.Agent) (string, error) {
	dir := i.CacheDir(version)
	binPath := filepath.Join(dir, i.BinaryName())

	if _, err := os.Stat(binPath); err == nil {
		ag.Info("%s %s already cached in %s, reusing", i.tool, version, dir)
		return dir, nil
	}

	url, err := i.artifact.url(urlData{
		Tool:    i.tool,
		Version: version,
		OS:      i.platform.OS,
		Arch:    i.platform.Arch,
	})
	if err != nil {
		return "", &Error{Tool: i.tool, Version: version, Op: "resolve download URL", Err: err}
	}

	ag.Info("downloading %s %s", i.tool, version)
	ag.Debug("fetching %s", url)

	body, finish, err := download(url)
	if err != nil {
		return "", &Error{Tool: i.tool, Version: version, Op: "download", Err: err}
	}
	defer body.Close()
	defer finish()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &Error{Tool: i.tool, Version: version, Op: "create cache directory", Err: err}
	}

	if err := i.artifact.place(body, dir, binPath, ag); err != nil {
		return "", &Error{Tool: i.tool, Version: version, Op: "install", Err: err}
	}

	if err := os.Chmod(binPath, 0755); err != nil {
		return "", &Error{Tool: i.tool, Version: version, Op: "mark executable", Err: err}
	}

	ag.Info("installed %s %s into %s", i.tool, version, dir)
	return dir, nil
}
