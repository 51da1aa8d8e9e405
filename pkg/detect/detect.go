// Package detect probes installed tool binaries for their
// self-reported version, memoizing results for the process lifetime.
package detect

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/elioetibr/tfprovision/pkg/semver"
)

// outputPreview caps how much unmatched probe output an error carries.
const outputPreview = 200

// Error reports a failed version probe.
type Error struct {
	Tool string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to detect %s version: %v", e.Tool, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detector memoizes version probes per tool. Construct one explicitly
// and share it; there is no package-level instance.
type Detector struct {
	mu    sync.Mutex
	cache map[string]semver.Version
}

// NewDetector creates an empty detector.
func NewDetector() *Detector {
	return &Detector{cache: make(map[string]semver.Version)}
}

// ClearCache drops all memoized entries. Test-only escape hatch.
func (d *Detector) ClearCache() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache = make(map[string]semver.Version)
}

// Detect runs `<tool> --version` through the agent and extracts the
// version with pattern, which must capture the three numeric
// components. The first successful result per tool is memoized for the
// lifetime of the detector; concurrent first calls for the same tool
// may each run the probe, which is harmless because the probe is
// read-only.
func (d *Detector) Detect(ag agent.Agent, tool string, pattern *regexp.Regexp) (semver.Version, error) {
	d.mu.Lock()
	if v, ok := d.cache[tool]; ok {
		d.mu.Unlock()
		return v, nil
	}
	d.mu.Unlock()

	result, err := ag.Exec(tool, []string{"--version"}, agent.ExecOptions{
		Silent:           true,
		IgnoreReturnCode: true,
	})
	if err != nil {
		return semver.Version{}, &Error{Tool: tool, Err: err}
	}

	if result.ExitCode != 0 {
		return semver.Version{}, &Error{
			Tool: tool,
			Err:  fmt.Errorf("exited with code %d: %s", result.ExitCode, result.Stderr),
		}
	}

	match := pattern.FindStringSubmatch(result.Stdout)
	if len(match) < 4 {
		preview := result.Stdout
		if len(preview) > outputPreview {
			preview = preview[:outputPreview]
		}
		return semver.Version{}, &Error{
			Tool: tool,
			Err:  fmt.Errorf("output did not match version pattern: %q", preview),
		}
	}

	major, _ := strconv.Atoi(match[1])
	minor, _ := strconv.Atoi(match[2])
	patch, _ := strconv.Atoi(match[3])

	v := semver.Version{
		Major: major,
		Minor: minor,
		Patch: patch,
		Raw:   fmt.Sprintf("%d.%d.%d", major, minor, patch),
	}

	d.mu.Lock()
	d.cache[tool] = v
	d.mu.Unlock()

	return v, nil
}
