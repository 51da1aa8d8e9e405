// Package resolve turns raw version requests into concrete versions.
// The resolution algorithm is shared by every tool; only the
// latest-version discovery strategy varies per tool.
package resolve

import (
	"fmt"
	"strings"

	"github.com/elioetibr/tfprovision/pkg/semver"
	"github.com/elioetibr/tfprovision/pkg/versionfile"
)

// Source records where a resolved version came from.
type Source string

const (
	SourceInput  Source = "input"  // exact version supplied directly
	SourceFile   Source = "file"   // value found in a version-pin file
	SourceLatest Source = "latest" // discovered from the tool's release channel
)

// VersionSpec is the outcome of interpreting a version request.
// Resolved is always an exact major.minor.patch string.
type VersionSpec struct {
	Input    string
	Resolved string
	Source   Source
}

// LatestSource discovers the newest qualifying version from a tool's
// upstream release channel.
type LatestSource interface {
	FetchLatest() (string, error)
}

// InvalidVersionError reports a malformed version request or pin-file
// content.
type InvalidVersionError struct {
	Tool  string
	Value string
	File  string // set when the value came from a pin file
}

func (e *InvalidVersionError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("invalid version %q in %s", e.Value, e.File)
	}
	return fmt.Sprintf("invalid %s version %q: expected an exact version (major.minor.patch), %q, or %q",
		e.Tool, e.Value, "latest", "skip")
}

// Resolver resolves version requests for one tool.
type Resolver struct {
	Tool     string       // tool name, used in diagnostics
	FileName string       // version-pin file name, e.g. ".terraform-version"
	Latest   LatestSource // per-tool latest-version strategy
}

// Resolve interprets request according to the resolution priority:
// "skip" suppresses installation, an exact version is taken as-is,
// "latest" queries the release channel, and an empty request falls
// back to a pin file discovered from workDir (or to "latest" when no
// pin file exists). A nil spec with a nil error means installation was
// skipped.
func (r *Resolver) Resolve(request, workDir string) (*VersionSpec, error) {
	request = strings.TrimSpace(request)

	switch {
	case strings.EqualFold(request, "skip"):
		return nil, nil

	case semver.IsExact(request):
		return &VersionSpec{Input: request, Resolved: request, Source: SourceInput}, nil

	case request == "latest":
		resolved, err := r.Latest.FetchLatest()
		if err != nil {
			return nil, err
		}
		return &VersionSpec{Input: "latest", Resolved: resolved, Source: SourceLatest}, nil

	case request == "":
		return r.resolveFromFile(workDir)

	default:
		return nil, &InvalidVersionError{Tool: r.Tool, Value: request}
	}
}

// resolveFromFile applies the pin-file branch: the file content goes
// through the same three rules as a direct request, except that its
// provenance is recorded as the file.
func (r *Resolver) resolveFromFile(workDir string) (*VersionSpec, error) {
	value, path, found := versionfile.Read(workDir, r.FileName)
	if !found {
		resolved, err := r.Latest.FetchLatest()
		if err != nil {
			return nil, err
		}
		return &VersionSpec{Input: "latest", Resolved: resolved, Source: SourceLatest}, nil
	}

	switch {
	case strings.EqualFold(value, "skip"):
		return nil, nil

	case semver.IsExact(value):
		return &VersionSpec{Input: value, Resolved: value, Source: SourceFile}, nil

	case value == "latest":
		resolved, err := r.Latest.FetchLatest()
		if err != nil {
			return nil, err
		}
		return &VersionSpec{Input: value, Resolved: resolved, Source: SourceFile}, nil

	default:
		return nil, &InvalidVersionError{Tool: r.Tool, Value: value, File: path}
	}
}
