// Package tools binds the per-tool specifics (pin-file name, release
// channel, artifact shape, version probe) into definitions and runs
// the resolve-install-register pipeline over them.
package tools

import (
	"fmt"
	"regexp"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/elioetibr/tfprovision/pkg/detect"
	"github.com/elioetibr/tfprovision/pkg/install"
	"github.com/elioetibr/tfprovision/pkg/resolve"
	"github.com/elioetibr/tfprovision/pkg/semver"
)

// Definition describes everything tool-specific the pipeline needs.
type Definition struct {
	Name           string
	PinFile        string
	Latest         resolve.LatestSource
	Artifact       install.Artifact
	VersionPattern *regexp.Regexp
}

// Terraform is distributed as a zipped per-platform archive from the
// HashiCorp releases site; latest discovery goes through the releases
// index document.
func Terraform() Definition {
	return Definition{
		Name:    "terraform",
		PinFile: ".terraform-version",
		Latest:  &resolve.HashicorpIndex{Product: "terraform"},
		Artifact: &install.ZipArchive{
			URLTemplate: "https://releases.hashicorp.com/{{.Tool}}/{{.Version}}/{{.Tool}}_{{.Version}}_{{.OS}}_{{.Arch}}.zip",
		},
		VersionPattern: regexp.MustCompile(`Terraform v(\d+)\.(\d+)\.(\d+)`),
	}
}

// Terragrunt is distributed as a bare per-platform binary attached to
// its GitHub releases; latest discovery uses the latest-release API.
func Terragrunt() Definition {
	return Definition{
		Name:    "terragrunt",
		PinFile: ".terragrunt-version",
		Latest:  &resolve.GitHubLatestRelease{Owner: "gruntwork-io", Repo: "terragrunt"},
		Artifact: &install.BareBinary{
			URLTemplate: "https://github.com/gruntwork-io/terragrunt/releases/download/v{{.Version}}/{{.Tool}}_{{.OS}}_{{.Arch}}",
		},
		VersionPattern: regexp.MustCompile(`terragrunt version v?(\d+)\.(\d+)\.(\d+)`),
	}
}

// Catalog returns the known tool definitions keyed by name.
func Catalog() map[string]Definition {
	return map[string]Definition{
		"terraform":  Terraform(),
		"terragrunt": Terragrunt(),
	}
}

// Get looks a tool definition up by name.
func Get(name string) (Definition, error) {
	def, ok := Catalog()[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown tool: %s", name)
	}
	return def, nil
}

// Provisioner drives the pipeline for any number of tools through one
// agent, sharing a single detection cache.
type Provisioner struct {
	ag       agent.Agent
	detector *detect.Detector
}

// NewProvisioner creates a provisioner bound to ag.
func NewProvisioner(ag agent.Agent) *Provisioner {
	return &Provisioner{ag: ag, detector: detect.NewDetector()}
}

// Provision resolves request for def, installs the resolved version
// into the cache and registers the cache directory on the executable
// search path. A nil spec means the request asked to skip installation.
func (p *Provisioner) Provision(def Definition, request, workDir string) (*resolve.VersionSpec, string, error) {
	resolver := &resolve.Resolver{
		Tool:     def.Name,
		FileName: def.PinFile,
		Latest:   def.Latest,
	}

	spec, err := resolver.Resolve(request, workDir)
	if err != nil {
		return nil, "", err
	}
	if spec == nil {
		p.ag.Info("skipping %s installation", def.Name)
		return nil, "", nil
	}

	p.ag.Debug("resolved %s %q to %s (source: %s)", def.Name, spec.Input, spec.Resolved, spec.Source)

	installer, err := install.New(def.Name, def.Artifact)
	if err != nil {
		return nil, "", err
	}

	dir, err := installer.Install(spec.Resolved, p.ag)
	if err != nil {
		return nil, "", err
	}

	p.ag.AddPath(dir)
	return spec, dir, nil
}

// InstalledVersion probes the tool's binary for its self-reported
// version. Results are memoized per tool on the provisioner.
func (p *Provisioner) InstalledVersion(def Definition) (semver.Version, error) {
	return p.detector.Detect(p.ag, def.Name, def.VersionPattern)
}

// ClearDetectionCache resets the memoized version probes.
func (p *Provisioner) ClearDetectionCache() {
	p.detector.ClearCache()
}
