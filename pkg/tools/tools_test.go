package tools

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/elioetibr/tfprovision/pkg/install"
	"github.com/elioetibr/tfprovision/pkg/resolve"
)

type fakeAgent struct {
	paths  []string
	result agent.ExecResult
	execs  int
}

func (f *fakeAgent) Exec(command string, args []string, opts agent.ExecOptions) (agent.ExecResult, error) {
	f.execs++
	return f.result, nil
}

func (f *fakeAgent) AddPath(path string) {
	f.paths = append(f.paths, path)
}

func (f *fakeAgent) Info(format string, args ...interface{})    {}
func (f *fakeAgent) Warning(format string, args ...interface{}) {}
func (f *fakeAgent) Debug(format string, args ...interface{})   {}

func TestCatalogDefinitions(t *testing.T) {
	testCases := []struct {
		name    string
		pinFile string
	}{
		{"terraform", ".terraform-version"},
		{"terragrunt", ".terragrunt-version"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def, err := Get(tc.name)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tc.name, err)
			}
			if def.PinFile != tc.pinFile {
				t.Errorf("PinFile = %q, want %q", def.PinFile, tc.pinFile)
			}
			if def.Latest == nil || def.Artifact == nil || def.VersionPattern == nil {
				t.Errorf("definition %q is incomplete: %+v", tc.name, def)
			}
		})
	}

	if _, err := Get("packer"); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestTerraformVersionPattern(t *testing.T) {
	m := Terraform().VersionPattern.FindStringSubmatch("Terraform v1.9.8\non linux_amd64\n")
	if m == nil || m[1] != "1" || m[2] != "9" || m[3] != "8" {
		t.Errorf("terraform pattern match = %v", m)
	}
}

func TestTerragruntVersionPattern(t *testing.T) {
	for _, output := range []string{"terragrunt version v0.75.10", "terragrunt version 0.75.10"} {
		m := Terragrunt().VersionPattern.FindStringSubmatch(output)
		if m == nil || m[1] != "0" || m[2] != "75" || m[3] != "10" {
			t.Errorf("terragrunt pattern match for %q = %v", output, m)
		}
	}
}

func TestProvisionEndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(install.EnvToolCache, t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/mytool/releases/latest":
			fmt.Fprint(w, `{"tag_name":"v2.0.0"}`)
		default:
			fmt.Fprint(w, "binary-bytes")
		}
	}))
	defer server.Close()

	def := Definition{
		Name:    "mytool",
		PinFile: ".mytool-version",
		Latest:  &resolve.GitHubLatestRelease{Owner: "acme", Repo: "mytool", BaseURL: server.URL},
		Artifact: &install.BareBinary{
			URLTemplate: server.URL + "/v{{.Version}}/{{.Tool}}_{{.OS}}_{{.Arch}}",
		},
	}

	ag := &fakeAgent{}
	spec, dir, err := NewProvisioner(ag).Provision(def, "", t.TempDir())
	if err != nil {
		t.Fatalf("Provision failed: %v", err)
	}

	want := resolve.VersionSpec{Input: "latest", Resolved: "2.0.0", Source: resolve.SourceLatest}
	if *spec != want {
		t.Errorf("spec = %+v, want %+v", *spec, want)
	}
	if len(ag.paths) != 1 || ag.paths[0] != dir {
		t.Errorf("AddPath calls = %v, want the cache dir %q", ag.paths, dir)
	}
}

func TestProvisionSkip(t *testing.T) {
	ag := &fakeAgent{}
	spec, dir, err := NewProvisioner(ag).Provision(Terraform(), "skip", t.TempDir())
	if err != nil {
		t.Fatalf("Provision failed: %v", err)
	}
	if spec != nil || dir != "" {
		t.Errorf("Provision(skip) = %+v, %q; want nil spec and no dir", spec, dir)
	}
	if len(ag.paths) != 0 {
		t.Errorf("skip must not register a path, got %v", ag.paths)
	}
}

func TestInstalledVersionMemoizes(t *testing.T) {
	ag := &fakeAgent{result: agent.ExecResult{Stdout: "Terraform v1.9.8\n"}}
	p := NewProvisioner(ag)

	if _, err := p.InstalledVersion(Terraform()); err != nil {
		t.Fatalf("InstalledVersion failed: %v", err)
	}
	if _, err := p.InstalledVersion(Terraform()); err != nil {
		t.Fatalf("second InstalledVersion failed: %v", err)
	}
	if ag.execs != 1 {
		t.Errorf("probe invocations = %d, want 1", ag.execs)
	}

	p.ClearDetectionCache()
	if _, err := p.InstalledVersion(Terraform()); err != nil {
		t.Fatalf("InstalledVersion after clear failed: %v", err)
	}
	if ag.execs != 2 {
		t.Errorf("probe invocations = %d, want 2 after cache clear", ag.execs)
	}
}
