package install

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/elioetibr/tfprovision/pkg/agent"
)

// urlData holds the values available to artifact URL templates.
type urlData struct {
	Tool    string
	Version string
	OS      string
	Arch    string
}

// Artifact is one of the two per-platform artifact shapes a tool is
// distributed as. Each variant carries its own URL construction and
// post-download handling behind the single Install entry point.
type Artifact interface {
	url(data urlData) (string, error)
	place(body io.Reader, cacheDir, binPath string, ag agent.Agent) error
}

// resolveTemplate renders a URL template against the tool, version and
// platform values, e.g.
// "https://releases.hashicorp.com/{{.Tool}}/{{.Version}}/{{.Tool}}_{{.Version}}_{{.OS}}_{{.Arch}}.zip".
func resolveTemplate(format string, data urlData) (string, error) {
	tmpl, err := template.New("url").Parse(format)
	if err != nil {
		return "", fmt.Errorf("invalid URL template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to resolve URL template: %w", err)
	}
	return buf.String(), nil
}

// ZipArchive distributes a tool as a zipped per-platform archive. The
// downloaded bytes are written to a temporary file inside the cache
// entry and extracted there with the system unzip utility through the
// agent.
type ZipArchive struct {
	URLTemplate string
}

func (z *ZipArchive) url(data urlData) (string, error) {
	return resolveTemplate(z.URLTemplate, data)
}

func (z *ZipArchive) place(body io.Reader, cacheDir, binPath string, ag agent.Agent) error {
	tmp, err := os.CreateTemp(cacheDir, "download-*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temporary archive: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary archive: %w", err)
	}

	result, err := ag.Exec("unzip", []string{"-o", tmp.Name(), "-d", cacheDir}, agent.ExecOptions{
		Silent:           true,
		IgnoreReturnCode: true,
	})
	if err != nil {
		return fmt.Errorf("failed to run unzip: %w", err)
	}
	if result.ExitCode != 0 {
		diag := strings.TrimSpace(result.Stderr)
		if diag == "" {
			diag = strings.TrimSpace(result.Stdout)
		}
		return fmt.Errorf("extraction failed with exit code %d: %s", result.ExitCode, diag)
	}

	return nil
}

// BareBinary distributes a tool as a single per-platform executable.
// The downloaded bytes become the binary directly, no extraction step.
type BareBinary struct {
	URLTemplate string
}

func (b *BareBinary) url(data urlData) (string, error) {
	return resolveTemplate(b.URLTemplate, data)
}

func (b *BareBinary) place(body io.Reader, cacheDir, binPath string, ag agent.Agent) error {
	out, err := os.Create(binPath)
	if err != nil {
		return fmt.Errorf("failed to create binary file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("failed to write binary file: %w", err)
	}

	return nil
}
