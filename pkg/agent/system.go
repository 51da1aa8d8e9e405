package agent

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// EnvVerbose enables debug logging when set to "true".
const EnvVerbose = "TFPROVISION_VERBOSE"

// System is the default Agent implementation backed by os/exec and the
// process environment. Paths registered through AddPath are appended to
// the file named by GITHUB_PATH when running under an automation
// runner, and to the process PATH otherwise.
type System struct {
	stdout io.Writer
	stderr io.Writer
}

// NewSystem creates a system agent writing to the process streams.
func NewSystem() *System {
	return &System{stdout: os.Stdout, stderr: os.Stderr}
}

// Exec runs command with args and captures its output. Unless
// opts.Silent is set, output is streamed live as well. A non-zero exit
// code is returned as an error unless opts.IgnoreReturnCode is set;
// the exit code is reported in the result either way.
func (s *System) Exec(command string, args []string, opts ExecOptions) (ExecResult, error) {
	cmd := exec.Command(command, args...)
	if opts.Cwd != "" {
		cmd.Dir = opts.Cwd
	}

	var stdout, stderr bytes.Buffer
	if opts.Silent {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = io.MultiWriter(&stdout, s.stdout)
		cmd.Stderr = io.MultiWriter(&stderr, s.stderr)
	}

	err := cmd.Run()

	result := ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, fmt.Errorf("failed to run %s: %w", command, err)
		}
		result.ExitCode = exitErr.ExitCode()
		if !opts.IgnoreReturnCode {
			return result, fmt.Errorf("%s exited with code %d", command, result.ExitCode)
		}
	}

	return result, nil
}

// AddPath prepends path to the executable search path. Under an
// automation runner the path is appended to the GITHUB_PATH file so it
// survives into subsequent steps.
func (s *System) AddPath(path string) {
	if pathFile := os.Getenv("GITHUB_PATH"); pathFile != "" {
		f, err := os.OpenFile(pathFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintln(f, path)
			f.Close()
		}
	}
	os.Setenv("PATH", path+string(filepath.ListSeparator)+os.Getenv("PATH"))
}

// Info logs a progress message.
func (s *System) Info(format string, args ...interface{}) {
	fmt.Fprintln(s.stdout,
		color.BlueString(" •"),
		fmt.Sprintf(format, args...))
}

// Warning logs a warning message.
func (s *System) Warning(format string, args ...interface{}) {
	fmt.Fprintln(s.stderr,
		color.YellowString(" !"),
		fmt.Sprintf(format, args...))
}

// Debug logs a detail message when verbose logging is enabled.
func (s *System) Debug(format string, args ...interface{}) {
	if os.Getenv(EnvVerbose) != "true" {
		return
	}
	text := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		text = color.New(color.FgHiBlack).Sprint(text)
	}
	fmt.Fprintln(s.stderr, "   └", text)
}

