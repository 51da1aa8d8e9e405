// Package versionfile locates version-pin files by walking a directory
// tree upward, following the conventions of per-language version-pin
// tools: the search stops at the user's home directory or the
// filesystem root, with one final check in the home directory itself.
package versionfile

import (
	"os"
	"path/filepath"
	"strings"
)

// Read walks upward from startDir looking for fileName. It returns the
// first qualifying line of the first file found, the path of that
// file, and whether anything was found. A file that exists but holds
// only blank lines and comments is treated as absent at that level and
// the walk continues.
func Read(startDir, fileName string) (value, path string, found bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", false
	}

	home, _ := os.UserHomeDir()
	checkedHome := false

	for {
		candidate := filepath.Join(dir, fileName)
		if v, ok := firstToken(candidate); ok {
			return v, candidate, true
		}
		if home != "" && dir == home {
			checkedHome = true
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if home != "" && !checkedHome {
		candidate := filepath.Join(home, fileName)
		if v, ok := firstToken(candidate); ok {
			return v, candidate, true
		}
	}

	return "", "", false
}

// firstToken returns the first line of the file that is non-empty
// after trimming and does not begin with "#".
func firstToken(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}

	return "", false
}
