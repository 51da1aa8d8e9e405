package semver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Version represents an exact semantic version (major.minor.patch).
// Raw preserves the string the version was parsed from; comparisons
// only ever look at the three numeric fields.
type Version struct {
	Major int
	Minor int
	Patch int
	Raw   string
}

// exactRe matches exact major.minor.patch versions with no prerelease
// or build suffix and no leading "v".
var exactRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// IsExact reports whether s is an exact major.minor.patch version.
func IsExact(s string) bool {
	return exactRe.MatchString(s)
}

// Parse parses an exact major.minor.patch version string.
func Parse(s string) (Version, error) {
	m := exactRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid version format: %s", s)
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	return Version{Major: major, Minor: minor, Patch: patch, Raw: s}, nil
}

// String returns the major.minor.patch form of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare compares two versions numerically. Returns -1 if v < other,
// 0 if equal, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	return 0
}

// AtLeastMajor reports whether the version's major component is at
// least n. Callers use this to branch on a tool's breaking-change
// boundary.
func (v Version) AtLeastMajor(n int) bool {
	return v.Major >= n
}

// SortStrings filters candidates down to exact major.minor.patch
// versions and returns them sorted in descending order (newest first).
// Entries with prerelease or build suffixes are dropped, not sorted.
func SortStrings(candidates []string) []string {
	var parsed []Version
	for _, s := range candidates {
		v, err := Parse(s)
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].Compare(parsed[j]) > 0
	})

	result := make([]string, 0, len(parsed))
	for _, v := range parsed {
		result = append(result, v.Raw)
	}
	return result
}
