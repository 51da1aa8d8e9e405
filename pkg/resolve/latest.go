package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/elioetibr/tfprovision/pkg/semver"
)

const (
	hashicorpReleasesBase = "https://releases.hashicorp.com"
	githubAPIBase         = "https://api.github.com"

	// userAgent identifies this client on every release-channel request.
	userAgent = "tfprovision"

	// EnvGitHubToken optionally authenticates GitHub API requests to
	// avoid the unauthenticated rate limit.
	EnvGitHubToken = "GITHUB_TOKEN"
)

// ErrNoQualifyingVersion means a release index contained no exact
// major.minor.patch version after filtering out prereleases.
var ErrNoQualifyingVersion = errors.New("no stable version found in release index")

// FetchError reports a non-success HTTP response from a release
// channel. RateLimited distinguishes denials caused by API rate
// limiting.
type FetchError struct {
	URL         string
	StatusCode  int
	RateLimited bool
}

func (e *FetchError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("fetching %s failed with HTTP %d: API rate limit exceeded, set %s to authenticate",
			e.URL, e.StatusCode, EnvGitHubToken)
	}
	return fmt.Sprintf("fetching %s failed with HTTP %d", e.URL, e.StatusCode)
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// HashicorpIndex discovers the latest version of a HashiCorp product
// from its releases index, a JSON document whose versions object lists
// every known version as a key.
type HashicorpIndex struct {
	Product string
	BaseURL string       // override for tests, defaults to releases.hashicorp.com
	Client  *http.Client // defaults to a 30s-timeout client
}

// FetchLatest returns the newest exact major.minor.patch version in
// the index. Versions with prerelease or build suffixes never qualify.
func (h *HashicorpIndex) FetchLatest() (string, error) {
	base := h.BaseURL
	if base == "" {
		base = hashicorpReleasesBase
	}
	client := h.Client
	if client == nil {
		client = defaultClient()
	}

	url := fmt.Sprintf("%s/%s/index.json", base, h.Product)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build index request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s release index: %w", h.Product, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	var index struct {
		Versions map[string]json.RawMessage `json:"versions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return "", fmt.Errorf("failed to decode %s release index: %w", h.Product, err)
	}

	candidates := make([]string, 0, len(index.Versions))
	for v := range index.Versions {
		candidates = append(candidates, v)
	}

	sorted := semver.SortStrings(candidates)
	if len(sorted) == 0 {
		return "", fmt.Errorf("%s: %w", h.Product, ErrNoQualifyingVersion)
	}

	return sorted[0], nil
}

// GitHubLatestRelease discovers the latest version of a tool from the
// GitHub "latest release" API. A bearer token from GITHUB_TOKEN is
// attached when present.
type GitHubLatestRelease struct {
	Owner   string
	Repo    string
	BaseURL string       // override for tests, defaults to api.github.com
	Client  *http.Client // defaults to a 30s-timeout client
}

// FetchLatest returns the latest release tag with any leading "v"
// stripped. HTTP 403 is reported as a rate-limit denial.
func (g *GitHubLatestRelease) FetchLatest() (string, error) {
	base := g.BaseURL
	if base == "" {
		base = githubAPIBase
	}
	client := g.Client
	if client == nil {
		client = defaultClient()
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", base, g.Owner, g.Repo)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build release request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if token := strings.TrimSpace(os.Getenv(EnvGitHubToken)); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest %s/%s release: %w", g.Owner, g.Repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode, RateLimited: true}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode latest %s/%s release: %w", g.Owner, g.Repo, err)
	}

	version := strings.TrimPrefix(release.TagName, "v")
	if !semver.IsExact(version) {
		return "", fmt.Errorf("latest %s/%s release has unexpected tag %q", g.Owner, g.Repo, release.TagName)
	}

	return version, nil
}
