package resolve

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHashicorpIndexFetchLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/terraform/index.json" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"name":"terraform","versions":{"1.9.8":{},"1.9.7":{},"1.10.0-alpha1":{},"1.8.5":{}}}`)
	}))
	defer server.Close()

	index := &HashicorpIndex{Product: "terraform", BaseURL: server.URL}
	got, err := index.FetchLatest()
	if err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}
	if got != "1.9.8" {
		t.Errorf("FetchLatest = %q, want %q (prereleases excluded, numeric sort)", got, "1.9.8")
	}
}

func TestHashicorpIndexNoQualifyingVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"terraform","versions":{"1.10.0-alpha1":{},"1.10.0-beta2":{}}}`)
	}))
	defer server.Close()

	index := &HashicorpIndex{Product: "terraform", BaseURL: server.URL}
	_, err := index.FetchLatest()
	if !errors.Is(err, ErrNoQualifyingVersion) {
		t.Errorf("expected ErrNoQualifyingVersion, got %v", err)
	}
}

func TestHashicorpIndexHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	index := &HashicorpIndex{Product: "terraform", BaseURL: server.URL}
	_, err := index.FetchLatest()

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", fetchErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error %q should name the HTTP status", err.Error())
	}
}

func TestGitHubLatestReleaseStripsTagPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/gruntwork-io/terragrunt/releases/latest" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), userAgent)
		}
		fmt.Fprint(w, `{"tag_name":"v0.75.10"}`)
	}))
	defer server.Close()

	release := &GitHubLatestRelease{Owner: "gruntwork-io", Repo: "terragrunt", BaseURL: server.URL}
	got, err := release.FetchLatest()
	if err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}
	if got != "0.75.10" {
		t.Errorf("FetchLatest = %q, want %q", got, "0.75.10")
	}
}

func TestGitHubLatestReleaseSendsBearerToken(t *testing.T) {
	t.Setenv(EnvGitHubToken, "test-token")

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"tag_name":"v1.0.0"}`)
	}))
	defer server.Close()

	release := &GitHubLatestRelease{Owner: "o", Repo: "r", BaseURL: server.URL}
	if _, err := release.FetchLatest(); err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestGitHubLatestReleaseRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	release := &GitHubLatestRelease{Owner: "o", Repo: "r", BaseURL: server.URL}
	_, err := release.FetchLatest()

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !fetchErr.RateLimited {
		t.Error("expected RateLimited to be set for HTTP 403")
	}
	if !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("error %q should hint at rate limiting", err.Error())
	}
}

func TestGitHubLatestReleaseRejectsNonSemverTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"nightly"}`)
	}))
	defer server.Close()

	release := &GitHubLatestRelease{Owner: "o", Repo: "r", BaseURL: server.URL}
	if _, err := release.FetchLatest(); err == nil {
		t.Error("expected error for non-semver tag")
	}
}
