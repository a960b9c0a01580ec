package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/menuboard/menuboard/internal/version"
)

const (
	githubAPIURL = "https://api.github.com/repos/menuboard/menuboard/releases/latest"
	userAgent    = "menuboard-update-check"
)

// Release represents a GitHub release.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Info contains information about an available update.
type Info struct {
	CurrentVersion string `json:"current_version"`
	LatestVersion  string `json:"latest_version,omitempty"`
	ReleaseURL     string `json:"release_url,omitempty"`
	Available      bool   `json:"available"`
}

// Checker asks a release endpoint for the latest version.
type Checker struct {
	URL    string
	Client *http.Client
}

var defaultChecker = &Checker{
	URL: githubAPIURL,
	Client: &http.Client{
		Timeout: 30 * time.Second,
	},
}

// CheckForUpdate checks if a new version is available.
func CheckForUpdate(ctx context.Context) (*Info, error) {
	return defaultChecker.Check(ctx)
}

func (c *Checker) Check(ctx context.Context) (*Info, error) {
	info := &Info{
		CurrentVersion: version.Version,
	}

	// Skip update check for development versions.
	if strings.Contains(version.Version, "unknown") {
		return info, nil
	}

	release, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}

	info.LatestVersion = strings.TrimPrefix(release.TagName, "v")
	info.ReleaseURL = release.HTMLURL
	info.Available = compareVersions(info.CurrentVersion, info.LatestVersion) < 0

	return info, nil
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, string(body))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}

	return &release, nil
}

// compareVersions compares two semantic versions.
// Returns -1 if v1 < v2, 0 if v1 == v2, 1 if v1 > v2.
func compareVersions(v1, v2 string) int {
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := 0; i < len(parts1) && i < len(parts2); i++ {
		var n1, n2 int
		fmt.Sscanf(parts1[i], "%d", &n1)
		fmt.Sscanf(parts2[i], "%d", &n2)

		if n1 < n2 {
			return -1
		} else if n1 > n2 {
			return 1
		}
	}

	// If all parts are equal, compare lengths.
	if len(parts1) < len(parts2) {
		return -1
	} else if len(parts1) > len(parts2) {
		return 1
	}

	return 0
}
