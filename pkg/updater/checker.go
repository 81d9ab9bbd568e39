package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/version"
)

const DefaultReleaseURL = "https://api.github.com/repos/kpauljoseph/printcards/releases/latest"

type Checker struct {
	client     *http.Client
	logger     *logger.Logger
	releaseURL string
	current    string
}

type Option func(*Checker)

func WithReleaseURL(url string) Option {
	return func(c *Checker) {
		c.releaseURL = url
	}
}

func WithCurrentVersion(v string) Option {
	return func(c *Checker) {
		c.current = v
	}
}

func NewChecker(logger *logger.Logger, opts ...Option) *Checker {
	c := &Checker{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:     logger,
		releaseURL: DefaultReleaseURL,
		current:    version.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckForUpdates asks the release endpoint for the latest published release.
func (c *Checker) CheckForUpdates(ctx context.Context) (*UpdateInfo, error) {
	c.logger.Debug("Checking for updates at %s", c.releaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.GetVersionInfo())
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release endpoint returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}

	current := strings.TrimPrefix(c.current, "v")
	latest := strings.TrimPrefix(release.TagName, "v")

	return &UpdateInfo{
		CurrentVersion: current,
		LatestVersion:  latest,
		ReleaseNotes:   release.Body,
		DownloadURL:    release.HTMLURL,
		IsAvailable:    !release.Draft && !release.Prerelease && CompareVersions(current, latest) < 0,
	}, nil
}

// CompareVersions returns:
//
//	-1 if v1 < v2
//	 0 if v1 == v2
//	 1 if v1 > v2
//
// Components are compared numerically; a non-numeric component sorts before any number.
func CompareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := 0; i < len(parts1) && i < len(parts2); i++ {
		if c := compareComponent(parts1[i], parts2[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(parts1) < len(parts2):
		return -1
	case len(parts1) > len(parts2):
		return 1
	}
	return 0
}

func compareComponent(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}
