package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/menuboard/menuboard/internal/log"
	"github.com/menuboard/menuboard/internal/version"
)

const (
	updateCheckInterval = 24 * time.Hour
	lastCheckFile       = "last-update-check.json"
)

// LastCheckInfo stores information about the last update check.
type LastCheckInfo struct {
	CheckedAt     time.Time `json:"checked_at"`
	LatestVersion string    `json:"latest_version"`
	ReleaseURL    string    `json:"release_url"`
	Available     bool      `json:"available"`
}

// ShouldCheckForUpdate determines if we should check for updates based on the last check time.
func ShouldCheckForUpdate(dataDir string) bool {
	info, err := loadLastCheckInfo(dataDir)
	if err != nil {
		// If we can't load the info, we should check.
		return true
	}

	return time.Since(info.CheckedAt) > updateCheckInterval
}

// SaveLastCheckInfo saves information about the last update check.
func SaveLastCheckInfo(dataDir string, info *Info) error {
	lastCheck := LastCheckInfo{
		CheckedAt:     time.Now(),
		LatestVersion: info.LatestVersion,
		ReleaseURL:    info.ReleaseURL,
		Available:     info.Available,
	}

	data, err := json.MarshalIndent(lastCheck, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, lastCheckFile), data, 0o644)
}

// GetLastCheckInfo returns information about the last update check.
func GetLastCheckInfo(dataDir string) (*LastCheckInfo, error) {
	return loadLastCheckInfo(dataDir)
}

func loadLastCheckInfo(dataDir string) (*LastCheckInfo, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, lastCheckFile))
	if err != nil {
		return nil, err
	}

	var info LastCheckInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// CheckForUpdateAsync performs an update check in the background and returns immediately.
// If an update is available, it returns the update info through the channel.
func CheckForUpdateAsync(ctx context.Context, dataDir string) <-chan *Info {
	return defaultChecker.checkAsync(ctx, dataDir)
}

func (c *Checker) checkAsync(ctx context.Context, dataDir string) <-chan *Info {
	ch := make(chan *Info, 1)

	go func() {
		defer close(ch)
		defer log.RecoverPanic("update-check", nil)

		if !ShouldCheckForUpdate(dataDir) {
			// Even if we shouldn't check, show notification if forced
			if os.Getenv("MENUBOARD_FORCE_UPDATE_NOTIFICATION") == "1" {
				lastInfo, err := loadLastCheckInfo(dataDir)
				if err == nil && lastInfo.Available {
					ch <- &Info{
						CurrentVersion: version.Version,
						LatestVersion:  lastInfo.LatestVersion,
						ReleaseURL:     lastInfo.ReleaseURL,
						Available:      true,
					}
				}
			}
			return
		}

		info, err := c.Check(ctx)
		if IsOffline(err) {
			slog.Debug("Skipping update check while offline", "error", err)
			return
		}
		if err != nil {
			slog.Warn("Failed to check for updates", "error", err)
			return
		}

		if err := SaveLastCheckInfo(dataDir, info); err != nil {
			slog.Warn("Failed to save update check info", "error", err)
		}

		if info.Available {
			ch <- info
		}
	}()

	return ch
}
