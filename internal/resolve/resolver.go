// SPDX-License-Identifier: MPL-2.0

// Package resolve turns declared dependency coordinates into concrete
// jar files on disk. Resolution is repeated on every build invocation;
// only the downloaded jar bytes are reused across runs via the on-disk
// cache directory.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Resolver resolves dependency coordinates to absolute jar paths, in
// input order. Implementations must not return paths for coordinates
// that are excluded by scope.
type Resolver interface {
	Resolve(ctx context.Context, coords []Coordinate) ([]string, error)
}

// MavenResolver fetches artifacts from Maven-layout HTTP repositories
// into a local cache directory mirroring the repository layout.
type MavenResolver struct {
	// Repos are repository base URLs, tried in order.
	Repos []string
	// CacheDir is the root of the local artifact cache.
	CacheDir string
	// Client overrides the HTTP client (tests); nil means http.DefaultClient.
	Client *http.Client
	// Logger overrides the package logger; nil means log.Default().
	Logger *log.Logger
}

// NewMavenResolver creates a resolver over the given repositories and
// cache directory.
func NewMavenResolver(repos []string, cacheDir string) *MavenResolver {
	return &MavenResolver{Repos: repos, CacheDir: cacheDir}
}

// Resolve returns the absolute cached jar path for every resolvable
// coordinate, downloading artifacts that are not cached yet. Paths are
// returned in coordinate order.
func (r *MavenResolver) Resolve(ctx context.Context, coords []Coordinate) ([]string, error) {
	logger := r.logger()

	paths := make([]string, 0, len(coords))
	for _, c := range coords {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.Resolvable() {
			logger.Debug("skipping scoped dependency", "coordinate", c.String(), "scope", c.Scope)
			continue
		}

		cached := filepath.Join(r.CacheDir, filepath.FromSlash(c.RepoPath()))
		if info, err := os.Stat(cached); err == nil && info.Mode().IsRegular() {
			paths = append(paths, cached)
			continue
		}

		logger.Debug("fetching dependency", "coordinate", c.String())
		if err := r.fetch(ctx, c, cached); err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", c, err)
		}
		paths = append(paths, cached)
	}

	return paths, nil
}

// fetch downloads the coordinate's jar from the first repository that
// has it, writing to a temp file and renaming into place so a failed
// download never leaves a partial jar in the cache.
func (r *MavenResolver) fetch(ctx context.Context, c Coordinate, dest string) error {
	if len(r.Repos) == 0 {
		return fmt.Errorf("no repositories configured")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	var lastErr error
	for _, repo := range r.Repos {
		url := strings.TrimSuffix(repo, "/") + "/" + c.RepoPath()
		err := r.download(ctx, url, dest)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (r *MavenResolver) download(ctx context.Context, url, dest string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client().Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed with status: %s", url, resp.Status)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath) // Best-effort cleanup
		}
	}()

	_, err = io.Copy(tmpFile, resp.Body)
	if closeErr := tmpFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to save downloaded jar: %w", err)
	}

	return os.Rename(tmpPath, dest)
}

func (r *MavenResolver) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

func (r *MavenResolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
