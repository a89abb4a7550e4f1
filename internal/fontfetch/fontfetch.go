// Package fontfetch downloads font families from the google/fonts repository into the local
// font directory, where fonts.Resolve finds them by name.
package fontfetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiBase   = "https://api.github.com/repos/google/fonts/contents/ofl"
	rawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

// ErrNotFound means no folder for the family exists upstream, or it holds no font file.
var ErrNotFound = errors.New("font family not found")

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Client talks to the GitHub contents API. Only download URLs under RawPrefix are fetched.
type Client struct {
	HTTP      *http.Client
	APIBase   string
	RawPrefix string
	log       *zap.Logger
}

// New returns a client for the public google/fonts repository.
func New(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		HTTP:      &http.Client{Timeout: 60 * time.Second},
		APIBase:   apiBase,
		RawPrefix: rawPrefix,
		log:       log,
	}
}

// NormalizeFamily converts a display name to the folder names used under ofl/.
// "Inter" gives ["inter"], "Open Sans" gives ["opensans", "open-sans"].
func NormalizeFamily(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// FindURL returns the download URL of one upright font file of family. Italic files are used
// only when nothing else exists.
func (c *Client) FindURL(ctx context.Context, family string) (string, error) {
	folders := NormalizeFamily(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	var lastErr error
	for _, folder := range folders {
		u, err := c.findInFolder(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (c *Client) findInFolder(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %q", ErrNotFound, folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	var fallback string
	for _, f := range files {
		lower := strings.ToLower(f.Name)
		if f.Type != "file" || !strings.HasPrefix(f.DownloadURL, c.RawPrefix) {
			continue
		}
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if strings.Contains(lower, "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: no .ttf or .otf in %q", ErrNotFound, folder)
}

// Fetch downloads family into destDir/<folder>/ and returns the saved path.
func (c *Client) Fetch(ctx context.Context, family, destDir string) (string, error) {
	u, err := c.FindURL(ctx, family)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(destDir, NormalizeFamily(family)[0])
	saved, err := c.download(ctx, u, dir)
	if err != nil {
		return "", err
	}
	c.log.Info("font fetched", zap.String("family", family), zap.String("path", saved))
	return saved, nil
}

func (c *Client) download(ctx context.Context, rawURL, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	name := sanitizeFilename(filenameFromURL(rawURL))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	saved := filepath.Join(dir, name)
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(saved)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return saved, nil
}

func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base, err := url.PathUnescape(path.Base(u.Path))
	if err != nil {
		return path.Base(u.Path)
	}
	return base
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_.\[\],-]+`)

func sanitizeFilename(name string) string {
	if name == "" || name == "." || name == "/" {
		return "font.ttf"
	}
	name = unsafeName.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
