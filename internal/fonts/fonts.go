// Package fonts locates and parses the outline font used for the text mesh.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// ErrNoFont is returned when no font file matches a search.
var ErrNoFont = errors.New("fonts: font not found")

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// Default returns the embedded Go Regular font.
func Default() (*sfnt.Font, error) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse embedded font: %w", err)
	}
	return f, nil
}

// Load reads and parses the TTF or OTF file at path.
func Load(path string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonts: read %s: %w", path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", path, err)
	}
	return f, nil
}

// Resolve picks the font for a configured name. Empty selects the embedded font, an existing
// file path is loaded directly, anything else is searched for under BaseDirs. It returns the
// path it used, or "" for the embedded font.
func Resolve(name string) (*sfnt.Font, string, error) {
	name = StripAssetsFontsPrefix(name)
	if name == "" {
		f, err := Default()
		return f, "", err
	}
	if _, err := os.Stat(name); err == nil {
		f, err := Load(name)
		return f, name, err
	}
	for _, c := range SearchCandidates(name) {
		_, full, err := FindFont(c)
		if err != nil {
			continue
		}
		f, err := Load(full)
		return f, full, err
	}
	return nil, "", fmt.Errorf("%w: %q", ErrNoFont, name)
}

// StripAssetsFontsPrefix removes a leading "assets/fonts/" so a configured path and a bare name
// resolve the same way.
func StripAssetsFontsPrefix(path string) string {
	path = strings.TrimSpace(path)
	for _, prefix := range []string{"assets/fonts/", "assets\\fonts\\"} {
		if strings.HasPrefix(path, prefix) {
			if _, err := os.Stat(path); err == nil {
				return path
			}
			return strings.TrimPrefix(path, prefix)
		}
	}
	return path
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFontFile(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFontFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// SearchCandidates returns search terms to try in order.
// Example: "Go-Mono.otf" -> ["Go-Mono.otf", "Go", "Go-Mono"].
func SearchCandidates(pathOrName string) []string {
	seen := map[string]bool{pathOrName: true}
	candidates := []string{pathOrName}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	// First path segment
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	// Family before the style suffix
	if i := strings.Index(pathOrName, "-"); i > 0 {
		add(pathOrName[:i])
	}
	// Without extension
	for _, ext := range Exts {
		if strings.HasSuffix(strings.ToLower(pathOrName), ext) {
			add(pathOrName[:len(pathOrName)-len(ext)])
			break
		}
	}
	return candidates
}

// FindFont searches BaseDirs for a font file whose path matches search, preferring a "Regular"
// face when several match. It returns the path relative to its base dir and the full path.
func FindFont(search string) (relPath string, fullPath string, err error) {
	return findIn(BaseDirs(), search)
}

func findIn(bases []string, search string) (string, string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", "", ErrNoFont
	}
	var candidates []struct{ rel, full string }
	for _, base := range bases {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if !strings.Contains(normalizeForMatch(rel), norm) {
				continue
			}
			full := base + "/" + rel
			if _, err := os.Stat(full); err == nil {
				candidates = append(candidates, struct{ rel, full string }{rel, full})
			}
		}
	}
	if len(candidates) == 0 {
		return "", "", ErrNoFont
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.rel), "regular") {
			return c.rel, c.full, nil
		}
	}
	return candidates[0].rel, candidates[0].full, nil
}
