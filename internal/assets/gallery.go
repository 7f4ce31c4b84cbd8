package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Gallery persists finished covers onto the local filesystem. It backs the
// CLI's save step; a failed save is reported but never invalidates the
// already-generated image.
type Gallery struct {
	basePath string
}

// NewGallery initializes a Gallery rooted at basePath.
func NewGallery(basePath string) (*Gallery, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("gallery: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("gallery: ensure base path: %w", err)
	}
	return &Gallery{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (g *Gallery) BasePath() string {
	if g == nil {
		return ""
	}
	return g.basePath
}

// SaveCover writes the PNG bytes under the given name and returns the full
// path. Names are cleaned to prevent directory traversal.
func (g *Gallery) SaveCover(ctx context.Context, name string, data []byte) (string, error) {
	if g == nil {
		return "", errors.New("gallery: not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanName, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(g.basePath, filepath.FromSlash(cleanName))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("gallery: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("gallery: write file: %w", err)
	}
	return fullPath, nil
}

// sanitizeName normalizes a file name and prevents escaping the gallery root.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("gallery: name is required")
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimLeft(name, "/")
	cleaned := filepath.Clean(name)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("gallery: invalid name")
	}
	return cleaned, nil
}
