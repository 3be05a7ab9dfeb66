// Package local stores objects as plain files below a root directory.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mrlokans/decypher/internal/storage"
)

// Client implements storage.Client on the local filesystem.
type Client struct {
	root string
}

// NewClient creates the root directory if needed.
func NewClient(root string) (*Client, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Client{root: abs}, nil
}

// Root returns the absolute root directory.
func (c *Client) Root() string {
	return c.root
}

func (c *Client) resolve(key string) (string, error) {
	cleaned := path.Clean("/" + storage.CleanKey(key))
	full := filepath.Join(c.root, filepath.FromSlash(cleaned))
	if full != c.root && !strings.HasPrefix(full, c.root+string(filepath.Separator)) {
		return "", fmt.Errorf("storage key %q escapes root", key)
	}
	return full, nil
}

func (c *Client) List(ctx context.Context, dir string) ([]storage.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := c.resolve(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	prefix := storage.CleanKey(dir)
	result := make([]storage.FileInfo, 0, len(entries))
	for _, entry := range entries {
		// Partially written uploads are invisible.
		if strings.HasPrefix(entry.Name(), ".upload_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		result = append(result, storage.FileInfo{
			Name:       entry.Name(),
			Path:       path.Join(prefix, entry.Name()),
			IsDir:      entry.IsDir(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime().UTC(),
		})
	}
	return result, nil
}

// Upload writes to a temp file in the target directory and renames it into
// place so readers never observe a partial object.
func (c *Client) Upload(ctx context.Context, key string, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := c.resolve(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".upload_")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, content); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, full); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", key, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := c.resolve(key)
	if err != nil {
		return err
	}
	if full == c.root {
		return fmt.Errorf("refusing to delete storage root")
	}
	err = os.Remove(full)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.ErrNotExist
	}
	return err
}
