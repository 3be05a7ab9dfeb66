// Package storage abstracts the blob store that holds synthesized audio.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// ErrNotExist is returned when a path is not present in the store.
var ErrNotExist = errors.New("storage: object does not exist")

// FileInfo contains metadata about a stored object or directory
type FileInfo struct {
	Name       string
	Path       string // Slash-separated, relative to the store root
	IsDir      bool
	Size       int64
	ModifiedAt time.Time
}

// Client defines the blob store operations used by the speech pipeline
type Client interface {
	// List returns entries in the specified directory path
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Upload writes content to a path, replacing any previous object
	Upload(ctx context.Context, path string, content io.Reader) error

	// Delete removes an object. Missing objects yield ErrNotExist.
	Delete(ctx context.Context, path string) error
}

// ListRecursive lists all objects below path.
func ListRecursive(ctx context.Context, client Client, path string) ([]FileInfo, error) {
	var allFiles []FileInfo

	entries, err := client.List(ctx, path)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir {
			subFiles, err := ListRecursive(ctx, client, entry.Path)
			if err != nil {
				return nil, err
			}
			allFiles = append(allFiles, subFiles...)
		} else {
			allFiles = append(allFiles, entry)
		}
	}

	return allFiles, nil
}

// FilterFiles filters file list by a predicate function
func FilterFiles(files []FileInfo, predicate func(FileInfo) bool) []FileInfo {
	var filtered []FileInfo
	for _, f := range files {
		if predicate(f) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// CleanKey normalises an object key to a slash-separated relative path.
func CleanKey(key string) string {
	return strings.Trim(strings.ReplaceAll(key, "\\", "/"), "/")
}
