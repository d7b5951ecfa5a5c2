package file

import (
	"context"
	"mime"
	"path"
	"strings"
)

// Entry represents a file or directory entry.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// Storage is the output backend for localized files.
// Paths are slash-separated and relative to the storage root.
type Storage interface {
	// Write stores data at path, creating parent directories as needed.
	Write(ctx context.Context, path string, data []byte) error
	// Read returns the content stored at path.
	Read(ctx context.Context, path string) ([]byte, error)
	// Delete removes a single file.
	Delete(ctx context.Context, path string) error
	// DeleteDir recursively removes a directory and all its contents.
	DeleteDir(ctx context.Context, path string) error
	// Exists checks if a file or directory exists.
	Exists(ctx context.Context, path string) bool
	// List returns all entries in a directory (non-recursive), sorted by name.
	List(ctx context.Context, dir string) ([]Entry, error)
}

// WalkFunc is called by Walk for every file below the walked directory.
// rel is the file path relative to that directory.
type WalkFunc func(rel string, entry Entry) error

// Walk visits every file below dir in lexical order, depth first.
func Walk(ctx context.Context, s Storage, dir string, fn WalkFunc) error {
	return walk(ctx, s, dir, "", fn)
}

func walk(ctx context.Context, s Storage, root, rel string, fn WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.List(ctx, joinPath(root, rel))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := joinPath(rel, entry.Name)
		if entry.IsDir {
			if err := walk(ctx, s, root, child, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(child, entry); err != nil {
			return err
		}
	}
	return nil
}

// ContentType returns the MIME type stored with an object at p.
func ContentType(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return "application/json"
	case ".xliff", ".xlf":
		return "application/xliff+xml"
	}
	if t := mime.TypeByExtension(path.Ext(p)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func joinPath(elem ...string) string {
	var parts []string
	for _, e := range elem {
		if e != "" && e != "." {
			parts = append(parts, e)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return path.Join(parts...)
}
