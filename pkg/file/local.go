package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LocalStorage implements Storage interface for local filesystem.
// All operations are confined to baseDir to prevent path traversal attacks.
type LocalStorage struct {
	baseDir      string        // Absolute path - all files stored within this directory
	writeTimeout time.Duration // Optional timeout for a single write
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalWriteTimeout sets the timeout for write operations.
// If not set, relies on context deadline from caller.
func WithLocalWriteTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.writeTimeout = timeout
	}
}

// NewLocalStorage creates a new local filesystem storage.
// baseDir is resolved to absolute path and created if it doesn't exist.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	s := &LocalStorage{baseDir: absBaseDir}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// BaseDir returns the absolute root directory.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Write stores data at path. Parent directories are created when missing
// and an existing file is replaced.
func (s *LocalStorage) Write(ctx context.Context, path string, data []byte) error {
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}
	if absPath == s.baseDir {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	// Write to a temp file first so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}

// Read returns the content of the file at path.
func (s *LocalStorage) Read(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return data, nil
}

// Delete removes a single file.
// Verifies the target is a file, not a directory, to prevent accidental data loss.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s, use DeleteDir instead", ErrIsDirectory, path)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}

	return nil
}

// DeleteDir recursively removes a directory and all its contents.
func (s *LocalStorage) DeleteDir(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	if err := os.RemoveAll(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteDirectory, err)
	}

	return nil
}

// Exists checks if a file or directory exists.
// Returns false for invalid paths or on context cancellation.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return false
	}

	_, err = os.Stat(absPath)
	return err == nil
}

// List returns all entries in a directory (non-recursive), sorted by name.
func (s *LocalStorage) List(ctx context.Context, dir string) ([]Entry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	dirEntries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entryAbsPath := filepath.Join(absPath, dirEntry.Name())
		entryRelPath, err := filepath.Rel(s.baseDir, entryAbsPath)
		if err != nil {
			entryRelPath = filepath.Join(dir, dirEntry.Name())
		}

		info, err := dirEntry.Info()
		if err != nil {
			continue // Skip entries we can't read
		}

		entry := Entry{
			Name:  dirEntry.Name(),
			Path:  filepath.ToSlash(entryRelPath),
			IsDir: dirEntry.IsDir(),
		}
		if !dirEntry.IsDir() {
			entry.Size = info.Size()
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// resolvePath validates and resolves a path within the base directory.
// The resolved path must stay within baseDir.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(filepath.FromSlash(path))
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
