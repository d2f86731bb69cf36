// Package upload persists uploaded documents on the local filesystem.
// Documents reference files by path string; nothing cleans up orphans.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge  = errors.New("file size exceeds maximum allowed size")
	ErrBadExtension  = errors.New("invalid file type")
	ErrFileNotFound  = errors.New("file not found on server")
	ErrEmptyFilename = errors.New("filename is required")
)

type Store struct {
	baseDir    string
	maxSize    int64
	allowedExt map[string]bool
}

func NewStore(baseDir string, maxSize int64, allowedExt []string) *Store {
	exts := make(map[string]bool, len(allowedExt))
	for _, e := range allowedExt {
		exts[strings.ToLower(e)] = true
	}
	return &Store{baseDir: baseDir, maxSize: maxSize, allowedExt: exts}
}

// ValidateName checks the extension and returns it lowercased.
func (s *Store) ValidateName(filename string) (string, error) {
	if filename == "" {
		return "", ErrEmptyFilename
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowedExt[ext] {
		allowed := make([]string, 0, len(s.allowedExt))
		for e := range s.allowedExt {
			allowed = append(allowed, e)
		}
		return "", fmt.Errorf("%w, allowed: %s", ErrBadExtension, strings.Join(allowed, ", "))
	}
	return ext, nil
}

// Save writes the stream under baseDir/subdir/name and returns the stored
// path. Size is enforced against the configured maximum.
func (s *Store) Save(subdir, name string, size int64, r io.Reader) (string, error) {
	if size > s.maxSize {
		return "", ErrFileTooLarge
	}
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	// Guard against callers that don't know the stream length upfront.
	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(path)
		return "", ErrFileTooLarge
	}
	return path, nil
}

// Resolve checks that a stored path still exists on disk.
func (s *Store) Resolve(path string) (string, error) {
	if path == "" {
		return "", ErrFileNotFound
	}
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}
	return path, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *Store) Delete(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MaxSize returns the configured upload limit in bytes.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}
