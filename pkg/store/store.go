// Package store owns the on-disk output tree of a capture run.
//
// Every artifact of a run lives under <root>/<slug>/. The tree is
// append-only while a run is in progress: stages only create files, never
// read-modify-write them, so no locking is needed. [FileStore.Reset] wipes
// the slug directory at the start of a run because each run fully
// regenerates its output.
package store

import (
	"os"
	"path/filepath"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

// FileStore writes artifacts under a single slug directory.
type FileStore struct {
	dir string
}

// Open returns a store rooted at root/slug. Nothing is created until the
// first write or Reset.
func Open(root, slug string) (*FileStore, error) {
	if err := errors.ValidateSlug(slug); err != nil {
		return nil, err
	}
	if root == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "output root cannot be empty")
	}
	return &FileStore{dir: filepath.Join(root, slug)}, nil
}

// Dir returns the slug directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Reset removes any previous output for the slug and recreates the
// directory empty.
func (s *FileStore) Reset() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "clear %s", s.dir)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", s.dir)
	}
	return nil
}

// Path converts a slash-separated path relative to the slug directory into
// a filesystem path.
func (s *FileStore) Path(rel string) string {
	return filepath.Join(s.dir, filepath.FromSlash(rel))
}

// EnsureDir creates the directory rel (and parents) and returns its path.
func (s *FileStore) EnsureDir(rel string) (string, error) {
	path := s.Path(rel)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", path)
	}
	return path, nil
}

// WriteFile writes data to rel, creating parent directories as needed, and
// returns the written path.
func (s *FileStore) WriteFile(rel string, data []byte) (string, error) {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	return path, nil
}

// Rename moves the file at from (relative) to to (relative), replacing any
// existing file, and returns the destination path.
func (s *FileStore) Rename(from, to string) (string, error) {
	src, dst := s.Path(from), s.Path(to)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", filepath.Dir(dst))
	}
	if err := os.Rename(src, dst); err != nil {
		return "", errors.Wrap(errors.ErrCodeFilesystem, err, "rename %s", src)
	}
	return dst, nil
}

// Remove deletes rel. A missing file is not an error.
func (s *FileStore) Remove(rel string) error {
	err := os.Remove(s.Path(rel))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether rel is an existing regular file.
func (s *FileStore) Exists(rel string) bool {
	info, err := os.Stat(s.Path(rel))
	return err == nil && info.Mode().IsRegular()
}
