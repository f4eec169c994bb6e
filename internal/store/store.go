package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Hamish-Leahy/Prism-sub005/internal/common"
	"github.com/Hamish-Leahy/Prism-sub005/internal/filex"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
)

// Store reads and writes whole JSON documents under a single directory.
// The zero value is not usable; construct with New.
type Store struct {
	dir string
	log logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string, log logging.Logger) (*Store, error) {
	if err := filex.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &Store{
		dir:   dir,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the directory the store writes under.
func (s *Store) Dir() string {
	return s.dir
}

// fileLock returns the mutex guarding file, creating it on first use.
func (s *Store) fileLock(file string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[file]
	if !ok {
		l = &sync.Mutex{}
		s.locks[file] = l
	}
	return l
}

// load reads and decodes file into a fresh T. A missing file is the normal
// first-run case and yields the zero value silently; an unreadable or
// corrupt file also yields the zero value but is logged, so one damaged
// document degrades to empty instead of blocking startup.
//
// The caller must hold the file lock.
func load[T any](ctx context.Context, s *Store, file string) T {
	var v T
	data, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn(ctx, "document unreadable, treating as empty", "file", file, "error", err)
		}
		return v
	}
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.Warn(ctx, "document corrupt, treating as empty", "file", file, "error", err)
		var zero T
		return zero
	}
	return v
}

// save marshals v and atomically replaces file with it. The document is
// written to a temp file in the same directory first and moved into place
// with a rename, so readers observe either the old content or the new,
// never a partial write. All failures carry common.ErrStorageIO.
//
// The caller must hold the file lock.
func save[T any](s *Store, file string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Join(common.ErrStorageIO, fmt.Errorf("marshal %s: %w", file, err))
	}

	tmp, err := os.CreateTemp(s.dir, file+".tmp-*")
	if err != nil {
		return errors.Join(common.ErrStorageIO, fmt.Errorf("create temp for %s: %w", file, err))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Join(common.ErrStorageIO, fmt.Errorf("write %s: %w", file, err))
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Join(common.ErrStorageIO, fmt.Errorf("chmod %s: %w", file, err))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(common.ErrStorageIO, fmt.Errorf("close %s: %w", file, err))
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, file)); err != nil {
		return errors.Join(common.ErrStorageIO, fmt.Errorf("replace %s: %w", file, err))
	}
	return nil
}

// View runs fn with the current document in file. fn must not retain the
// value past the call.
func View[T any](ctx context.Context, s *Store, file string, fn func(T) error) error {
	l := s.fileLock(file)
	l.Lock()
	defer l.Unlock()

	return fn(load[T](ctx, s, file))
}

// Mutate loads the current document in file, applies fn, and persists the
// result. The whole sequence holds the document lock, so concurrent
// mutations serialise instead of overwriting each other. If fn returns an
// error nothing is written.
func Mutate[T any](ctx context.Context, s *Store, file string, fn func(T) (T, error)) error {
	l := s.fileLock(file)
	l.Lock()
	defer l.Unlock()

	next, err := fn(load[T](ctx, s, file))
	if err != nil {
		return err
	}
	return save(s, file, next)
}

// Read returns the current document in file.
func Read[T any](ctx context.Context, s *Store, file string) (T, error) {
	var out T
	err := View(ctx, s, file, func(v T) error {
		out = v
		return nil
	})
	return out, err
}

// Write replaces the document in file with v.
func Write[T any](ctx context.Context, s *Store, file string, v T) error {
	return Mutate(ctx, s, file, func(T) (T, error) {
		return v, nil
	})
}
