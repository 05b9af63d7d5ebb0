// Package audiostore persists synthesized tip audio to a local directory
// and serves it back by bare filename. Filenames are random, so
// concurrent requests cannot collide.
package audiostore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidName rejects filenames that are empty or look like a path.
var ErrInvalidName = errors.New("invalid audio filename")

type Store struct {
	dir        string
	publicPath string
}

// New creates the audio directory if needed and returns a store over it.
func New(dir, publicPath string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &Store{
		dir:        dir,
		publicPath: strings.TrimRight(publicPath, "/"),
	}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes audio bytes under a fresh random filename and returns it.
func (s *Store) Save(audio []byte) (string, error) {
	name := "tip_" + uuid.NewString() + ".mp3"
	if err := os.WriteFile(filepath.Join(s.dir, name), audio, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return name, nil
}

// PublicPath maps a stored filename to the URL path clients fetch it from.
func (s *Store) PublicPath(filename string) string {
	return s.publicPath + "/" + filename
}

// Resolve validates a client-supplied filename and returns the on-disk
// path, or an error if the name is unsafe or the file does not exist.
func (s *Store) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrInvalidName
	}
	p := filepath.Join(s.dir, filename)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("stat audio file: %w", err)
	}
	return p, nil
}
