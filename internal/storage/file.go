package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"gamebacklog/backend/internal/models"
)

// FileStore keeps the library as a JSON snapshot on a filesystem. Writes go
// to a temp file first and are renamed into place, so a crash mid-write
// leaves the previous snapshot intact.
type FileStore struct {
	fs   afero.Fs
	path string
	log  *logrus.Logger
}

// NewFileStore creates a store writing to path on the OS filesystem.
func NewFileStore(path string, log *logrus.Logger) *FileStore {
	return NewFileStoreFS(afero.NewOsFs(), path, log)
}

// NewFileStoreFS creates a store on an explicit filesystem, which lets tests
// run against an in-memory one.
func NewFileStoreFS(fs afero.Fs, path string, log *logrus.Logger) *FileStore {
	return &FileStore{fs: fs, path: path, log: log}
}

func (s *FileStore) Load(_ context.Context) ([]models.Game, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return []models.Game{}, nil
	}
	if err != nil {
		return nil, persistErr("load", err)
	}

	games, err := decodeGames(data, s.log)
	if err != nil {
		return nil, persistErr("load", err)
	}
	return games, nil
}

func (s *FileStore) Save(_ context.Context, games []models.Game) error {
	data, err := encodeGames(games)
	if err != nil {
		return persistErr("save", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return persistErr("save", err)
	}

	tmp := fmt.Sprintf("%s.tmp", s.path)
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return persistErr("save", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return persistErr("save", err)
	}
	return nil
}
