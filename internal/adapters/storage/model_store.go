package storage

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carecost/predictor/internal/ml"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

// ModelStore persists trained model artifacts to a single on-disk file.
// Writes go through a temp file and an atomic rename so a concurrent
// first-time initialization can never leave a torn artifact behind.
type ModelStore struct {
	path string
}

// NewModelStore creates a model store for the given artifact path.
func NewModelStore(path string) *ModelStore {
	return &ModelStore{path: path}
}

// Path returns the artifact location.
func (s *ModelStore) Path() string {
	return s.path
}

// Exists reports whether an artifact is present on disk.
func (s *ModelStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes the artifact atomically.
func (s *ModelStore) Save(artifact *ml.Artifact) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewInternalError("creating artifact directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperrors.NewInternalError("creating temp artifact file", err)
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(artifact); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewInternalError("encoding model artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("closing temp artifact file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("renaming artifact into place", err)
	}

	return nil
}

// Load reads the artifact. A missing file is reported as a typed not-found
// error so callers can recover by training.
func (s *ModelStore) Load() (*ml.Artifact, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("model artifact not found at %s", s.path))
		}
		return nil, apperrors.NewInternalError("opening model artifact", err)
	}
	defer f.Close()

	var artifact ml.Artifact
	if err := gob.NewDecoder(f).Decode(&artifact); err != nil {
		return nil, apperrors.NewInternalError("decoding model artifact", err)
	}

	return &artifact, nil
}

// Delete removes the artifact, forcing a retrain on next load-or-create.
func (s *ModelStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.NewInternalError("removing model artifact", err)
	}
	return nil
}
