package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecost/predictor/internal/ml"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

func TestDatasetStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	store := NewDatasetStore(path)

	records := ml.NewGenerator(42).Generate(50)
	require.NoError(t, store.Save(records))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestDatasetStore_LoadMissingIsNotFound(t *testing.T) {
	store := NewDatasetStore(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestDatasetStore_RejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("age,sex,bmi\n30,male,25\n"), 0o644))

	_, err := NewDatasetStore(path).Load()
	assert.Error(t, err)
}

func TestDatasetStore_RejectsMalformedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "age,sex,bmi,children,smoker,region,charges\nnot-a-number,male,25,0,no,northeast,1000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewDatasetStore(path).Load()
	assert.Error(t, err)
}
