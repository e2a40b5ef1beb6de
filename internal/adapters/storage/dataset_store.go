package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

// datasetHeader is the canonical column order for dataset files.
var datasetHeader = []string{"age", "sex", "bmi", "children", "smoker", "region", "charges"}

// DatasetStore persists generated datasets as CSV. Files written by Save
// round-trip exactly through Load.
type DatasetStore struct {
	path string
}

// NewDatasetStore creates a dataset store for the given CSV path.
func NewDatasetStore(path string) *DatasetStore {
	return &DatasetStore{path: path}
}

// Path returns the dataset location.
func (s *DatasetStore) Path() string {
	return s.path
}

// Exists reports whether a dataset file is present.
func (s *DatasetStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes records atomically as CSV with the canonical header.
func (s *DatasetStore) Save(records []entities.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewInternalError("creating dataset directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperrors.NewInternalError("creating temp dataset file", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(datasetHeader); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewInternalError("writing dataset header", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Age),
			rec.Sex,
			strconv.FormatFloat(rec.BMI, 'f', -1, 64),
			strconv.Itoa(rec.Children),
			rec.Smoker,
			rec.Region,
			strconv.FormatFloat(rec.Charges, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return apperrors.NewInternalError("writing dataset row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewInternalError("flushing dataset file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("closing temp dataset file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("renaming dataset into place", err)
	}

	return nil
}

// Load reads the full dataset back.
func (s *DatasetStore) Load() ([]entities.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("dataset not found at %s", s.path))
		}
		return nil, apperrors.NewInternalError("opening dataset", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.NewInternalError("reading dataset", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewInternalError("reading dataset", fmt.Errorf("file %s is empty", s.path))
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]entities.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, apperrors.NewInternalError(fmt.Sprintf("parsing dataset row %d", i+2), err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func checkHeader(header []string) error {
	if len(header) != len(datasetHeader) {
		return apperrors.NewInternalError("reading dataset", fmt.Errorf("expected %d columns, got %d", len(datasetHeader), len(header)))
	}
	for i, col := range datasetHeader {
		if header[i] != col {
			return apperrors.NewInternalError("reading dataset", fmt.Errorf("expected column %q at position %d, got %q", col, i, header[i]))
		}
	}
	return nil
}

func parseRow(row []string) (entities.Record, error) {
	var rec entities.Record
	if len(row) != len(datasetHeader) {
		return rec, fmt.Errorf("expected %d fields, got %d", len(datasetHeader), len(row))
	}

	age, err := strconv.Atoi(row[0])
	if err != nil {
		return rec, fmt.Errorf("invalid age %q: %w", row[0], err)
	}
	bmi, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return rec, fmt.Errorf("invalid bmi %q: %w", row[2], err)
	}
	children, err := strconv.Atoi(row[3])
	if err != nil {
		return rec, fmt.Errorf("invalid children %q: %w", row[3], err)
	}
	charges, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return rec, fmt.Errorf("invalid charges %q: %w", row[6], err)
	}

	rec = entities.Record{
		Age:      age,
		Sex:      row[1],
		BMI:      bmi,
		Children: children,
		Smoker:   row[4],
		Region:   row[5],
		Charges:  charges,
	}
	return rec, nil
}
