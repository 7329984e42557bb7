package database

import (
	"fmt"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/dataset"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

func NewPassengerRepository(storage storage.FileStorage) PassengerRepository {
	return &filePassengerRepository{storage: storage, loadErr: entity.ErrDatasetUnavailable}
}

// Load reads the dataset once. On failure the repository stays unavailable
// and Frame keeps returning the load error.
func (r *filePassengerRepository) Load(path string) error {
	reader, err := r.storage.Open(path)
	if err != nil {
		r.loadErr = fmt.Errorf("%w: %v", entity.ErrDatasetUnavailable, err)
		return r.loadErr
	}
	defer reader.Close()

	frame, skipped, err := dataset.ParseCSV(reader)
	if err != nil {
		r.loadErr = fmt.Errorf("%w: %w", entity.ErrDatasetUnavailable, err)
		return r.loadErr
	}

	if skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"path":    path,
			"skipped": skipped,
		}).Warn("Rows without numeric Age, Fare, Pclass or Survived were left out")
	}
	logrus.WithFields(logrus.Fields{
		"path":    path,
		"rows":    frame.Len(),
		"columns": len(frame.Header),
	}).Info("Dataset loaded")

	r.frame, r.loadErr = frame, nil
	return nil
}

func (r *filePassengerRepository) Frame() (*entity.Frame, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.frame, nil
}
