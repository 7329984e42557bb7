package database

import (
	"fmt"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

func NewAssetRepository(storage storage.FileStorage) AssetRepository {
	return &fileAssetRepository{storage: storage, loadErr: entity.ErrDefaultImageUnavailable}
}

// Load keeps the raw bytes; every request decodes its own copy.
func (r *fileAssetRepository) Load(path string) error {
	data, err := r.storage.ReadAll(path)
	if err != nil {
		r.loadErr = fmt.Errorf("%w: %v", entity.ErrDefaultImageUnavailable, err)
		return r.loadErr
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(data),
	}).Info("Default image loaded")

	r.data, r.loadErr = data, nil
	return nil
}

func (r *fileAssetRepository) DefaultImage() ([]byte, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.data, nil
}
