package database

import (
	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/storage"
)

// PassengerRepository holds the dataset loaded at start-up.
type PassengerRepository interface {
	Load(path string) error
	Frame() (*entity.Frame, error)
}

// AssetRepository holds the bundled default image.
type AssetRepository interface {
	Load(path string) error
	DefaultImage() ([]byte, error)
}

type filePassengerRepository struct {
	storage storage.FileStorage
	frame   *entity.Frame
	loadErr error
}

type fileAssetRepository struct {
	storage storage.FileStorage
	data    []byte
	loadErr error
}
