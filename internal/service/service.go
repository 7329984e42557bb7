package service

import (
	"context"
	"io"

	"github.com/ds124wfegd/insight-analyzer/internal/database"
	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/processor"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/render"
)

type DatasetService interface {
	Options() (entity.FilterOptions, error)
	Rows(ctx context.Context, p entity.FilterParams, preview bool) (*entity.RowsResponse, error)
	Charts(ctx context.Context, p entity.FilterParams) (*entity.ChartsResponse, error)
	ChartPNG(ctx context.Context, name string, p entity.FilterParams) ([]byte, error)
	Export(ctx context.Context, p entity.FilterParams, w io.Writer) error
	Summary(ctx context.Context, p entity.FilterParams) (*entity.Summary, error)
}

type GalleryService interface {
	DefaultGallery(ctx context.Context) (*entity.GalleryResponse, error)
	UploadGallery(ctx context.Context, r io.Reader) (*entity.GalleryResponse, error)
	DefaultVariant(ctx context.Context, name string) ([]byte, error)
	UploadVariant(ctx context.Context, r io.Reader, name string) ([]byte, error)
}

type DatasetSettings struct {
	DefaultAgeMin float64
	DefaultAgeMax float64
	PreviewRows   int
}

type datasetService struct {
	repo      database.PassengerRepository
	renderer  render.Renderer
	publisher *EventPublisher
	settings  DatasetSettings
}

type galleryService struct {
	assets    database.AssetRepository
	processor processor.ImageProcessor
	publisher *EventPublisher
}

func NewDatasetService(repo database.PassengerRepository, renderer render.Renderer, publisher *EventPublisher, settings DatasetSettings) DatasetService {
	if settings.PreviewRows <= 0 {
		settings.PreviewRows = 5
	}
	return &datasetService{
		repo:      repo,
		renderer:  renderer,
		publisher: publisher,
		settings:  settings,
	}
}

func NewGalleryService(assets database.AssetRepository, processor processor.ImageProcessor, publisher *EventPublisher) GalleryService {
	return &galleryService{
		assets:    assets,
		processor: processor,
		publisher: publisher,
	}
}
