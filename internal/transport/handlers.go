package transport

import (
	"github.com/ds124wfegd/insight-analyzer/internal/service"
)

type DatasetHandler struct {
	service service.DatasetService
}

func NewDatasetHandler(service service.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: service}
}

type GalleryHandler struct {
	service        service.GalleryService
	maxUploadBytes int64
}

func NewGalleryHandler(service service.GalleryService, maxUploadMB int64) *GalleryHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &GalleryHandler{service: service, maxUploadBytes: maxUploadMB << 20}
}
