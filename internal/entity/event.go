package entity

import "time"

const (
	EventDatasetFiltered = "dataset.filtered"
	EventDatasetExported = "dataset.exported"
	EventChartRendered   = "dataset.chart_rendered"
	EventGalleryRendered = "gallery.rendered"
	EventVariantRendered = "gallery.variant_rendered"
)

// InsightEvent records one completed interaction.
type InsightEvent struct {
	ID     string            `json:"id"`
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
	Rows   int               `json:"rows,omitempty"`
	Width  int               `json:"width,omitempty"`
	Height int               `json:"height,omitempty"`
	Time   time.Time         `json:"time"`
}
