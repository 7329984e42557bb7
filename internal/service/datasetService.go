package service

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/charts"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/dataset"
)

func (s *datasetService) Options() (entity.FilterOptions, error) {
	frame, err := s.repo.Frame()
	if err != nil {
		return entity.FilterOptions{}, err
	}
	return dataset.Options(frame, s.settings.DefaultAgeMin, s.settings.DefaultAgeMax), nil
}

// filter recomputes the filtered view from the loaded dataset for one interaction.
func (s *datasetService) filter(p entity.FilterParams) (*entity.Frame, *entity.Frame, entity.FilterParams, error) {
	frame, err := s.repo.Frame()
	if err != nil {
		return nil, nil, p, err
	}
	p = dataset.Normalize(p, dataset.Bounds(frame))
	return frame, dataset.Apply(frame, p), p, nil
}

func (s *datasetService) Rows(ctx context.Context, p entity.FilterParams, preview bool) (*entity.RowsResponse, error) {
	_, filtered, p, err := s.filter(p)
	if err != nil {
		return nil, err
	}

	limit := 0
	if preview {
		limit = s.settings.PreviewRows
	}

	s.publisher.publish(ctx, filterEvent(entity.EventDatasetFiltered, p, filtered.Len()))

	return &entity.RowsResponse{
		Filter:  p,
		Total:   filtered.Len(),
		Header:  filtered.Header,
		Rows:    dataset.Records(filtered, limit),
		Preview: preview,
	}, nil
}

func (s *datasetService) Charts(ctx context.Context, p entity.FilterParams) (*entity.ChartsResponse, error) {
	_, filtered, p, err := s.filter(p)
	if err != nil {
		return nil, err
	}

	s.publisher.publish(ctx, filterEvent(entity.EventDatasetFiltered, p, filtered.Len()))

	return &entity.ChartsResponse{
		Filter: p,
		Rows:   filtered.Len(),
		Charts: charts.BuildAll(filtered),
	}, nil
}

func (s *datasetService) ChartPNG(ctx context.Context, name string, p entity.FilterParams) ([]byte, error) {
	_, filtered, p, err := s.filter(p)
	if err != nil {
		return nil, err
	}

	c, err := charts.Build(name, filtered)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderPNG(c)
	if err != nil {
		return nil, err
	}

	event := filterEvent(entity.EventChartRendered, p, filtered.Len())
	event.Params["chart"] = name
	s.publisher.publish(ctx, event)
	return data, nil
}

func (s *datasetService) Export(ctx context.Context, p entity.FilterParams, w io.Writer) error {
	_, filtered, p, err := s.filter(p)
	if err != nil {
		return err
	}

	if err := dataset.WriteCSV(w, filtered); err != nil {
		return err
	}

	s.publisher.publish(ctx, filterEvent(entity.EventDatasetExported, p, filtered.Len()))
	return nil
}

func (s *datasetService) Summary(ctx context.Context, p entity.FilterParams) (*entity.Summary, error) {
	frame, filtered, p, err := s.filter(p)
	if err != nil {
		return nil, err
	}

	summary := &entity.Summary{
		Filter:       p,
		TotalRows:    frame.Len(),
		FilteredRows: filtered.Len(),
	}
	if filtered.Len() == 0 {
		return summary, nil
	}

	var survived int
	var ageSum, fareSum float64
	for _, row := range filtered.Rows {
		survived += row.Survived
		ageSum += row.Age
		fareSum += row.Fare
	}
	n := float64(filtered.Len())
	summary.SurvivalRate = float64(survived) / n
	summary.MeanAge = ageSum / n
	summary.MeanFare = fareSum / n

	summary.BySex = breakdown(filtered, func(row entity.Passenger) string { return row.Sex })
	summary.ByClass = breakdown(filtered, func(row entity.Passenger) string { return strconv.Itoa(row.Pclass) })
	sort.Slice(summary.ByClass, func(i, j int) bool { return summary.ByClass[i].Group < summary.ByClass[j].Group })

	return summary, nil
}

func breakdown(frame *entity.Frame, key func(entity.Passenger) string) []entity.RateBreakdown {
	var out []entity.RateBreakdown
	index := make(map[string]int)
	for _, row := range frame.Rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, entity.RateBreakdown{Group: k})
		}
		out[i].Count++
		out[i].Survived += row.Survived
	}
	for i := range out {
		out[i].Rate = float64(out[i].Survived) / float64(out[i].Count)
	}
	return out
}

func filterEvent(kind string, p entity.FilterParams, rows int) entity.InsightEvent {
	return entity.InsightEvent{
		Kind: kind,
		Params: map[string]string{
			"sex":     p.Sex,
			"age_min": strconv.FormatFloat(p.AgeMin, 'f', -1, 64),
			"age_max": strconv.FormatFloat(p.AgeMax, 'f', -1, 64),
		},
		Rows: rows,
	}
}
