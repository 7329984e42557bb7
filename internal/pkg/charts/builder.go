// Package charts turns a filtered passenger frame into render-independent
// chart descriptors.
package charts

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/dataset"
)

const (
	AgeBins     = 30
	FareBins    = 20
	KDEGridSize = 200

	placeholderEmpty    = "No passengers match the current filters"
	placeholderTooSmall = "At least two passengers are needed for correlations"
)

var survivalLabels = []string{"Died", "Survived"}

// Palette for series, first entry is used for single-series charts.
var Palette = []string{"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3", "#937860"}

// BuildAll returns the seven dashboard charts in display order.
func BuildAll(frame *entity.Frame) []entity.Chart {
	return []entity.Chart{
		SurvivalCount(frame),
		AgeDistribution(frame),
		ClassSurvival(frame),
		SexSurvival(frame),
		FareDistribution(frame),
		Embarkation(frame),
		Correlation(frame),
	}
}

// Build returns one chart by name.
func Build(name string, frame *entity.Frame) (entity.Chart, error) {
	switch name {
	case entity.ChartSurvivalCount:
		return SurvivalCount(frame), nil
	case entity.ChartAgeDistribution:
		return AgeDistribution(frame), nil
	case entity.ChartClassSurvival:
		return ClassSurvival(frame), nil
	case entity.ChartSexSurvival:
		return SexSurvival(frame), nil
	case entity.ChartFareDistribution:
		return FareDistribution(frame), nil
	case entity.ChartEmbarkation:
		return Embarkation(frame), nil
	case entity.ChartCorrelation:
		return Correlation(frame), nil
	default:
		return entity.Chart{}, fmt.Errorf("%w: %s", entity.ErrUnknownChart, name)
	}
}

func newChart(name, title string, kind entity.ChartKind, frame *entity.Frame) entity.Chart {
	c := entity.Chart{Name: name, Title: title, Kind: kind, Empty: frame.Len() == 0}
	if c.Empty {
		c.Placeholder = placeholderEmpty
	}
	return c
}

func SurvivalCount(frame *entity.Frame) entity.Chart {
	c := newChart(entity.ChartSurvivalCount, "Survival Count", entity.ChartBar, frame)
	c.XLabel, c.YLabel = "Survived", "count"

	counts := make([]int, len(survivalLabels))
	for _, row := range frame.Rows {
		if row.Survived >= 0 && row.Survived < len(counts) {
			counts[row.Survived]++
		}
	}

	series := entity.ChartSeries{Name: "count", Color: Palette[0]}
	for i, label := range survivalLabels {
		series.Data = append(series.Data, entity.ChartPoint{Label: label, Value: float64(counts[i])})
	}
	c.Series = []entity.ChartSeries{series}
	return c
}

func AgeDistribution(frame *entity.Frame) entity.Chart {
	c := newChart(entity.ChartAgeDistribution, "Age Distribution", entity.ChartHistogram, frame)
	c.XLabel, c.YLabel = entity.ColumnAge, "Count"

	ages := column(frame, func(p entity.Passenger) float64 { return p.Age })
	c.Bins = histogram(ages, AgeBins)
	if len(c.Bins) > 0 {
		c.Density = kde(ages, KDEGridSize, c.Bins[0].Hi-c.Bins[0].Lo)
	}
	return c
}

func FareDistribution(frame *entity.Frame) entity.Chart {
	c := newChart(entity.ChartFareDistribution, "Fare Distribution", entity.ChartHistogram, frame)
	c.XLabel, c.YLabel = entity.ColumnFare, "Count"
	c.Bins = histogram(column(frame, func(p entity.Passenger) float64 { return p.Fare }), FareBins)
	return c
}

func ClassSurvival(frame *entity.Frame) entity.Chart {
	c := newChart(entity.ChartClassSurvival, "Class-wise Survival", entity.ChartGroupedBar, frame)
	c.XLabel, c.YLabel = entity.ColumnPclass, "count"

	var classes []int
	seen := make(map[int]bool)
	for _, row := range frame.Rows {
		if !seen[row.Pclass] {
			seen[row.Pclass] = true
			classes = append(classes, row.Pclass)
		}
	}
	sort.Ints(classes)

	groups := make([]string, len(classes))
	for i, cls := range classes {
		groups[i] = strconv.Itoa(cls)
	}
	c.Series = survivalSeries(frame, groups, func(p entity.Passenger) string { return strconv.Itoa(p.Pclass) })
	return c
}

func SexSurvival(frame *entity.Frame) entity.Chart {
	c := newChart(entity.ChartSexSurvival, "Sex vs Survival", entity.ChartGroupedBar, frame)
	c.XLabel, c.YLabel = entity.ColumnSex, "count"

	var groups []string
	seen := make(map[string]bool)
	for _, row := range frame.Rows {
		if !seen[row.Sex] {
			seen[row.Sex] = true
			groups = append(groups, row.Sex)
		}
	}
	c.Series = survivalSeries(frame, groups, func(p entity.Passenger) string { return p.Sex })
	return c
}

// survivalSeries counts rows per group split by the Survived hue.
func survivalSeries(frame *entity.Frame, groups []string, key func(entity.Passenger) string) []entity.ChartSeries {
	counts := make([]map[string]int, len(survivalLabels))
	for i := range counts {
		counts[i] = make(map[string]int)
	}
	for _, row := range frame.Rows {
		if row.Survived >= 0 && row.Survived < len(counts) {
			counts[row.Survived][key(row)]++
		}
	}

	series := make([]entity.ChartSeries, len(survivalLabels))
	for i, label := range survivalLabels {
		series[i] = entity.ChartSeries{Name: label, Color: Palette[i%len(Palette)]}
		for _, g := range groups {
			series[i].Data = append(series[i].Data, entity.ChartPoint{Label: g, Value: float64(counts[i][g])})
		}
	}
	return series
}

func Embarkation(frame *entity.Frame) entity.Chart {
	c := newChart(entity.ChartEmbarkation, "Embarkation Distribution", entity.ChartBar, frame)
	c.XLabel, c.YLabel = entity.ColumnEmbarked, "count"

	var order []string
	counts := make(map[string]int)
	for _, row := range frame.Rows {
		if dataset.IsMissing(row.Embarked) {
			continue
		}
		if _, ok := counts[row.Embarked]; !ok {
			order = append(order, row.Embarked)
		}
		counts[row.Embarked]++
	}

	series := entity.ChartSeries{Name: "count", Color: Palette[0]}
	for _, port := range order {
		series.Data = append(series.Data, entity.ChartPoint{Label: port, Value: float64(counts[port])})
	}
	c.Series = []entity.ChartSeries{series}
	return c
}

// Correlation computes pairwise-complete Pearson coefficients over the numeric columns.
func Correlation(frame *entity.Frame) entity.Chart {
	c := newChart(entity.ChartCorrelation, "Correlation Heatmap", entity.ChartHeatmap, frame)
	if !c.Empty && frame.Len() < 2 {
		c.Placeholder = placeholderTooSmall
	}

	index := make(map[string]int, len(frame.Header))
	for i, h := range frame.Header {
		index[h] = i
	}

	cols := make([][]float64, len(frame.Numeric))
	for j, name := range frame.Numeric {
		cols[j] = make([]float64, frame.Len())
		for i, row := range frame.Rows {
			v, ok := dataset.ParseNumber(row.Values[index[name]])
			if !ok {
				v = math.NaN()
			}
			cols[j][i] = v
		}
	}

	m := &entity.Matrix{Columns: append([]string(nil), frame.Numeric...)}
	m.Values = make([][]*float64, len(cols))
	for a := range cols {
		m.Values[a] = make([]*float64, len(cols))
		for b := range cols {
			x, y := complete(cols[a], cols[b])
			if r, ok := pearson(x, y); ok {
				m.Values[a][b] = &r
			}
		}
	}
	c.Matrix = m
	return c
}

// complete keeps the positions where both series are defined.
func complete(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

func column(frame *entity.Frame, get func(entity.Passenger) float64) []float64 {
	out := make([]float64, 0, frame.Len())
	for _, row := range frame.Rows {
		out = append(out, get(row))
	}
	return out
}
