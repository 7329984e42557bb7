package entity

type ChartKind string

const (
	ChartBar        ChartKind = "bar"
	ChartGroupedBar ChartKind = "grouped_bar"
	ChartHistogram  ChartKind = "histogram"
	ChartHeatmap    ChartKind = "heatmap"
)

// Chart names, in display order.
const (
	ChartSurvivalCount    = "survival_count"
	ChartAgeDistribution  = "age_distribution"
	ChartClassSurvival    = "class_survival"
	ChartSexSurvival      = "sex_survival"
	ChartFareDistribution = "fare_distribution"
	ChartEmbarkation      = "embarkation"
	ChartCorrelation      = "correlation"
)

var ChartNames = []string{
	ChartSurvivalCount,
	ChartAgeDistribution,
	ChartClassSurvival,
	ChartSexSurvival,
	ChartFareDistribution,
	ChartEmbarkation,
	ChartCorrelation,
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type ChartSeries struct {
	Name  string       `json:"name"`
	Color string       `json:"color,omitempty"`
	Data  []ChartPoint `json:"data"`
}

type HistogramBin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Matrix is a square correlation matrix; nil cells are undefined.
type Matrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// Chart is a render-independent descriptor of one plot.
type Chart struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Kind        ChartKind      `json:"kind"`
	XLabel      string         `json:"x_label,omitempty"`
	YLabel      string         `json:"y_label,omitempty"`
	Series      []ChartSeries  `json:"series,omitempty"`
	Bins        []HistogramBin `json:"bins,omitempty"`
	Density     []CurvePoint   `json:"density,omitempty"`
	Matrix      *Matrix        `json:"matrix,omitempty"`
	Empty       bool           `json:"empty"`
	Placeholder string         `json:"placeholder,omitempty"`
}

type ChartsResponse struct {
	Filter FilterParams `json:"filter"`
	Rows   int          `json:"rows"`
	Charts []Chart      `json:"charts"`
}
