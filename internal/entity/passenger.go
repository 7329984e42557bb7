package entity

// Columns every passenger dataset must carry.
const (
	ColumnSex      = "Sex"
	ColumnAge      = "Age"
	ColumnPclass   = "Pclass"
	ColumnSurvived = "Survived"
	ColumnFare     = "Fare"
	ColumnEmbarked = "Embarked"
)

// SexAll disables the categorical filter.
const SexAll = "All"

var RequiredColumns = []string{ColumnSex, ColumnAge, ColumnPclass, ColumnSurvived, ColumnFare, ColumnEmbarked}

// Passenger is one dataset row. Values holds the raw cells in source column order
// so that an export reproduces the source row byte for byte.
type Passenger struct {
	Sex      string   `json:"sex"`
	Age      float64  `json:"age"`
	Pclass   int      `json:"pclass"`
	Survived int      `json:"survived"`
	Fare     float64  `json:"fare"`
	Embarked string   `json:"embarked"`
	Values   []string `json:"-"`
}

// Frame is an ordered, read-only set of passengers sharing one header.
type Frame struct {
	Header []string
	// Numeric lists the header columns whose every non-empty cell parses as a number.
	Numeric []string
	Rows    []Passenger
}

func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// FilterParams are the two user-controlled predicates of one interaction.
type FilterParams struct {
	Sex    string  `json:"sex"`
	AgeMin float64 `json:"age_min"`
	AgeMax float64 `json:"age_max"`
}

type AgeBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FilterOptions struct {
	Sexes         []string  `json:"sexes"`
	AgeBounds     AgeBounds `json:"age_bounds"`
	DefaultAgeMin float64   `json:"default_age_min"`
	DefaultAgeMax float64   `json:"default_age_max"`
	TotalRows     int       `json:"total_rows"`
}

type RowsResponse struct {
	Filter  FilterParams        `json:"filter"`
	Total   int                 `json:"total"`
	Header  []string            `json:"header"`
	Rows    []map[string]string `json:"rows"`
	Preview bool                `json:"preview"`
}

type RateBreakdown struct {
	Group    string  `json:"group"`
	Count    int     `json:"count"`
	Survived int     `json:"survived"`
	Rate     float64 `json:"rate"`
}

// Summary backs the report section of the data panel.
type Summary struct {
	Filter       FilterParams    `json:"filter"`
	TotalRows    int             `json:"total_rows"`
	FilteredRows int             `json:"filtered_rows"`
	SurvivalRate float64         `json:"survival_rate"`
	BySex        []RateBreakdown `json:"by_sex"`
	ByClass      []RateBreakdown `json:"by_class"`
	MeanAge      float64         `json:"mean_age"`
	MeanFare     float64         `json:"mean_fare"`
}
