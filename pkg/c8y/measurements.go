package c8y

import (
	"context"
	"time"
)

// Measurement represents a device measurement. Values are carried as
// fragments of the form {"c8y_Temperature": {"T": {"value": 21.5, "unit": "C"}}}.
type Measurement struct {
	ID        string     `json:"id,omitempty"   yaml:"id,omitempty"`
	Self      string     `json:"self,omitempty" yaml:"self,omitempty"`
	Type      string     `json:"type,omitempty" yaml:"type,omitempty"`
	Time      *time.Time `json:"time,omitempty" yaml:"time,omitempty"`
	Source    ObjectRef  `json:"source"         yaml:"source"`
	Fragments Fragments  `json:"-"              yaml:"-"`
}

var measurementKeys = jsonKeys(Measurement{})

// MarshalJSON encodes the measurement with its fragments inlined.
func (m Measurement) MarshalJSON() ([]byte, error) {
	type alias Measurement

	return marshalWithFragments(alias(m), m.Fragments, measurementKeys)
}

// UnmarshalJSON decodes the measurement, collecting value fragments into
// Fragments.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	type alias Measurement

	fragments, err := unmarshalWithFragments(data, (*alias)(m), measurementKeys)
	if err != nil {
		return err
	}

	m.Fragments = fragments

	return nil
}

// Value returns the value of one series of the measurement.
func (m *Measurement) Value(fragment, series string) (*MeasurementValue, error) {
	return seriesValue(m.Fragments, fragment, series)
}

// MeasurementValue is a single series value.
type MeasurementValue struct {
	Value float64 `json:"value"          yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// MeasurementCreate is the writable subset of a measurement.
type MeasurementCreate struct {
	Type      string    `json:"type"   yaml:"type"`
	Time      time.Time `json:"time"   yaml:"time"`
	Source    ObjectRef `json:"source" yaml:"source"`
	Fragments Fragments `json:"-"      yaml:"-"`
}

// MarshalJSON encodes the measurement with its fragments inlined.
func (m MeasurementCreate) MarshalJSON() ([]byte, error) {
	type alias MeasurementCreate

	return marshalWithFragments(alias(m), m.Fragments, measurementKeys)
}

// AddValue adds a series value under fragment, keeping the other series of
// the fragment.
func (m *MeasurementCreate) AddValue(fragment, series string, value float64, unit string) error {
	values := map[string]MeasurementValue{}

	if m.Fragments.Has(fragment) {
		err := m.Fragments.Get(fragment, &values)
		if err != nil {
			return err
		}
	}

	values[series] = MeasurementValue{Value: value, Unit: unit}

	return m.Fragments.Set(fragment, values)
}

// MeasurementCollection is a page of measurements.
type MeasurementCollection struct {
	CollectionLinks

	Measurements []Measurement   `json:"measurements"         yaml:"measurements"`
	Statistics   *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// MeasurementCollectionCreate creates several measurements in one request.
type MeasurementCollectionCreate struct {
	Measurements []MeasurementCreate `json:"measurements" yaml:"measurements"`
}

// MeasurementListParams filters GET /measurement/measurements.
type MeasurementListParams struct {
	PageParams

	Source              *string
	Type                *string
	ValueFragmentType   *string
	ValueFragmentSeries *string
	DateFrom            *time.Time
	DateTo              *time.Time
	Revert              *bool
}

// MeasurementDeleteParams selects the measurements removed by
// DeleteCollection.
type MeasurementDeleteParams struct {
	Source       *string
	Type         *string
	FragmentType *string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// AggregationType is the aggregation interval of a series query.
type AggregationType string

// Series aggregation intervals.
const (
	AggregationDaily    AggregationType = "DAILY"
	AggregationHourly   AggregationType = "HOURLY"
	AggregationMinutely AggregationType = "MINUTELY"
)

// MeasurementSeriesParams selects the series returned by
// GET /measurement/measurements/series. Series entries have the form
// "<fragment>.<series>" and are sent as repeated keys.
type MeasurementSeriesParams struct {
	Source          string
	DateFrom        time.Time
	DateTo          time.Time
	Series          []string
	AggregationType *AggregationType
	Revert          *bool
}

// SeriesDefinition describes one series of a series response.
type SeriesDefinition struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Unit string `json:"unit" yaml:"unit"`
}

// SeriesValue is the aggregated value of one series at one timestamp.
type SeriesValue struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// MeasurementSeries holds the values of several series keyed by timestamp.
// Each value slice is positioned like Series; a nil entry means the series
// has no value at that timestamp.
type MeasurementSeries struct {
	Series    []SeriesDefinition        `json:"series"    yaml:"series"`
	Values    map[string][]*SeriesValue `json:"values"    yaml:"values"`
	Truncated bool                      `json:"truncated" yaml:"truncated"`
}

// MeasurementsClient defines operations for measurements.
type MeasurementsClient interface {
	List(ctx context.Context, params *MeasurementListParams) (*MeasurementCollection, error)
	Get(ctx context.Context, id string) (*Measurement, error)
	Create(ctx context.Context, request *MeasurementCreate, opts ...CallOption) (*Measurement, error)
	CreateMany(ctx context.Context, requests []MeasurementCreate, opts ...CallOption) (*MeasurementCollection, error)
	Delete(ctx context.Context, id string, opts ...CallOption) error
	DeleteCollection(ctx context.Context, params *MeasurementDeleteParams, opts ...CallOption) error
	Series(ctx context.Context, params *MeasurementSeriesParams) (*MeasurementSeries, error)
}
