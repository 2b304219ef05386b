package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

func TestMeasurementsClient_CreateWithProcessingMode(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPost, "/measurement/measurements", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		doc["id"] = "m1"
		writeJSON(w, http.StatusCreated, doc)
	})

	client := tenant.client(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	create := &c8y.MeasurementCreate{Type: "c8y_Temperature", Time: at, Source: c8y.Source("42")}
	require.NoError(t, create.AddValue("c8y_Temperature", "T", 21.5, "C"))

	measurement, err := client.Measurements().Create(context.Background(), create, c8y.WithProcessingMode(c8y.ProcessingModeTransient))
	require.NoError(t, err)
	assert.Equal(t, "m1", measurement.ID)

	value, err := measurement.Value("c8y_Temperature", "T")
	require.NoError(t, err)
	assert.InDelta(t, 21.5, value.Value, 0.0001)
	assert.Equal(t, "C", value.Unit)

	req := tenant.lastRequest(t)
	assert.Equal(t, "TRANSIENT", req.Header.Get(constants.HeaderProcessingMode))
	assert.Equal(t, c8y.MediaTypeMeasurement, req.Header.Get(constants.HeaderContentType))
}

func TestMeasurementsClient_CreateMany(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPost, "/measurement/measurements", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		writeJSON(w, http.StatusCreated, doc)
	})

	client := tenant.client(t)

	first := c8y.MeasurementCreate{Type: "c8y_Temperature", Time: time.Now(), Source: c8y.Source("42")}
	require.NoError(t, first.AddValue("c8y_Temperature", "T", 20, "C"))

	second := c8y.MeasurementCreate{Type: "c8y_Temperature", Time: time.Now(), Source: c8y.Source("42")}
	require.NoError(t, second.AddValue("c8y_Temperature", "T", 22, "C"))

	collection, err := client.Measurements().CreateMany(context.Background(), []c8y.MeasurementCreate{first, second})
	require.NoError(t, err)
	require.Len(t, collection.Measurements, 2)

	req := tenant.lastRequest(t)
	assert.Equal(t, c8y.MediaTypeMeasurementCollection, req.Header.Get(constants.HeaderContentType))
	assert.Equal(t, c8y.Accept(c8y.MediaTypeMeasurementCollection), req.Header.Get(constants.HeaderAccept))
}

func TestMeasurementsClient_Series(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodGet, "/measurement/measurements/series", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"series": []map[string]interface{}{
				{"name": "T", "type": "c8y_Temperature", "unit": "C"},
			},
			"values": map[string]interface{}{
				"2024-05-01T12:00:00.000Z": []map[string]interface{}{{"min": 20.1, "max": 22.4}},
			},
			"truncated": false,
		})
	})

	client := tenant.client(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	daily := c8y.AggregationDaily

	series, err := client.Measurements().Series(context.Background(), &c8y.MeasurementSeriesParams{
		Source:          "42",
		DateFrom:        from,
		DateTo:          from.Add(24 * time.Hour),
		Series:          []string{"c8y_Temperature.T", "c8y_Pressure.P"},
		AggregationType: &daily,
	})
	require.NoError(t, err)
	require.Len(t, series.Series, 1)
	require.Len(t, series.Values["2024-05-01T12:00:00.000Z"], 1)
	assert.InDelta(t, 22.4, series.Values["2024-05-01T12:00:00.000Z"][0].Max, 0.0001)

	req := tenant.lastRequest(t)
	assert.Equal(t,
		"source=42&dateFrom=2024-05-01T00%3A00%3A00.000Z&dateTo=2024-05-02T00%3A00%3A00.000Z"+
			"&series=c8y_Temperature.T&series=c8y_Pressure.P&aggregationType=DAILY",
		req.RawQuery)
}

func TestMeasurementsClient_SeriesRequiresSource(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	client := tenant.client(t)

	_, err := client.Measurements().Series(context.Background(), &c8y.MeasurementSeriesParams{})
	require.ErrorIs(t, err, c8y.ErrInvalidRequest)
	assert.Equal(t, 0, tenant.requestCount())
}

func TestMeasurementsClient_DeleteCollection(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodDelete, "/measurement/measurements", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := tenant.client(t)

	err := client.Measurements().DeleteCollection(context.Background(), &c8y.MeasurementDeleteParams{
		Source: c8y.String("42"),
		Type:   c8y.String("c8y_Temperature"),
	})
	require.NoError(t, err)
	assert.Equal(t, "source=42&type=c8y_Temperature", tenant.lastRequest(t).RawQuery)
}
