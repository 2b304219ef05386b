package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	measurementsPath      = "/measurement/measurements"
	measurementPath       = "/measurement/measurements/{id}"
	measurementSeriesPath = "/measurement/measurements/series"
)

// MeasurementsClient implements c8y.MeasurementsClient.
type MeasurementsClient struct {
	httpClient *internalhttp.Client
}

// NewMeasurementsClient creates a new measurements client.
func NewMeasurementsClient(httpClient *internalhttp.Client) *MeasurementsClient {
	return &MeasurementsClient{
		httpClient: httpClient,
	}
}

// List implements c8y.MeasurementsClient.List.
func (c *MeasurementsClient) List(ctx context.Context, params *c8y.MeasurementListParams) (*c8y.MeasurementCollection, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = withPaging([]internalhttp.QueryParam{
			internalhttp.QueryString("source", params.Source),
			internalhttp.QueryString("type", params.Type),
			internalhttp.QueryString("valueFragmentType", params.ValueFragmentType),
			internalhttp.QueryString("valueFragmentSeries", params.ValueFragmentSeries),
			internalhttp.QueryTime("dateFrom", params.DateFrom),
			internalhttp.QueryTime("dateTo", params.DateTo),
			internalhttp.QueryBool("revert", params.Revert),
		}, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.MeasurementCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   measurementsPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeMeasurementCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing measurements: %w", err)
	}

	return collection, nil
}

// Get implements c8y.MeasurementsClient.Get.
func (c *MeasurementsClient) Get(ctx context.Context, id string) (*c8y.Measurement, error) {
	measurement, err := internalhttp.DoJSON[c8y.Measurement](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       measurementPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeMeasurement),
	})
	if err != nil {
		return nil, fmt.Errorf("getting measurement: %w", err)
	}

	return measurement, nil
}

// Create implements c8y.MeasurementsClient.Create.
func (c *MeasurementsClient) Create(ctx context.Context, request *c8y.MeasurementCreate, opts ...c8y.CallOption) (*c8y.Measurement, error) {
	body, err := internalhttp.JSONBody("measurement create", request)
	if err != nil {
		return nil, err
	}

	measurement, err := internalhttp.DoJSON[c8y.Measurement](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        measurementsPath,
		Accept:      c8y.Accept(c8y.MediaTypeMeasurement),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeMeasurement,
	})
	if err != nil {
		return nil, fmt.Errorf("creating measurement: %w", err)
	}

	return measurement, nil
}

// CreateMany implements c8y.MeasurementsClient.CreateMany.
func (c *MeasurementsClient) CreateMany(ctx context.Context, requests []c8y.MeasurementCreate, opts ...c8y.CallOption) (*c8y.MeasurementCollection, error) {
	body, err := internalhttp.JSONBody("measurement collection create", c8y.MeasurementCollectionCreate{
		Measurements: requests,
	})
	if err != nil {
		return nil, err
	}

	collection, err := internalhttp.DoJSON[c8y.MeasurementCollection](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        measurementsPath,
		Accept:      c8y.Accept(c8y.MediaTypeMeasurementCollection),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeMeasurementCollection,
	})
	if err != nil {
		return nil, fmt.Errorf("creating measurements: %w", err)
	}

	return collection, nil
}

// Delete implements c8y.MeasurementsClient.Delete.
func (c *MeasurementsClient) Delete(ctx context.Context, id string, opts ...c8y.CallOption) error {
	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       measurementPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(),
		Headers:    callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("deleting measurement: %w", err)
	}

	return nil
}

// DeleteCollection implements c8y.MeasurementsClient.DeleteCollection.
func (c *MeasurementsClient) DeleteCollection(ctx context.Context, params *c8y.MeasurementDeleteParams, opts ...c8y.CallOption) error {
	var query []internalhttp.QueryParam
	if params != nil {
		query = []internalhttp.QueryParam{
			internalhttp.QueryString("source", params.Source),
			internalhttp.QueryString("type", params.Type),
			internalhttp.QueryString("fragmentType", params.FragmentType),
			internalhttp.QueryTime("dateFrom", params.DateFrom),
			internalhttp.QueryTime("dateTo", params.DateTo),
		}
	}

	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:  http.MethodDelete,
		Path:    measurementsPath,
		Query:   query,
		Accept:  c8y.Accept(),
		Headers: callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("deleting measurements: %w", err)
	}

	return nil
}

// Series implements c8y.MeasurementsClient.Series.
func (c *MeasurementsClient) Series(ctx context.Context, params *c8y.MeasurementSeriesParams) (*c8y.MeasurementSeries, error) {
	if params == nil || params.Source == "" {
		return nil, fmt.Errorf("%w: series requires a source", c8y.ErrInvalidRequest)
	}

	series, err := internalhttp.DoJSON[c8y.MeasurementSeries](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   measurementSeriesPath,
		Query: []internalhttp.QueryParam{
			internalhttp.QueryRequired("source", params.Source),
			internalhttp.QueryTime("dateFrom", nonZero(params.DateFrom)),
			internalhttp.QueryTime("dateTo", nonZero(params.DateTo)),
			internalhttp.QueryMulti("series", params.Series),
			internalhttp.QueryValue("aggregationType", params.AggregationType),
			internalhttp.QueryBool("revert", params.Revert),
		},
		Accept: c8y.Accept(c8y.MediaTypeMeasurementSeries),
	})
	if err != nil {
		return nil, fmt.Errorf("getting measurement series: %w", err)
	}

	return series, nil
}
