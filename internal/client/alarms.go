package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	alarmsPath     = "/alarm/alarms"
	alarmPath      = "/alarm/alarms/{id}"
	alarmCountPath = "/alarm/alarms/count"
)

// AlarmsClient implements c8y.AlarmsClient.
type AlarmsClient struct {
	httpClient *internalhttp.Client
}

// NewAlarmsClient creates a new alarms client.
func NewAlarmsClient(httpClient *internalhttp.Client) *AlarmsClient {
	return &AlarmsClient{
		httpClient: httpClient,
	}
}

// alarmFilterQuery returns the filter shared by list, count, bulk update and
// bulk delete.
func alarmFilterQuery(f *c8y.AlarmFilter) []internalhttp.QueryParam {
	if f == nil {
		return nil
	}

	return []internalhttp.QueryParam{
		internalhttp.QueryString("source", f.Source),
		internalhttp.QueryCSV("status", f.Status),
		internalhttp.QueryCSV("severity", f.Severity),
		internalhttp.QueryCSV("type", f.Type),
		internalhttp.QueryBool("resolved", f.Resolved),
		internalhttp.QueryTime("dateFrom", f.DateFrom),
		internalhttp.QueryTime("dateTo", f.DateTo),
		internalhttp.QueryTime("createdFrom", f.CreatedFrom),
		internalhttp.QueryTime("createdTo", f.CreatedTo),
		internalhttp.QueryBool("withSourceAssets", f.WithSourceAssets),
		internalhttp.QueryBool("withSourceDevices", f.WithSourceDevices),
	}
}

// List implements c8y.AlarmsClient.List.
func (c *AlarmsClient) List(ctx context.Context, params *c8y.AlarmListParams) (*c8y.AlarmCollection, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = alarmFilterQuery(&params.AlarmFilter)
		query = append(query,
			internalhttp.QueryTime("lastUpdatedFrom", params.LastUpdatedFrom),
			internalhttp.QueryTime("lastUpdatedTo", params.LastUpdatedTo),
		)
		query = withPaging(query, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.AlarmCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   alarmsPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeAlarmCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing alarms: %w", err)
	}

	return collection, nil
}

// Get implements c8y.AlarmsClient.Get.
func (c *AlarmsClient) Get(ctx context.Context, id string) (*c8y.Alarm, error) {
	alarm, err := internalhttp.DoJSON[c8y.Alarm](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       alarmPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeAlarm),
	})
	if err != nil {
		return nil, fmt.Errorf("getting alarm: %w", err)
	}

	return alarm, nil
}

// Create implements c8y.AlarmsClient.Create.
func (c *AlarmsClient) Create(ctx context.Context, request *c8y.AlarmCreate, opts ...c8y.CallOption) (*c8y.Alarm, error) {
	body, err := internalhttp.JSONBody("alarm create", request)
	if err != nil {
		return nil, err
	}

	alarm, err := internalhttp.DoJSON[c8y.Alarm](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        alarmsPath,
		Accept:      c8y.Accept(c8y.MediaTypeAlarm),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeAlarm,
	})
	if err != nil {
		return nil, fmt.Errorf("creating alarm: %w", err)
	}

	return alarm, nil
}

// Update implements c8y.AlarmsClient.Update.
func (c *AlarmsClient) Update(ctx context.Context, id string, request *c8y.AlarmUpdate, opts ...c8y.CallOption) (*c8y.Alarm, error) {
	body, err := internalhttp.JSONBody("alarm update", request)
	if err != nil {
		return nil, err
	}

	alarm, err := internalhttp.DoJSON[c8y.Alarm](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        alarmPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:      c8y.Accept(c8y.MediaTypeAlarm),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeAlarm,
	})
	if err != nil {
		return nil, fmt.Errorf("updating alarm: %w", err)
	}

	return alarm, nil
}

// UpdateCollection implements c8y.AlarmsClient.UpdateCollection.
func (c *AlarmsClient) UpdateCollection(ctx context.Context, filter *c8y.AlarmFilter, request *c8y.AlarmCollectionUpdate, opts ...c8y.CallOption) error {
	body, err := internalhttp.JSONBody("alarm collection update", request)
	if err != nil {
		return err
	}

	err = internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        alarmsPath,
		Query:       alarmFilterQuery(filter),
		Accept:      c8y.Accept(),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeAlarm,
	})
	if err != nil {
		return fmt.Errorf("updating alarms: %w", err)
	}

	return nil
}

// DeleteCollection implements c8y.AlarmsClient.DeleteCollection.
func (c *AlarmsClient) DeleteCollection(ctx context.Context, filter *c8y.AlarmFilter, opts ...c8y.CallOption) error {
	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:  http.MethodDelete,
		Path:    alarmsPath,
		Query:   alarmFilterQuery(filter),
		Accept:  c8y.Accept(),
		Headers: callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("deleting alarms: %w", err)
	}

	return nil
}

// Count implements c8y.AlarmsClient.Count. The platform answers with a bare
// number.
func (c *AlarmsClient) Count(ctx context.Context, filter *c8y.AlarmFilter) (int, error) {
	body, err := internalhttp.DoRaw(ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   alarmCountPath,
		Query:  alarmFilterQuery(filter),
		Accept: c8y.Accept(c8y.MediaTypeTextPlain, c8y.MediaTypeJSON),
	})
	if err != nil {
		return 0, fmt.Errorf("counting alarms: %w", err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, &c8y.DecodeError{Target: "alarm count", Err: fmt.Errorf("%w: %w", c8y.ErrInvalidCount, err)}
	}

	return count, nil
}
