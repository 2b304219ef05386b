package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	eventsPath      = "/event/events"
	eventPath       = "/event/events/{id}"
	eventBinaryPath = "/event/events/{id}/binaries"
)

// EventsClient implements c8y.EventsClient.
type EventsClient struct {
	httpClient *internalhttp.Client
}

// NewEventsClient creates a new events client.
func NewEventsClient(httpClient *internalhttp.Client) *EventsClient {
	return &EventsClient{
		httpClient: httpClient,
	}
}

// List implements c8y.EventsClient.List.
func (c *EventsClient) List(ctx context.Context, params *c8y.EventListParams) (*c8y.EventCollection, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = withPaging([]internalhttp.QueryParam{
			internalhttp.QueryString("source", params.Source),
			internalhttp.QueryString("type", params.Type),
			internalhttp.QueryString("fragmentType", params.FragmentType),
			internalhttp.QueryString("fragmentValue", params.FragmentValue),
			internalhttp.QueryTime("dateFrom", params.DateFrom),
			internalhttp.QueryTime("dateTo", params.DateTo),
			internalhttp.QueryTime("createdFrom", params.CreatedFrom),
			internalhttp.QueryTime("createdTo", params.CreatedTo),
			internalhttp.QueryTime("lastUpdatedFrom", params.LastUpdatedFrom),
			internalhttp.QueryTime("lastUpdatedTo", params.LastUpdatedTo),
			internalhttp.QueryBool("withSourceAssets", params.WithSourceAssets),
			internalhttp.QueryBool("withSourceDevices", params.WithSourceDevices),
			internalhttp.QueryBool("revert", params.Revert),
		}, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.EventCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   eventsPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeEventCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	return collection, nil
}

// Get implements c8y.EventsClient.Get.
func (c *EventsClient) Get(ctx context.Context, id string) (*c8y.Event, error) {
	event, err := internalhttp.DoJSON[c8y.Event](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       eventPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeEvent),
	})
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}

	return event, nil
}

// Create implements c8y.EventsClient.Create.
func (c *EventsClient) Create(ctx context.Context, request *c8y.EventCreate, opts ...c8y.CallOption) (*c8y.Event, error) {
	body, err := internalhttp.JSONBody("event create", request)
	if err != nil {
		return nil, err
	}

	event, err := internalhttp.DoJSON[c8y.Event](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        eventsPath,
		Accept:      c8y.Accept(c8y.MediaTypeEvent),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeEvent,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	return event, nil
}

// Update implements c8y.EventsClient.Update.
func (c *EventsClient) Update(ctx context.Context, id string, request *c8y.EventUpdate, opts ...c8y.CallOption) (*c8y.Event, error) {
	body, err := internalhttp.JSONBody("event update", request)
	if err != nil {
		return nil, err
	}

	event, err := internalhttp.DoJSON[c8y.Event](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        eventPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:      c8y.Accept(c8y.MediaTypeEvent),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeEvent,
	})
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}

	return event, nil
}

// Delete implements c8y.EventsClient.Delete.
func (c *EventsClient) Delete(ctx context.Context, id string, opts ...c8y.CallOption) error {
	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       eventPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(),
		Headers:    callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	return nil
}

// DeleteCollection implements c8y.EventsClient.DeleteCollection.
func (c *EventsClient) DeleteCollection(ctx context.Context, params *c8y.EventDeleteParams, opts ...c8y.CallOption) error {
	var query []internalhttp.QueryParam
	if params != nil {
		query = []internalhttp.QueryParam{
			internalhttp.QueryString("source", params.Source),
			internalhttp.QueryString("type", params.Type),
			internalhttp.QueryString("fragmentType", params.FragmentType),
			internalhttp.QueryTime("dateFrom", params.DateFrom),
			internalhttp.QueryTime("dateTo", params.DateTo),
			internalhttp.QueryTime("createdFrom", params.CreatedFrom),
			internalhttp.QueryTime("createdTo", params.CreatedTo),
		}
	}

	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:  http.MethodDelete,
		Path:    eventsPath,
		Query:   query,
		Accept:  c8y.Accept(),
		Headers: callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("deleting events: %w", err)
	}

	return nil
}

// EventBinariesClient implements c8y.EventBinariesClient.
type EventBinariesClient struct {
	httpClient *internalhttp.Client
}

// NewEventBinariesClient creates a new event attachments client.
func NewEventBinariesClient(httpClient *internalhttp.Client) *EventBinariesClient {
	return &EventBinariesClient{
		httpClient: httpClient,
	}
}

// Upload implements c8y.EventBinariesClient.Upload.
func (c *EventBinariesClient) Upload(ctx context.Context, eventID string, filename string, contentType string, content []byte) (*c8y.EventBinary, error) {
	objectPart, err := internalhttp.JSONPart("object", map[string]string{
		"name": filename,
		"type": contentType,
	})
	if err != nil {
		return nil, err
	}

	body, multipartType, err := internalhttp.Multipart(
		objectPart,
		internalhttp.FilePart("file", filename, contentType, content),
	)
	if err != nil {
		return nil, err
	}

	binary, err := internalhttp.DoJSON[c8y.EventBinary](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        eventBinaryPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", eventID)},
		Accept:      c8y.Accept(c8y.MediaTypeEventBinary),
		Body:        body,
		ContentType: multipartType,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading event attachment: %w", err)
	}

	return binary, nil
}

// Download implements c8y.EventBinariesClient.Download.
func (c *EventBinariesClient) Download(ctx context.Context, eventID string) ([]byte, error) {
	content, err := internalhttp.DoRaw(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       eventBinaryPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", eventID)},
		Accept:     c8y.Accept(c8y.MediaTypeOctetStream),
	})
	if err != nil {
		return nil, fmt.Errorf("downloading event attachment: %w", err)
	}

	return content, nil
}

// Replace implements c8y.EventBinariesClient.Replace.
func (c *EventBinariesClient) Replace(ctx context.Context, eventID string, contentType string, content []byte) (*c8y.EventBinary, error) {
	if contentType == "" {
		contentType = c8y.MediaTypeOctetStream
	}

	if content == nil {
		content = []byte{}
	}

	binary, err := internalhttp.DoJSON[c8y.EventBinary](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        eventBinaryPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", eventID)},
		Accept:      c8y.Accept(c8y.MediaTypeEventBinary),
		Body:        content,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("replacing event attachment: %w", err)
	}

	return binary, nil
}

// Delete implements c8y.EventBinariesClient.Delete.
func (c *EventBinariesClient) Delete(ctx context.Context, eventID string) error {
	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       eventBinaryPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", eventID)},
		Accept:     c8y.Accept(),
	})
	if err != nil {
		return fmt.Errorf("deleting event attachment: %w", err)
	}

	return nil
}
