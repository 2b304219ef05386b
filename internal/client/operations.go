package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	operationsPath = "/devicecontrol/operations"
	operationPath  = "/devicecontrol/operations/{id}"
)

// OperationsClient implements c8y.OperationsClient.
type OperationsClient struct {
	httpClient *internalhttp.Client
}

// NewOperationsClient creates a new operations client.
func NewOperationsClient(httpClient *internalhttp.Client) *OperationsClient {
	return &OperationsClient{
		httpClient: httpClient,
	}
}

// List implements c8y.OperationsClient.List.
func (c *OperationsClient) List(ctx context.Context, params *c8y.OperationListParams) (*c8y.OperationCollection, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = withPaging([]internalhttp.QueryParam{
			internalhttp.QueryString("deviceId", params.DeviceID),
			internalhttp.QueryString("agentId", params.AgentID),
			internalhttp.QueryString("fragmentType", params.FragmentType),
			internalhttp.QueryString("bulkOperationId", params.BulkOperationID),
			internalhttp.QueryValue("status", params.Status),
			internalhttp.QueryTime("dateFrom", params.DateFrom),
			internalhttp.QueryTime("dateTo", params.DateTo),
			internalhttp.QueryBool("revert", params.Revert),
		}, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.OperationCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   operationsPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeOperationCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}

	return collection, nil
}

// Get implements c8y.OperationsClient.Get.
func (c *OperationsClient) Get(ctx context.Context, id string) (*c8y.Operation, error) {
	operation, err := internalhttp.DoJSON[c8y.Operation](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       operationPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeOperation),
	})
	if err != nil {
		return nil, fmt.Errorf("getting operation: %w", err)
	}

	return operation, nil
}

// Create implements c8y.OperationsClient.Create.
func (c *OperationsClient) Create(ctx context.Context, request *c8y.OperationCreate, opts ...c8y.CallOption) (*c8y.Operation, error) {
	body, err := internalhttp.JSONBody("operation create", request)
	if err != nil {
		return nil, err
	}

	operation, err := internalhttp.DoJSON[c8y.Operation](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        operationsPath,
		Accept:      c8y.Accept(c8y.MediaTypeOperation),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeOperation,
	})
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}

	return operation, nil
}

// Update implements c8y.OperationsClient.Update.
func (c *OperationsClient) Update(ctx context.Context, id string, request *c8y.OperationUpdate, opts ...c8y.CallOption) (*c8y.Operation, error) {
	body, err := internalhttp.JSONBody("operation update", request)
	if err != nil {
		return nil, err
	}

	operation, err := internalhttp.DoJSON[c8y.Operation](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        operationPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:      c8y.Accept(c8y.MediaTypeOperation),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeOperation,
	})
	if err != nil {
		return nil, fmt.Errorf("updating operation: %w", err)
	}

	return operation, nil
}

// DeleteCollection implements c8y.OperationsClient.DeleteCollection.
func (c *OperationsClient) DeleteCollection(ctx context.Context, params *c8y.OperationDeleteParams, opts ...c8y.CallOption) error {
	var query []internalhttp.QueryParam
	if params != nil {
		query = []internalhttp.QueryParam{
			internalhttp.QueryString("deviceId", params.DeviceID),
			internalhttp.QueryString("agentId", params.AgentID),
			internalhttp.QueryValue("status", params.Status),
			internalhttp.QueryTime("dateFrom", params.DateFrom),
			internalhttp.QueryTime("dateTo", params.DateTo),
		}
	}

	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:  http.MethodDelete,
		Path:    operationsPath,
		Query:   query,
		Accept:  c8y.Accept(),
		Headers: callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("deleting operations: %w", err)
	}

	return nil
}
