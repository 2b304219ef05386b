package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	globalIDExternalIDsPath = "/identity/globalIds/{id}/externalIds"
	externalIDPath          = "/identity/externalIds/{type}/{externalId}"
)

// ExternalIDsClient implements c8y.ExternalIDsClient.
type ExternalIDsClient struct {
	httpClient *internalhttp.Client
}

// NewExternalIDsClient creates a new identity client.
func NewExternalIDsClient(httpClient *internalhttp.Client) *ExternalIDsClient {
	return &ExternalIDsClient{
		httpClient: httpClient,
	}
}

// List implements c8y.ExternalIDsClient.List.
func (c *ExternalIDsClient) List(ctx context.Context, globalID string, params *c8y.PageParams) (*c8y.ExternalIDCollection, error) {
	collection, err := internalhttp.DoJSON[c8y.ExternalIDCollection](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       globalIDExternalIDsPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", globalID)},
		Query:      pageQuery(params),
		Accept:     c8y.Accept(c8y.MediaTypeExternalIDCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing external ids: %w", err)
	}

	return collection, nil
}

// Create implements c8y.ExternalIDsClient.Create.
func (c *ExternalIDsClient) Create(ctx context.Context, globalID string, request *c8y.ExternalIDCreate) (*c8y.ExternalID, error) {
	body, err := internalhttp.JSONBody("external id create", request)
	if err != nil {
		return nil, err
	}

	externalID, err := internalhttp.DoJSON[c8y.ExternalID](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        globalIDExternalIDsPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", globalID)},
		Accept:      c8y.Accept(c8y.MediaTypeExternalID),
		Body:        body,
		ContentType: c8y.MediaTypeExternalID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating external id: %w", err)
	}

	return externalID, nil
}

// Get implements c8y.ExternalIDsClient.Get.
func (c *ExternalIDsClient) Get(ctx context.Context, idType, externalID string) (*c8y.ExternalID, error) {
	identity, err := internalhttp.DoJSON[c8y.ExternalID](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   externalIDPath,
		PathParams: []internalhttp.PathParam{
			internalhttp.Param("type", idType),
			internalhttp.Param("externalId", externalID),
		},
		Accept: c8y.Accept(c8y.MediaTypeExternalID),
	})
	if err != nil {
		return nil, fmt.Errorf("getting external id: %w", err)
	}

	return identity, nil
}

// Delete implements c8y.ExternalIDsClient.Delete.
func (c *ExternalIDsClient) Delete(ctx context.Context, idType, externalID string) error {
	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodDelete,
		Path:   externalIDPath,
		PathParams: []internalhttp.PathParam{
			internalhttp.Param("type", idType),
			internalhttp.Param("externalId", externalID),
		},
		Accept: c8y.Accept(),
	})
	if err != nil {
		return fmt.Errorf("deleting external id: %w", err)
	}

	return nil
}
