package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	applicationsPath       = "/application/applications"
	applicationPath        = "/application/applications/{id}"
	applicationClonePath   = "/application/applications/{id}/clone"
	applicationBinaryPath  = "/application/applications/{id}/binaries"
	applicationVersions    = "/application/applications/{id}/versions"
	applicationVersionPath = "/application/applications/{id}/versions/{version}"
)

// ApplicationsClient implements c8y.ApplicationsClient.
type ApplicationsClient struct {
	httpClient *internalhttp.Client
}

// NewApplicationsClient creates a new applications client.
func NewApplicationsClient(httpClient *internalhttp.Client) *ApplicationsClient {
	return &ApplicationsClient{
		httpClient: httpClient,
	}
}

// List implements c8y.ApplicationsClient.List.
func (c *ApplicationsClient) List(ctx context.Context, params *c8y.ApplicationListParams) (*c8y.ApplicationCollection, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = withPaging([]internalhttp.QueryParam{
			internalhttp.QueryString("name", params.Name),
			internalhttp.QueryString("owner", params.Owner),
			internalhttp.QueryString("providedFor", params.ProviderFor),
			internalhttp.QueryString("subscriber", params.Subscriber),
			internalhttp.QueryString("tenant", params.Tenant),
			internalhttp.QueryString("type", params.Type),
			internalhttp.QueryString("user", params.User),
			internalhttp.QueryBool("hasVersions", params.HasVersions),
		}, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.ApplicationCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   applicationsPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeApplicationCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	return collection, nil
}

// Get implements c8y.ApplicationsClient.Get.
func (c *ApplicationsClient) Get(ctx context.Context, id string) (*c8y.Application, error) {
	app, err := internalhttp.DoJSON[c8y.Application](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       applicationPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeApplication),
	})
	if err != nil {
		return nil, fmt.Errorf("getting application: %w", err)
	}

	return app, nil
}

// Create implements c8y.ApplicationsClient.Create.
func (c *ApplicationsClient) Create(ctx context.Context, request *c8y.ApplicationCreate) (*c8y.Application, error) {
	body, err := internalhttp.JSONBody("application create", request)
	if err != nil {
		return nil, err
	}

	app, err := internalhttp.DoJSON[c8y.Application](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        applicationsPath,
		Accept:      c8y.Accept(c8y.MediaTypeApplication),
		Body:        body,
		ContentType: c8y.MediaTypeApplication,
	})
	if err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}

	return app, nil
}

// Update implements c8y.ApplicationsClient.Update.
func (c *ApplicationsClient) Update(ctx context.Context, id string, request *c8y.ApplicationUpdate) (*c8y.Application, error) {
	body, err := internalhttp.JSONBody("application update", request)
	if err != nil {
		return nil, err
	}

	app, err := internalhttp.DoJSON[c8y.Application](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        applicationPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:      c8y.Accept(c8y.MediaTypeApplication),
		Body:        body,
		ContentType: c8y.MediaTypeApplication,
	})
	if err != nil {
		return nil, fmt.Errorf("updating application: %w", err)
	}

	return app, nil
}

// Delete implements c8y.ApplicationsClient.Delete.
func (c *ApplicationsClient) Delete(ctx context.Context, id string, params *c8y.ApplicationDeleteParams) error {
	var query []internalhttp.QueryParam
	if params != nil {
		query = []internalhttp.QueryParam{internalhttp.QueryBool("force", params.Force)}
	}

	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       applicationPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Query:      query,
		Accept:     c8y.Accept(),
	})
	if err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}

	return nil
}

// Copy implements c8y.ApplicationsClient.Copy.
func (c *ApplicationsClient) Copy(ctx context.Context, id string) (*c8y.Application, error) {
	app, err := internalhttp.DoJSON[c8y.Application](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodPost,
		Path:       applicationClonePath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeApplication),
	})
	if err != nil {
		return nil, fmt.Errorf("copying application: %w", err)
	}

	return app, nil
}

// UploadBinary implements c8y.ApplicationsClient.UploadBinary.
func (c *ApplicationsClient) UploadBinary(ctx context.Context, id string, filename string, content []byte) (*c8y.Application, error) {
	body, contentType, err := internalhttp.Multipart(
		internalhttp.FilePart("file", filename, "", content),
	)
	if err != nil {
		return nil, err
	}

	app, err := internalhttp.DoJSON[c8y.Application](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        applicationBinaryPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:      c8y.Accept(c8y.MediaTypeApplication),
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading application binary: %w", err)
	}

	return app, nil
}

// ApplicationVersionsClient implements c8y.ApplicationVersionsClient.
type ApplicationVersionsClient struct {
	httpClient *internalhttp.Client
}

// NewApplicationVersionsClient creates a new application versions client.
func NewApplicationVersionsClient(httpClient *internalhttp.Client) *ApplicationVersionsClient {
	return &ApplicationVersionsClient{
		httpClient: httpClient,
	}
}

func selectorQuery(selector c8y.ApplicationVersionSelector) ([]internalhttp.QueryParam, error) {
	err := selector.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", c8y.ErrInvalidRequest, err)
	}

	return []internalhttp.QueryParam{
		internalhttp.QueryString("version", selector.Version),
		internalhttp.QueryString("tag", selector.Tag),
	}, nil
}

// List implements c8y.ApplicationVersionsClient.List.
func (c *ApplicationVersionsClient) List(ctx context.Context, applicationID string, params *c8y.PageParams) (*c8y.ApplicationVersionCollection, error) {
	collection, err := internalhttp.DoJSON[c8y.ApplicationVersionCollection](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       applicationVersions,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", applicationID)},
		Query:      pageQuery(params),
		Accept:     c8y.Accept(c8y.MediaTypeApplicationVersionCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing application versions: %w", err)
	}

	return collection, nil
}

// Get implements c8y.ApplicationVersionsClient.Get.
func (c *ApplicationVersionsClient) Get(ctx context.Context, applicationID string, selector c8y.ApplicationVersionSelector) (*c8y.ApplicationVersion, error) {
	query, err := selectorQuery(selector)
	if err != nil {
		return nil, err
	}

	version, err := internalhttp.DoJSON[c8y.ApplicationVersion](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       applicationVersions,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", applicationID)},
		Query:      query,
		Accept:     c8y.Accept(c8y.MediaTypeApplicationVersion),
	})
	if err != nil {
		return nil, fmt.Errorf("getting application version: %w", err)
	}

	return version, nil
}

// Create implements c8y.ApplicationVersionsClient.Create.
func (c *ApplicationVersionsClient) Create(ctx context.Context, applicationID string, request *c8y.ApplicationVersionCreate, filename string, content []byte) (*c8y.ApplicationVersion, error) {
	versionPart, err := internalhttp.JSONPart("applicationVersion", request)
	if err != nil {
		return nil, err
	}

	body, contentType, err := internalhttp.Multipart(
		internalhttp.FilePart("applicationBinary", filename, "", content),
		versionPart,
	)
	if err != nil {
		return nil, err
	}

	version, err := internalhttp.DoJSON[c8y.ApplicationVersion](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        applicationVersions,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", applicationID)},
		Accept:      c8y.Accept(c8y.MediaTypeApplicationVersion),
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("creating application version: %w", err)
	}

	return version, nil
}

// Update implements c8y.ApplicationVersionsClient.Update.
func (c *ApplicationVersionsClient) Update(ctx context.Context, applicationID string, version string, request *c8y.ApplicationVersionUpdate) (*c8y.ApplicationVersion, error) {
	body, err := internalhttp.JSONBody("application version update", request)
	if err != nil {
		return nil, err
	}

	updated, err := internalhttp.DoJSON[c8y.ApplicationVersion](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPut,
		Path:   applicationVersionPath,
		PathParams: []internalhttp.PathParam{
			internalhttp.Param("id", applicationID),
			internalhttp.Param("version", version),
		},
		Accept:      c8y.Accept(c8y.MediaTypeApplicationVersion),
		Body:        body,
		ContentType: c8y.MediaTypeApplicationVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("updating application version: %w", err)
	}

	return updated, nil
}

// Delete implements c8y.ApplicationVersionsClient.Delete.
func (c *ApplicationVersionsClient) Delete(ctx context.Context, applicationID string, selector c8y.ApplicationVersionSelector) error {
	query, err := selectorQuery(selector)
	if err != nil {
		return err
	}

	err = internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       applicationVersions,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", applicationID)},
		Query:      query,
		Accept:     c8y.Accept(),
	})
	if err != nil {
		return fmt.Errorf("deleting application version: %w", err)
	}

	return nil
}
