package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	managedObjectsPath = "/inventory/managedObjects"
	managedObjectPath  = "/inventory/managedObjects/{id}"
	childrenPath       = "/inventory/managedObjects/{id}/{kind}"
	childPath          = "/inventory/managedObjects/{id}/{kind}/{childId}"
	binariesPath       = "/inventory/binaries"
	binaryPath         = "/inventory/binaries/{id}"
)

// ManagedObjectsClient implements c8y.ManagedObjectsClient.
type ManagedObjectsClient struct {
	httpClient *internalhttp.Client
}

// NewManagedObjectsClient creates a new managed objects client.
func NewManagedObjectsClient(httpClient *internalhttp.Client) *ManagedObjectsClient {
	return &ManagedObjectsClient{
		httpClient: httpClient,
	}
}

// List implements c8y.ManagedObjectsClient.List.
func (c *ManagedObjectsClient) List(ctx context.Context, params *c8y.ManagedObjectListParams) (*c8y.ManagedObjectCollection, error) {
	collection, err := internalhttp.DoJSON[c8y.ManagedObjectCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   managedObjectsPath,
		Query:  managedObjectListQuery(params),
		Accept: c8y.Accept(c8y.MediaTypeManagedObjectCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing managed objects: %w", err)
	}

	return collection, nil
}

// Get implements c8y.ManagedObjectsClient.Get.
func (c *ManagedObjectsClient) Get(ctx context.Context, id string, params *c8y.ManagedObjectGetParams) (*c8y.ManagedObject, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = []internalhttp.QueryParam{
			internalhttp.QueryBool("withChildren", params.WithChildren),
			internalhttp.QueryBool("withChildrenCount", params.WithChildrenCount),
			internalhttp.QueryBool("withParents", params.WithParents),
			internalhttp.QueryBool("skipChildrenNames", params.SkipChildrenNames),
		}
	}

	managedObject, err := internalhttp.DoJSON[c8y.ManagedObject](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       managedObjectPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Query:      query,
		Accept:     c8y.Accept(c8y.MediaTypeManagedObject),
	})
	if err != nil {
		return nil, fmt.Errorf("getting managed object: %w", err)
	}

	return managedObject, nil
}

// Create implements c8y.ManagedObjectsClient.Create.
func (c *ManagedObjectsClient) Create(ctx context.Context, request *c8y.ManagedObjectCreate, opts ...c8y.CallOption) (*c8y.ManagedObject, error) {
	body, err := internalhttp.JSONBody("managed object create", request)
	if err != nil {
		return nil, err
	}

	managedObject, err := internalhttp.DoJSON[c8y.ManagedObject](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        managedObjectsPath,
		Accept:      c8y.Accept(c8y.MediaTypeManagedObject),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeManagedObject,
	})
	if err != nil {
		return nil, fmt.Errorf("creating managed object: %w", err)
	}

	return managedObject, nil
}

// Update implements c8y.ManagedObjectsClient.Update.
func (c *ManagedObjectsClient) Update(ctx context.Context, id string, request *c8y.ManagedObjectUpdate, opts ...c8y.CallOption) (*c8y.ManagedObject, error) {
	body, err := internalhttp.JSONBody("managed object update", request)
	if err != nil {
		return nil, err
	}

	managedObject, err := internalhttp.DoJSON[c8y.ManagedObject](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        managedObjectPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:      c8y.Accept(c8y.MediaTypeManagedObject),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeManagedObject,
	})
	if err != nil {
		return nil, fmt.Errorf("updating managed object: %w", err)
	}

	return managedObject, nil
}

// Delete implements c8y.ManagedObjectsClient.Delete.
func (c *ManagedObjectsClient) Delete(ctx context.Context, id string, params *c8y.ManagedObjectDeleteParams, opts ...c8y.CallOption) error {
	var query []internalhttp.QueryParam
	if params != nil {
		query = []internalhttp.QueryParam{
			internalhttp.QueryBool("cascade", params.Cascade),
			internalhttp.QueryBool("forceCascade", params.ForceCascade),
			internalhttp.QueryBool("withDeviceUser", params.WithDeviceUser),
		}
	}

	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       managedObjectPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Query:      query,
		Accept:     c8y.Accept(),
		Headers:    callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("deleting managed object: %w", err)
	}

	return nil
}

// GetSupportedMeasurements implements c8y.ManagedObjectsClient.GetSupportedMeasurements.
func (c *ManagedObjectsClient) GetSupportedMeasurements(ctx context.Context, id string) (*c8y.SupportedMeasurements, error) {
	supported, err := internalhttp.DoJSON[c8y.SupportedMeasurements](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       managedObjectPath + "/supportedMeasurements",
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeSupportedMeasurements),
	})
	if err != nil {
		return nil, fmt.Errorf("getting supported measurements: %w", err)
	}

	return supported, nil
}

// GetSupportedSeries implements c8y.ManagedObjectsClient.GetSupportedSeries.
func (c *ManagedObjectsClient) GetSupportedSeries(ctx context.Context, id string) (*c8y.SupportedSeries, error) {
	supported, err := internalhttp.DoJSON[c8y.SupportedSeries](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       managedObjectPath + "/supportedSeries",
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeSupportedSeries),
	})
	if err != nil {
		return nil, fmt.Errorf("getting supported series: %w", err)
	}

	return supported, nil
}

func managedObjectListQuery(p *c8y.ManagedObjectListParams) []internalhttp.QueryParam {
	if p == nil {
		return nil
	}

	query := []internalhttp.QueryParam{
		internalhttp.QueryCSV("ids", p.IDs),
		internalhttp.QueryString("type", p.Type),
		internalhttp.QueryString("fragmentType", p.FragmentType),
		internalhttp.QueryString("owner", p.Owner),
		internalhttp.QueryString("text", p.Text),
		internalhttp.QueryString("query", p.Query),
		internalhttp.QueryString("q", p.Q),
		internalhttp.QueryString("childAssetId", p.ChildAssetID),
		internalhttp.QueryString("childDeviceId", p.ChildDeviceID),
		internalhttp.QueryString("childAdditionId", p.ChildAdditionID),
		internalhttp.QueryBool("onlyRoots", p.OnlyRoots),
		internalhttp.QueryBool("withChildren", p.WithChildren),
		internalhttp.QueryBool("withChildrenCount", p.WithChildrenCount),
		internalhttp.QueryBool("withParents", p.WithParents),
		internalhttp.QueryBool("skipChildrenNames", p.SkipChildrenNames),
		internalhttp.QueryBool("withGroups", p.WithGroups),
	}

	return withPaging(query, &p.PageParams)
}

// ChildReferencesClient implements c8y.ChildReferencesClient.
type ChildReferencesClient struct {
	httpClient *internalhttp.Client
}

// NewChildReferencesClient creates a new child references client.
func NewChildReferencesClient(httpClient *internalhttp.Client) *ChildReferencesClient {
	return &ChildReferencesClient{
		httpClient: httpClient,
	}
}

type childReferenceCreate struct {
	ManagedObject c8y.ObjectRef `json:"managedObject"`
}

func checkChildKind(kind c8y.ChildKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %w: %q", c8y.ErrInvalidRequest, constants.ErrInvalidChildKind, kind)
	}

	return nil
}

// List implements c8y.ChildReferencesClient.List.
func (c *ChildReferencesClient) List(ctx context.Context, parentID string, kind c8y.ChildKind, params *c8y.ChildReferenceListParams) (*c8y.ManagedObjectReferenceCollection, error) {
	err := checkChildKind(kind)
	if err != nil {
		return nil, err
	}

	var query []internalhttp.QueryParam
	if params != nil {
		query = withPaging([]internalhttp.QueryParam{
			internalhttp.QueryString("query", params.Query),
			internalhttp.QueryBool("withChildren", params.WithChildren),
			internalhttp.QueryBool("withChildrenCount", params.WithChildrenCount),
		}, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.ManagedObjectReferenceCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   childrenPath,
		PathParams: []internalhttp.PathParam{
			internalhttp.Param("id", parentID),
			internalhttp.Param("kind", string(kind)),
		},
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeManagedObjectReferenceCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}

	return collection, nil
}

// Assign implements c8y.ChildReferencesClient.Assign.
func (c *ChildReferencesClient) Assign(ctx context.Context, parentID string, kind c8y.ChildKind, childID string, opts ...c8y.CallOption) (*c8y.ManagedObjectReference, error) {
	err := checkChildKind(kind)
	if err != nil {
		return nil, err
	}

	body, err := internalhttp.JSONBody("managed object reference", childReferenceCreate{
		ManagedObject: c8y.ObjectRef{ID: childID},
	})
	if err != nil {
		return nil, err
	}

	reference, err := internalhttp.DoJSON[c8y.ManagedObjectReference](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   childrenPath,
		PathParams: []internalhttp.PathParam{
			internalhttp.Param("id", parentID),
			internalhttp.Param("kind", string(kind)),
		},
		Accept:      c8y.Accept(c8y.MediaTypeManagedObjectReference),
		Headers:     callHeaders(opts),
		Body:        body,
		ContentType: c8y.MediaTypeManagedObjectReference,
	})
	if err != nil {
		return nil, fmt.Errorf("assigning child to %s: %w", kind, err)
	}

	return reference, nil
}

// Get implements c8y.ChildReferencesClient.Get.
func (c *ChildReferencesClient) Get(ctx context.Context, parentID string, kind c8y.ChildKind, childID string) (*c8y.ManagedObjectReference, error) {
	err := checkChildKind(kind)
	if err != nil {
		return nil, err
	}

	reference, err := internalhttp.DoJSON[c8y.ManagedObjectReference](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   childPath,
		PathParams: []internalhttp.PathParam{
			internalhttp.Param("id", parentID),
			internalhttp.Param("kind", string(kind)),
			internalhttp.Param("childId", childID),
		},
		Accept: c8y.Accept(c8y.MediaTypeManagedObjectReference),
	})
	if err != nil {
		return nil, fmt.Errorf("getting child reference: %w", err)
	}

	return reference, nil
}

// Unassign implements c8y.ChildReferencesClient.Unassign.
func (c *ChildReferencesClient) Unassign(ctx context.Context, parentID string, kind c8y.ChildKind, childID string, opts ...c8y.CallOption) error {
	err := checkChildKind(kind)
	if err != nil {
		return err
	}

	err = internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodDelete,
		Path:   childPath,
		PathParams: []internalhttp.PathParam{
			internalhttp.Param("id", parentID),
			internalhttp.Param("kind", string(kind)),
			internalhttp.Param("childId", childID),
		},
		Accept:  c8y.Accept(),
		Headers: callHeaders(opts),
	})
	if err != nil {
		return fmt.Errorf("unassigning child from %s: %w", kind, err)
	}

	return nil
}

// InventoryBinariesClient implements c8y.InventoryBinariesClient.
type InventoryBinariesClient struct {
	httpClient *internalhttp.Client
}

// NewInventoryBinariesClient creates a new inventory binaries client.
func NewInventoryBinariesClient(httpClient *internalhttp.Client) *InventoryBinariesClient {
	return &InventoryBinariesClient{
		httpClient: httpClient,
	}
}

// List implements c8y.InventoryBinariesClient.List.
func (c *InventoryBinariesClient) List(ctx context.Context, params *c8y.BinaryListParams) (*c8y.BinaryCollection, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = withPaging([]internalhttp.QueryParam{
			internalhttp.QueryCSV("ids", params.IDs),
			internalhttp.QueryString("type", params.Type),
			internalhttp.QueryString("owner", params.Owner),
			internalhttp.QueryString("childAdditionId", params.ChildAdditionID),
			internalhttp.QueryString("childAssetId", params.ChildAssetID),
			internalhttp.QueryString("childDeviceId", params.ChildDeviceID),
		}, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.BinaryCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   binariesPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeManagedObjectCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing binaries: %w", err)
	}

	return collection, nil
}

// Upload implements c8y.InventoryBinariesClient.Upload.
func (c *InventoryBinariesClient) Upload(ctx context.Context, object *c8y.BinaryCreate, filename string, content []byte) (*c8y.Binary, error) {
	if object == nil {
		object = &c8y.BinaryCreate{Name: filename}
	}

	objectPart, err := internalhttp.JSONPart("object", object)
	if err != nil {
		return nil, err
	}

	body, contentType, err := internalhttp.Multipart(
		objectPart,
		internalhttp.FilePart("file", filename, object.Type, content),
	)
	if err != nil {
		return nil, err
	}

	binary, err := internalhttp.DoJSON[c8y.Binary](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        binariesPath,
		Accept:      c8y.Accept(c8y.MediaTypeManagedObject),
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading binary: %w", err)
	}

	return binary, nil
}

// Download implements c8y.InventoryBinariesClient.Download.
func (c *InventoryBinariesClient) Download(ctx context.Context, id string) ([]byte, error) {
	content, err := internalhttp.DoRaw(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       binaryPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeOctetStream),
	})
	if err != nil {
		return nil, fmt.Errorf("downloading binary: %w", err)
	}

	return content, nil
}

// Replace implements c8y.InventoryBinariesClient.Replace.
func (c *InventoryBinariesClient) Replace(ctx context.Context, id string, contentType string, content []byte) (*c8y.Binary, error) {
	if contentType == "" {
		contentType = c8y.MediaTypeOctetStream
	}

	if content == nil {
		content = []byte{}
	}

	binary, err := internalhttp.DoJSON[c8y.Binary](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        binaryPath,
		PathParams:  []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:      c8y.Accept(c8y.MediaTypeManagedObject),
		Body:        content,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("replacing binary: %w", err)
	}

	return binary, nil
}

// Delete implements c8y.InventoryBinariesClient.Delete.
func (c *InventoryBinariesClient) Delete(ctx context.Context, id string) error {
	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       binaryPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(),
	})
	if err != nil {
		return fmt.Errorf("deleting binary: %w", err)
	}

	return nil
}
