package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const (
	auditRecordsPath  = "/audit/auditRecords"
	auditRecordPath   = "/audit/auditRecords/{id}"
	currentUserPath   = "/user/currentUser"
	userPasswordPath  = "/user/currentUser/password"
	tenantOptionsPath = "/tenant/options"
	tenantOptionPath  = "/tenant/options/{category}/{key}"
	currentTenantPath = "/tenant/currentTenant"
)

// AuditRecordsClient implements c8y.AuditRecordsClient.
type AuditRecordsClient struct {
	httpClient *internalhttp.Client
}

// NewAuditRecordsClient creates a new audit records client.
func NewAuditRecordsClient(httpClient *internalhttp.Client) *AuditRecordsClient {
	return &AuditRecordsClient{
		httpClient: httpClient,
	}
}

// List implements c8y.AuditRecordsClient.List.
func (c *AuditRecordsClient) List(ctx context.Context, params *c8y.AuditRecordListParams) (*c8y.AuditRecordCollection, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = withPaging([]internalhttp.QueryParam{
			internalhttp.QueryString("source", params.Source),
			internalhttp.QueryString("type", params.Type),
			internalhttp.QueryString("user", params.User),
			internalhttp.QueryString("application", params.Application),
			internalhttp.QueryTime("dateFrom", params.DateFrom),
			internalhttp.QueryTime("dateTo", params.DateTo),
			internalhttp.QueryBool("revert", params.Revert),
		}, &params.PageParams)
	}

	collection, err := internalhttp.DoJSON[c8y.AuditRecordCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   auditRecordsPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeAuditRecordCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing audit records: %w", err)
	}

	return collection, nil
}

// Get implements c8y.AuditRecordsClient.Get.
func (c *AuditRecordsClient) Get(ctx context.Context, id string) (*c8y.AuditRecord, error) {
	record, err := internalhttp.DoJSON[c8y.AuditRecord](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       auditRecordPath,
		PathParams: []internalhttp.PathParam{internalhttp.Param("id", id)},
		Accept:     c8y.Accept(c8y.MediaTypeAuditRecord),
	})
	if err != nil {
		return nil, fmt.Errorf("getting audit record: %w", err)
	}

	return record, nil
}

// Create implements c8y.AuditRecordsClient.Create.
func (c *AuditRecordsClient) Create(ctx context.Context, request *c8y.AuditRecordCreate) (*c8y.AuditRecord, error) {
	body, err := internalhttp.JSONBody("audit record create", request)
	if err != nil {
		return nil, err
	}

	record, err := internalhttp.DoJSON[c8y.AuditRecord](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        auditRecordsPath,
		Accept:      c8y.Accept(c8y.MediaTypeAuditRecord),
		Body:        body,
		ContentType: c8y.MediaTypeAuditRecord,
	})
	if err != nil {
		return nil, fmt.Errorf("creating audit record: %w", err)
	}

	return record, nil
}

// CurrentUserClient implements c8y.CurrentUserClient.
type CurrentUserClient struct {
	httpClient *internalhttp.Client
}

// NewCurrentUserClient creates a new current user client.
func NewCurrentUserClient(httpClient *internalhttp.Client) *CurrentUserClient {
	return &CurrentUserClient{
		httpClient: httpClient,
	}
}

// Get implements c8y.CurrentUserClient.Get.
func (c *CurrentUserClient) Get(ctx context.Context) (*c8y.CurrentUser, error) {
	user, err := internalhttp.DoJSON[c8y.CurrentUser](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   currentUserPath,
		Accept: c8y.Accept(c8y.MediaTypeCurrentUser),
	})
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return user, nil
}

// Update implements c8y.CurrentUserClient.Update.
func (c *CurrentUserClient) Update(ctx context.Context, request *c8y.CurrentUserUpdate) (*c8y.CurrentUser, error) {
	body, err := internalhttp.JSONBody("current user update", request)
	if err != nil {
		return nil, err
	}

	user, err := internalhttp.DoJSON[c8y.CurrentUser](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        currentUserPath,
		Accept:      c8y.Accept(c8y.MediaTypeCurrentUser),
		Body:        body,
		ContentType: c8y.MediaTypeCurrentUser,
	})
	if err != nil {
		return nil, fmt.Errorf("updating current user: %w", err)
	}

	return user, nil
}

// UpdatePassword implements c8y.CurrentUserClient.UpdatePassword.
func (c *CurrentUserClient) UpdatePassword(ctx context.Context, request *c8y.PasswordChange) error {
	body, err := internalhttp.JSONBody("password change", request)
	if err != nil {
		return err
	}

	err = internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        userPasswordPath,
		Accept:      c8y.Accept(),
		Body:        body,
		ContentType: c8y.MediaTypeJSON,
	})
	if err != nil {
		return fmt.Errorf("changing password: %w", err)
	}

	return nil
}

// TenantOptionsClient implements c8y.TenantOptionsClient.
type TenantOptionsClient struct {
	httpClient *internalhttp.Client
}

// NewTenantOptionsClient creates a new tenant options client.
func NewTenantOptionsClient(httpClient *internalhttp.Client) *TenantOptionsClient {
	return &TenantOptionsClient{
		httpClient: httpClient,
	}
}

func optionParams(category, key string) []internalhttp.PathParam {
	return []internalhttp.PathParam{
		internalhttp.Param("category", category),
		internalhttp.Param("key", key),
	}
}

// List implements c8y.TenantOptionsClient.List.
func (c *TenantOptionsClient) List(ctx context.Context, params *c8y.PageParams) (*c8y.TenantOptionCollection, error) {
	collection, err := internalhttp.DoJSON[c8y.TenantOptionCollection](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   tenantOptionsPath,
		Query:  pageQuery(params),
		Accept: c8y.Accept(c8y.MediaTypeOptionCollection),
	})
	if err != nil {
		return nil, fmt.Errorf("listing tenant options: %w", err)
	}

	return collection, nil
}

// Get implements c8y.TenantOptionsClient.Get.
func (c *TenantOptionsClient) Get(ctx context.Context, category, key string) (*c8y.TenantOption, error) {
	option, err := internalhttp.DoJSON[c8y.TenantOption](ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodGet,
		Path:       tenantOptionPath,
		PathParams: optionParams(category, key),
		Accept:     c8y.Accept(c8y.MediaTypeOption),
	})
	if err != nil {
		return nil, fmt.Errorf("getting tenant option: %w", err)
	}

	return option, nil
}

// Create implements c8y.TenantOptionsClient.Create.
func (c *TenantOptionsClient) Create(ctx context.Context, request *c8y.TenantOptionCreate) (*c8y.TenantOption, error) {
	body, err := internalhttp.JSONBody("tenant option create", request)
	if err != nil {
		return nil, err
	}

	option, err := internalhttp.DoJSON[c8y.TenantOption](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPost,
		Path:        tenantOptionsPath,
		Accept:      c8y.Accept(c8y.MediaTypeOption),
		Body:        body,
		ContentType: c8y.MediaTypeOption,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tenant option: %w", err)
	}

	return option, nil
}

// Update implements c8y.TenantOptionsClient.Update.
func (c *TenantOptionsClient) Update(ctx context.Context, category, key string, request *c8y.TenantOptionUpdate) (*c8y.TenantOption, error) {
	body, err := internalhttp.JSONBody("tenant option update", request)
	if err != nil {
		return nil, err
	}

	option, err := internalhttp.DoJSON[c8y.TenantOption](ctx, c.httpClient, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        tenantOptionPath,
		PathParams:  optionParams(category, key),
		Accept:      c8y.Accept(c8y.MediaTypeOption),
		Body:        body,
		ContentType: c8y.MediaTypeOption,
	})
	if err != nil {
		return nil, fmt.Errorf("updating tenant option: %w", err)
	}

	return option, nil
}

// Delete implements c8y.TenantOptionsClient.Delete.
func (c *TenantOptionsClient) Delete(ctx context.Context, category, key string) error {
	err := internalhttp.DoNoContent(ctx, c.httpClient, &internalhttp.Request{
		Method:     http.MethodDelete,
		Path:       tenantOptionPath,
		PathParams: optionParams(category, key),
		Accept:     c8y.Accept(),
	})
	if err != nil {
		return fmt.Errorf("deleting tenant option: %w", err)
	}

	return nil
}

// CurrentTenantClient implements c8y.CurrentTenantClient.
type CurrentTenantClient struct {
	httpClient *internalhttp.Client
}

// NewCurrentTenantClient creates a new current tenant client.
func NewCurrentTenantClient(httpClient *internalhttp.Client) *CurrentTenantClient {
	return &CurrentTenantClient{
		httpClient: httpClient,
	}
}

// Get implements c8y.CurrentTenantClient.Get.
func (c *CurrentTenantClient) Get(ctx context.Context, params *c8y.CurrentTenantParams) (*c8y.CurrentTenant, error) {
	var query []internalhttp.QueryParam
	if params != nil {
		query = []internalhttp.QueryParam{internalhttp.QueryBool("withParent", params.WithParent)}
	}

	tenant, err := internalhttp.DoJSON[c8y.CurrentTenant](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   currentTenantPath,
		Query:  query,
		Accept: c8y.Accept(c8y.MediaTypeCurrentTenant),
	})
	if err != nil {
		return nil, fmt.Errorf("getting current tenant: %w", err)
	}

	return tenant, nil
}
