package c8y

import "context"

// TenantOption is a category/key scoped setting of the tenant.
type TenantOption struct {
	Self     string `json:"self,omitempty" yaml:"self,omitempty"`
	Category string `json:"category"       yaml:"category"`
	Key      string `json:"key"            yaml:"key"`
	Value    string `json:"value"          yaml:"value"`
}

// TenantOptionCreate is the body of a new tenant option.
type TenantOptionCreate struct {
	Category string `json:"category" yaml:"category"`
	Key      string `json:"key"      yaml:"key"`
	Value    string `json:"value"    yaml:"value"`
}

// TenantOptionUpdate is the body of a tenant option update.
type TenantOptionUpdate struct {
	Value string `json:"value" yaml:"value"`
}

// TenantOptionCollection is a page of tenant options.
type TenantOptionCollection struct {
	CollectionLinks

	Options    []TenantOption  `json:"options"              yaml:"options"`
	Statistics *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// ApplicationReference is an application subscribed by a tenant.
type ApplicationReference struct {
	Self        string      `json:"self,omitempty" yaml:"self,omitempty"`
	Application Application `json:"application"    yaml:"application"`
}

// ApplicationReferenceCollection lists the subscribed applications.
type ApplicationReferenceCollection struct {
	Self       string                 `json:"self,omitempty" yaml:"self,omitempty"`
	References []ApplicationReference `json:"references"     yaml:"references"`
}

// CurrentTenant represents the tenant of the authenticated user.
type CurrentTenant struct {
	Name               string                          `json:"name"                       yaml:"name"`
	DomainName         string                          `json:"domainName"                 yaml:"domainName"`
	Parent             string                          `json:"parent,omitempty"           yaml:"parent,omitempty"`
	AllowCreateTenants bool                            `json:"allowCreateTenants"         yaml:"allowCreateTenants"`
	CustomProperties   map[string]interface{}          `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
	Applications       *ApplicationReferenceCollection `json:"applications,omitempty"     yaml:"applications,omitempty"`
}

// CurrentTenantParams controls the current tenant response.
type CurrentTenantParams struct {
	WithParent *bool
}

// TenantOptionsClient defines operations for tenant options.
type TenantOptionsClient interface {
	List(ctx context.Context, params *PageParams) (*TenantOptionCollection, error)
	Get(ctx context.Context, category, key string) (*TenantOption, error)
	Create(ctx context.Context, request *TenantOptionCreate) (*TenantOption, error)
	Update(ctx context.Context, category, key string, request *TenantOptionUpdate) (*TenantOption, error)
	Delete(ctx context.Context, category, key string) error
}

// CurrentTenantClient defines operations for the current tenant.
type CurrentTenantClient interface {
	Get(ctx context.Context, params *CurrentTenantParams) (*CurrentTenant, error)
}
