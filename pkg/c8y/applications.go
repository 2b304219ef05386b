package c8y

import "context"

// Application types.
const (
	ApplicationTypeExternal     = "EXTERNAL"
	ApplicationTypeHosted       = "HOSTED"
	ApplicationTypeMicroservice = "MICROSERVICE"
)

// Application availabilities.
const (
	ApplicationAvailabilityMarket  = "MARKET"
	ApplicationAvailabilityPrivate = "PRIVATE"
	ApplicationAvailabilityShared  = "SHARED"
)

// TenantRef references a tenant by id.
type TenantRef struct {
	ID string `json:"id" yaml:"id"`
}

// ApplicationOwner is the tenant that owns an application.
type ApplicationOwner struct {
	Self   string    `json:"self,omitempty" yaml:"self,omitempty"`
	Tenant TenantRef `json:"tenant"         yaml:"tenant"`
}

// Application represents an application of the tenant.
type Application struct {
	ID              string            `json:"id,omitempty"              yaml:"id,omitempty"`
	Self            string            `json:"self,omitempty"            yaml:"self,omitempty"`
	Name            string            `json:"name,omitempty"            yaml:"name,omitempty"`
	Key             string            `json:"key,omitempty"             yaml:"key,omitempty"`
	Type            string            `json:"type,omitempty"            yaml:"type,omitempty"`
	Availability    string            `json:"availability,omitempty"    yaml:"availability,omitempty"`
	ContextPath     string            `json:"contextPath,omitempty"     yaml:"contextPath,omitempty"`
	Description     string            `json:"description,omitempty"     yaml:"description,omitempty"`
	ExternalURL     string            `json:"externalUrl,omitempty"     yaml:"externalUrl,omitempty"`
	ResourcesURL    string            `json:"resourcesUrl,omitempty"    yaml:"resourcesUrl,omitempty"`
	ActiveVersionID string            `json:"activeVersionId,omitempty" yaml:"activeVersionId,omitempty"`
	Owner           *ApplicationOwner `json:"owner,omitempty"           yaml:"owner,omitempty"`
}

// ApplicationCreate is the writable subset of an application accepted on
// create.
type ApplicationCreate struct {
	Name         string `json:"name"                   yaml:"name"`
	Key          string `json:"key"                    yaml:"key"`
	Type         string `json:"type"                   yaml:"type"`
	Availability string `json:"availability,omitempty" yaml:"availability,omitempty"`
	ContextPath  string `json:"contextPath,omitempty"  yaml:"contextPath,omitempty"`
	Description  string `json:"description,omitempty"  yaml:"description,omitempty"`
	ExternalURL  string `json:"externalUrl,omitempty"  yaml:"externalUrl,omitempty"`
	ResourcesURL string `json:"resourcesUrl,omitempty" yaml:"resourcesUrl,omitempty"`
}

// ApplicationUpdate is the writable subset of an application accepted on
// update. The type cannot be changed.
type ApplicationUpdate struct {
	Name            *string `json:"name,omitempty"            yaml:"name,omitempty"`
	Key             *string `json:"key,omitempty"             yaml:"key,omitempty"`
	Availability    *string `json:"availability,omitempty"    yaml:"availability,omitempty"`
	ContextPath     *string `json:"contextPath,omitempty"     yaml:"contextPath,omitempty"`
	Description     *string `json:"description,omitempty"     yaml:"description,omitempty"`
	ExternalURL     *string `json:"externalUrl,omitempty"     yaml:"externalUrl,omitempty"`
	ResourcesURL    *string `json:"resourcesUrl,omitempty"    yaml:"resourcesUrl,omitempty"`
	ActiveVersionID *string `json:"activeVersionId,omitempty" yaml:"activeVersionId,omitempty"`
}

// ApplicationCollection is a page of applications.
type ApplicationCollection struct {
	CollectionLinks

	Applications []Application   `json:"applications"         yaml:"applications"`
	Statistics   *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// ApplicationListParams filters GET /application/applications.
type ApplicationListParams struct {
	PageParams

	Name        *string
	Owner       *string
	ProviderFor *string
	Subscriber  *string
	Tenant      *string
	Type        *string
	User        *string
	HasVersions *bool
}

// ApplicationDeleteParams controls the removal of an application.
type ApplicationDeleteParams struct {
	Force *bool
}

// ApplicationVersion is one uploaded version of a hosted application or
// microservice.
type ApplicationVersion struct {
	Self     string   `json:"self,omitempty"     yaml:"self,omitempty"`
	Version  string   `json:"version"            yaml:"version"`
	BinaryID string   `json:"binaryId,omitempty" yaml:"binaryId,omitempty"`
	Tags     []string `json:"tags,omitempty"     yaml:"tags,omitempty"`
}

// ApplicationVersionCreate describes a new version. It is sent as the
// applicationVersion part next to the applicationBinary file.
type ApplicationVersionCreate struct {
	Version string   `json:"version"        yaml:"version"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ApplicationVersionUpdate replaces the tags of a version.
type ApplicationVersionUpdate struct {
	Tags []string `json:"tags" yaml:"tags"`
}

// ApplicationVersionCollection is a page of application versions.
type ApplicationVersionCollection struct {
	CollectionLinks

	ApplicationVersions []ApplicationVersion `json:"applicationVersions"  yaml:"applicationVersions"`
	Statistics          *PageStatistics      `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// ApplicationVersionSelector addresses a version by its version string or by
// one of its tags. Exactly one of the two must be set.
type ApplicationVersionSelector struct {
	Version *string
	Tag     *string
}

// Validate reports ErrVersionOrTagRequired unless exactly one field is set.
func (s ApplicationVersionSelector) Validate() error {
	if (s.Version == nil) == (s.Tag == nil) {
		return ErrVersionOrTagRequired
	}

	return nil
}

// ApplicationsClient defines operations for applications.
type ApplicationsClient interface {
	List(ctx context.Context, params *ApplicationListParams) (*ApplicationCollection, error)
	Get(ctx context.Context, id string) (*Application, error)
	Create(ctx context.Context, request *ApplicationCreate) (*Application, error)
	Update(ctx context.Context, id string, request *ApplicationUpdate) (*Application, error)
	Delete(ctx context.Context, id string, params *ApplicationDeleteParams) error
	Copy(ctx context.Context, id string) (*Application, error)
	UploadBinary(ctx context.Context, id string, filename string, content []byte) (*Application, error)
}

// ApplicationVersionsClient defines operations for application versions.
type ApplicationVersionsClient interface {
	List(ctx context.Context, applicationID string, params *PageParams) (*ApplicationVersionCollection, error)
	Get(ctx context.Context, applicationID string, selector ApplicationVersionSelector) (*ApplicationVersion, error)
	Create(ctx context.Context, applicationID string, request *ApplicationVersionCreate, filename string, content []byte) (*ApplicationVersion, error)
	Update(ctx context.Context, applicationID string, version string, request *ApplicationVersionUpdate) (*ApplicationVersion, error)
	Delete(ctx context.Context, applicationID string, selector ApplicationVersionSelector) error
}
