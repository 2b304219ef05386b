package c8y

import (
	"context"
	"time"
)

// ManagedObject represents an inventory managed object (device, asset,
// group, binary, ...).
type ManagedObject struct {
	ID              string                            `json:"id,omitempty"              yaml:"id,omitempty"`
	Self            string                            `json:"self,omitempty"            yaml:"self,omitempty"`
	Type            string                            `json:"type,omitempty"            yaml:"type,omitempty"`
	Name            string                            `json:"name,omitempty"            yaml:"name,omitempty"`
	Owner           string                            `json:"owner,omitempty"           yaml:"owner,omitempty"`
	CreationTime    *time.Time                        `json:"creationTime,omitempty"    yaml:"creationTime,omitempty"`
	LastUpdated     *time.Time                        `json:"lastUpdated,omitempty"     yaml:"lastUpdated,omitempty"`
	ChildDevices    *ManagedObjectReferenceCollection `json:"childDevices,omitempty"    yaml:"childDevices,omitempty"`
	ChildAssets     *ManagedObjectReferenceCollection `json:"childAssets,omitempty"     yaml:"childAssets,omitempty"`
	ChildAdditions  *ManagedObjectReferenceCollection `json:"childAdditions,omitempty"  yaml:"childAdditions,omitempty"`
	DeviceParents   *ManagedObjectReferenceCollection `json:"deviceParents,omitempty"   yaml:"deviceParents,omitempty"`
	AssetParents    *ManagedObjectReferenceCollection `json:"assetParents,omitempty"    yaml:"assetParents,omitempty"`
	AdditionParents *ManagedObjectReferenceCollection `json:"additionParents,omitempty" yaml:"additionParents,omitempty"`
	Fragments       Fragments                         `json:"-"                         yaml:"-"`
}

var managedObjectKeys = jsonKeys(ManagedObject{})

// MarshalJSON encodes the managed object with its fragments inlined.
func (m ManagedObject) MarshalJSON() ([]byte, error) {
	type alias ManagedObject

	return marshalWithFragments(alias(m), m.Fragments, managedObjectKeys)
}

// UnmarshalJSON decodes the managed object, collecting unknown properties
// into Fragments.
func (m *ManagedObject) UnmarshalJSON(data []byte) error {
	type alias ManagedObject

	fragments, err := unmarshalWithFragments(data, (*alias)(m), managedObjectKeys)
	if err != nil {
		return err
	}

	m.Fragments = fragments

	return nil
}

// IsDevice reports whether the managed object carries the c8y_IsDevice
// marker fragment.
func (m *ManagedObject) IsDevice() bool {
	return m.Fragments.Has("c8y_IsDevice")
}

// ManagedObjectCreate is the writable subset of a managed object accepted on
// create.
type ManagedObjectCreate struct {
	Type      string    `json:"type,omitempty"  yaml:"type,omitempty"`
	Name      string    `json:"name,omitempty"  yaml:"name,omitempty"`
	Owner     string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	Fragments Fragments `json:"-"               yaml:"-"`
}

// MarshalJSON encodes the create request with its fragments inlined.
func (m ManagedObjectCreate) MarshalJSON() ([]byte, error) {
	type alias ManagedObjectCreate

	return marshalWithFragments(alias(m), m.Fragments, managedObjectKeys)
}

// ManagedObjectUpdate is the writable subset of a managed object accepted on
// update. Nil fields are left unchanged.
type ManagedObjectUpdate struct {
	Type      *string   `json:"type,omitempty"  yaml:"type,omitempty"`
	Name      *string   `json:"name,omitempty"  yaml:"name,omitempty"`
	Owner     *string   `json:"owner,omitempty" yaml:"owner,omitempty"`
	Fragments Fragments `json:"-"               yaml:"-"`
}

// MarshalJSON encodes the update request with its fragments inlined.
func (m ManagedObjectUpdate) MarshalJSON() ([]byte, error) {
	type alias ManagedObjectUpdate

	return marshalWithFragments(alias(m), m.Fragments, managedObjectKeys)
}

// ManagedObjectCollection is a page of managed objects.
type ManagedObjectCollection struct {
	CollectionLinks

	ManagedObjects []ManagedObject `json:"managedObjects"       yaml:"managedObjects"`
	Statistics     *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// ManagedObjectReference links a managed object to a parent.
type ManagedObjectReference struct {
	Self          string        `json:"self,omitempty" yaml:"self,omitempty"`
	ManagedObject ManagedObject `json:"managedObject"  yaml:"managedObject"`
}

// ManagedObjectReferenceCollection is a page of child or parent references.
type ManagedObjectReferenceCollection struct {
	CollectionLinks

	References []ManagedObjectReference `json:"references"           yaml:"references"`
	Statistics *PageStatistics          `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// ManagedObjectListParams filters GET /inventory/managedObjects.
type ManagedObjectListParams struct {
	PageParams

	IDs               []string
	Type              *string
	FragmentType      *string
	Owner             *string
	Text              *string
	Query             *string
	Q                 *string
	ChildAssetID      *string
	ChildDeviceID     *string
	ChildAdditionID   *string
	OnlyRoots         *bool
	WithChildren      *bool
	WithChildrenCount *bool
	WithParents       *bool
	SkipChildrenNames *bool
	WithGroups        *bool
}

// ManagedObjectGetParams controls the expansion of a single managed object.
type ManagedObjectGetParams struct {
	WithChildren      *bool
	WithChildrenCount *bool
	WithParents       *bool
	SkipChildrenNames *bool
}

// ManagedObjectDeleteParams controls the removal of dependent objects.
type ManagedObjectDeleteParams struct {
	Cascade        *bool
	ForceCascade   *bool
	WithDeviceUser *bool
}

// SupportedMeasurements lists the measurement fragment types of a device.
type SupportedMeasurements struct {
	Measurements []string `json:"c8y_SupportedMeasurements" yaml:"c8y_SupportedMeasurements"`
}

// SupportedSeries lists the measurement series of a device as
// "<fragment>.<series>".
type SupportedSeries struct {
	Series []string `json:"c8y_SupportedSeries" yaml:"c8y_SupportedSeries"`
}

// ChildKind selects one of the child reference collections of a managed
// object.
type ChildKind string

// Child reference collections.
const (
	ChildDevices   ChildKind = "childDevices"
	ChildAssets    ChildKind = "childAssets"
	ChildAdditions ChildKind = "childAdditions"
)

// Valid reports whether k names a child reference collection.
func (k ChildKind) Valid() bool {
	switch k {
	case ChildDevices, ChildAssets, ChildAdditions:
		return true
	}

	return false
}

// ChildReferenceListParams filters a child reference collection.
type ChildReferenceListParams struct {
	PageParams

	Query             *string
	WithChildren      *bool
	WithChildrenCount *bool
}

// Binary is the managed object describing a stored file.
type Binary struct {
	ID           string     `json:"id,omitempty"           yaml:"id,omitempty"`
	Self         string     `json:"self,omitempty"         yaml:"self,omitempty"`
	Name         string     `json:"name,omitempty"         yaml:"name,omitempty"`
	Type         string     `json:"type,omitempty"         yaml:"type,omitempty"`
	ContentType  string     `json:"contentType,omitempty"  yaml:"contentType,omitempty"`
	Length       int64      `json:"length,omitempty"       yaml:"length,omitempty"`
	Owner        string     `json:"owner,omitempty"        yaml:"owner,omitempty"`
	CreationTime *time.Time `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"  yaml:"lastUpdated,omitempty"`
	Fragments    Fragments  `json:"-"                      yaml:"-"`
}

var binaryKeys = jsonKeys(Binary{})

// MarshalJSON encodes the binary with its fragments inlined.
func (b Binary) MarshalJSON() ([]byte, error) {
	type alias Binary

	return marshalWithFragments(alias(b), b.Fragments, binaryKeys)
}

// UnmarshalJSON decodes the binary, collecting unknown properties into
// Fragments.
func (b *Binary) UnmarshalJSON(data []byte) error {
	type alias Binary

	fragments, err := unmarshalWithFragments(data, (*alias)(b), binaryKeys)
	if err != nil {
		return err
	}

	b.Fragments = fragments

	return nil
}

// BinaryCreate describes a file upload. Type is the file's media type.
type BinaryCreate struct {
	Name      string    `json:"name" yaml:"name"`
	Type      string    `json:"type" yaml:"type"`
	Fragments Fragments `json:"-"    yaml:"-"`
}

// MarshalJSON encodes the upload description with its fragments inlined.
func (b BinaryCreate) MarshalJSON() ([]byte, error) {
	type alias BinaryCreate

	return marshalWithFragments(alias(b), b.Fragments, binaryKeys)
}

// BinaryCollection is a page of stored files.
type BinaryCollection struct {
	CollectionLinks

	ManagedObjects []Binary        `json:"managedObjects"       yaml:"managedObjects"`
	Statistics     *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// BinaryListParams filters GET /inventory/binaries.
type BinaryListParams struct {
	PageParams

	IDs             []string
	Type            *string
	Owner           *string
	ChildAdditionID *string
	ChildAssetID    *string
	ChildDeviceID   *string
}

// ManagedObjectsClient defines operations for inventory managed objects.
type ManagedObjectsClient interface {
	List(ctx context.Context, params *ManagedObjectListParams) (*ManagedObjectCollection, error)
	Get(ctx context.Context, id string, params *ManagedObjectGetParams) (*ManagedObject, error)
	Create(ctx context.Context, request *ManagedObjectCreate, opts ...CallOption) (*ManagedObject, error)
	Update(ctx context.Context, id string, request *ManagedObjectUpdate, opts ...CallOption) (*ManagedObject, error)
	Delete(ctx context.Context, id string, params *ManagedObjectDeleteParams, opts ...CallOption) error
	GetSupportedMeasurements(ctx context.Context, id string) (*SupportedMeasurements, error)
	GetSupportedSeries(ctx context.Context, id string) (*SupportedSeries, error)
}

// ChildReferencesClient defines operations for child device, asset, and
// addition references.
type ChildReferencesClient interface {
	List(ctx context.Context, parentID string, kind ChildKind, params *ChildReferenceListParams) (*ManagedObjectReferenceCollection, error)
	Assign(ctx context.Context, parentID string, kind ChildKind, childID string, opts ...CallOption) (*ManagedObjectReference, error)
	Get(ctx context.Context, parentID string, kind ChildKind, childID string) (*ManagedObjectReference, error)
	Unassign(ctx context.Context, parentID string, kind ChildKind, childID string, opts ...CallOption) error
}

// InventoryBinariesClient defines operations for files stored in the
// inventory.
type InventoryBinariesClient interface {
	List(ctx context.Context, params *BinaryListParams) (*BinaryCollection, error)
	Upload(ctx context.Context, object *BinaryCreate, filename string, content []byte) (*Binary, error)
	Download(ctx context.Context, id string) ([]byte, error)
	Replace(ctx context.Context, id string, contentType string, content []byte) (*Binary, error)
	Delete(ctx context.Context, id string) error
}
