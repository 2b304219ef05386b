package c8y

import "context"

// ExternalID maps an external identifier to a managed object.
type ExternalID struct {
	Self          string    `json:"self,omitempty" yaml:"self,omitempty"`
	ExternalID    string    `json:"externalId"     yaml:"externalId"`
	Type          string    `json:"type"           yaml:"type"`
	ManagedObject ObjectRef `json:"managedObject"  yaml:"managedObject"`
}

// ExternalIDCreate is the body of a new external id.
type ExternalIDCreate struct {
	ExternalID string `json:"externalId" yaml:"externalId"`
	Type       string `json:"type"       yaml:"type"`
}

// ExternalIDCollection is a page of external ids.
type ExternalIDCollection struct {
	CollectionLinks

	ExternalIDs []ExternalID    `json:"externalIds"          yaml:"externalIds"`
	Statistics  *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// ExternalIDsClient defines operations for the identity service.
type ExternalIDsClient interface {
	List(ctx context.Context, globalID string, params *PageParams) (*ExternalIDCollection, error)
	Create(ctx context.Context, globalID string, request *ExternalIDCreate) (*ExternalID, error)
	Get(ctx context.Context, idType, externalID string) (*ExternalID, error)
	Delete(ctx context.Context, idType, externalID string) error
}
