package c8y

import (
	"context"
	"time"
)

// OperationStatus is the execution state of a device operation.
type OperationStatus string

// Operation statuses.
const (
	OperationStatusPending    OperationStatus = "PENDING"
	OperationStatusExecuting  OperationStatus = "EXECUTING"
	OperationStatusSuccessful OperationStatus = "SUCCESSFUL"
	OperationStatusFailed     OperationStatus = "FAILED"
)

// Operation represents a device control operation.
type Operation struct {
	ID              string          `json:"id,omitempty"              yaml:"id,omitempty"`
	Self            string          `json:"self,omitempty"            yaml:"self,omitempty"`
	DeviceID        string          `json:"deviceId,omitempty"        yaml:"deviceId,omitempty"`
	DeviceName      string          `json:"deviceName,omitempty"      yaml:"deviceName,omitempty"`
	Description     string          `json:"description,omitempty"     yaml:"description,omitempty"`
	Status          OperationStatus `json:"status,omitempty"          yaml:"status,omitempty"`
	FailureReason   string          `json:"failureReason,omitempty"   yaml:"failureReason,omitempty"`
	BulkOperationID string          `json:"bulkOperationId,omitempty" yaml:"bulkOperationId,omitempty"`
	CreationTime    *time.Time      `json:"creationTime,omitempty"    yaml:"creationTime,omitempty"`
	Fragments       Fragments       `json:"-"                         yaml:"-"`
}

var operationKeys = jsonKeys(Operation{})

// MarshalJSON encodes the operation with its fragments inlined.
func (o Operation) MarshalJSON() ([]byte, error) {
	type alias Operation

	return marshalWithFragments(alias(o), o.Fragments, operationKeys)
}

// UnmarshalJSON decodes the operation, collecting unknown properties into
// Fragments.
func (o *Operation) UnmarshalJSON(data []byte) error {
	type alias Operation

	fragments, err := unmarshalWithFragments(data, (*alias)(o), operationKeys)
	if err != nil {
		return err
	}

	o.Fragments = fragments

	return nil
}

// OperationCreate is the writable subset of an operation accepted on create.
// The command itself is carried as a fragment (c8y_Restart, c8y_Command, ...).
type OperationCreate struct {
	DeviceID    string    `json:"deviceId"              yaml:"deviceId"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Fragments   Fragments `json:"-"                     yaml:"-"`
}

// MarshalJSON encodes the operation with its fragments inlined.
func (o OperationCreate) MarshalJSON() ([]byte, error) {
	type alias OperationCreate

	return marshalWithFragments(alias(o), o.Fragments, operationKeys)
}

// OperationUpdate is the writable subset of an operation accepted on update.
type OperationUpdate struct {
	Status        OperationStatus `json:"status"                  yaml:"status"`
	FailureReason *string         `json:"failureReason,omitempty" yaml:"failureReason,omitempty"`
	Fragments     Fragments       `json:"-"                       yaml:"-"`
}

// MarshalJSON encodes the update with its fragments inlined.
func (o OperationUpdate) MarshalJSON() ([]byte, error) {
	type alias OperationUpdate

	return marshalWithFragments(alias(o), o.Fragments, operationKeys)
}

// OperationCollection is a page of operations.
type OperationCollection struct {
	CollectionLinks

	Operations []Operation     `json:"operations"           yaml:"operations"`
	Statistics *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// OperationListParams filters GET /devicecontrol/operations.
type OperationListParams struct {
	PageParams

	DeviceID        *string
	AgentID         *string
	FragmentType    *string
	BulkOperationID *string
	Status          *OperationStatus
	DateFrom        *time.Time
	DateTo          *time.Time
	Revert          *bool
}

// OperationDeleteParams selects the operations removed by DeleteCollection.
type OperationDeleteParams struct {
	DeviceID *string
	AgentID  *string
	Status   *OperationStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// OperationsClient defines operations for device control operations.
type OperationsClient interface {
	List(ctx context.Context, params *OperationListParams) (*OperationCollection, error)
	Get(ctx context.Context, id string) (*Operation, error)
	Create(ctx context.Context, request *OperationCreate, opts ...CallOption) (*Operation, error)
	Update(ctx context.Context, id string, request *OperationUpdate, opts ...CallOption) (*Operation, error)
	DeleteCollection(ctx context.Context, params *OperationDeleteParams, opts ...CallOption) error
}
