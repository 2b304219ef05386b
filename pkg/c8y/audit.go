package c8y

import (
	"context"
	"encoding/json"
	"time"
)

// AuditChange describes one attribute change recorded by an audit record.
type AuditChange struct {
	Attribute     string          `json:"attribute"               yaml:"attribute"`
	Type          string          `json:"type,omitempty"          yaml:"type,omitempty"`
	ChangeType    string          `json:"changeType,omitempty"    yaml:"changeType,omitempty"`
	PreviousValue json.RawMessage `json:"previousValue,omitempty" yaml:"-"`
	NewValue      json.RawMessage `json:"newValue,omitempty"      yaml:"-"`
}

// AuditRecord represents an entry of the audit log.
type AuditRecord struct {
	ID           string        `json:"id,omitempty"           yaml:"id,omitempty"`
	Self         string        `json:"self,omitempty"         yaml:"self,omitempty"`
	Type         string        `json:"type,omitempty"         yaml:"type,omitempty"`
	Activity     string        `json:"activity,omitempty"     yaml:"activity,omitempty"`
	Text         string        `json:"text,omitempty"         yaml:"text,omitempty"`
	Severity     string        `json:"severity,omitempty"     yaml:"severity,omitempty"`
	User         string        `json:"user,omitempty"         yaml:"user,omitempty"`
	Application  string        `json:"application,omitempty"  yaml:"application,omitempty"`
	Time         *time.Time    `json:"time,omitempty"         yaml:"time,omitempty"`
	CreationTime *time.Time    `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	Source       ObjectRef     `json:"source"                 yaml:"source"`
	Changes      []AuditChange `json:"changes,omitempty"      yaml:"changes,omitempty"`
	Fragments    Fragments     `json:"-"                      yaml:"-"`
}

var auditRecordKeys = jsonKeys(AuditRecord{})

// MarshalJSON encodes the audit record with its fragments inlined.
func (a AuditRecord) MarshalJSON() ([]byte, error) {
	type alias AuditRecord

	return marshalWithFragments(alias(a), a.Fragments, auditRecordKeys)
}

// UnmarshalJSON decodes the audit record, collecting unknown properties into
// Fragments.
func (a *AuditRecord) UnmarshalJSON(data []byte) error {
	type alias AuditRecord

	fragments, err := unmarshalWithFragments(data, (*alias)(a), auditRecordKeys)
	if err != nil {
		return err
	}

	a.Fragments = fragments

	return nil
}

// AuditRecordCreate is the writable subset of an audit record.
type AuditRecordCreate struct {
	Type        string    `json:"type"                  yaml:"type"`
	Activity    string    `json:"activity"              yaml:"activity"`
	Text        string    `json:"text"                  yaml:"text"`
	Time        time.Time `json:"time"                  yaml:"time"`
	Source      ObjectRef `json:"source"                yaml:"source"`
	Severity    string    `json:"severity,omitempty"    yaml:"severity,omitempty"`
	Application string    `json:"application,omitempty" yaml:"application,omitempty"`
	Fragments   Fragments `json:"-"                     yaml:"-"`
}

// MarshalJSON encodes the audit record with its fragments inlined.
func (a AuditRecordCreate) MarshalJSON() ([]byte, error) {
	type alias AuditRecordCreate

	return marshalWithFragments(alias(a), a.Fragments, auditRecordKeys)
}

// AuditRecordCollection is a page of audit records.
type AuditRecordCollection struct {
	CollectionLinks

	AuditRecords []AuditRecord   `json:"auditRecords"         yaml:"auditRecords"`
	Statistics   *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// AuditRecordListParams filters GET /audit/auditRecords.
type AuditRecordListParams struct {
	PageParams

	Source      *string
	Type        *string
	User        *string
	Application *string
	DateFrom    *time.Time
	DateTo      *time.Time
	Revert      *bool
}

// AuditRecordsClient defines operations for audit records.
type AuditRecordsClient interface {
	List(ctx context.Context, params *AuditRecordListParams) (*AuditRecordCollection, error)
	Get(ctx context.Context, id string) (*AuditRecord, error)
	Create(ctx context.Context, request *AuditRecordCreate) (*AuditRecord, error)
}
