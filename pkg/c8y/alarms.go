package c8y

import (
	"context"
	"time"
)

// AlarmStatus is the lifecycle state of an alarm.
type AlarmStatus string

// Alarm statuses.
const (
	AlarmStatusActive       AlarmStatus = "ACTIVE"
	AlarmStatusAcknowledged AlarmStatus = "ACKNOWLEDGED"
	AlarmStatusCleared      AlarmStatus = "CLEARED"
)

// AlarmSeverity is the severity of an alarm.
type AlarmSeverity string

// Alarm severities.
const (
	AlarmSeverityCritical AlarmSeverity = "CRITICAL"
	AlarmSeverityMajor    AlarmSeverity = "MAJOR"
	AlarmSeverityMinor    AlarmSeverity = "MINOR"
	AlarmSeverityWarning  AlarmSeverity = "WARNING"
)

// Alarm represents a device alarm.
type Alarm struct {
	ID                  string        `json:"id,omitempty"                  yaml:"id,omitempty"`
	Self                string        `json:"self,omitempty"                yaml:"self,omitempty"`
	Type                string        `json:"type,omitempty"                yaml:"type,omitempty"`
	Text                string        `json:"text,omitempty"                yaml:"text,omitempty"`
	Status              AlarmStatus   `json:"status,omitempty"              yaml:"status,omitempty"`
	Severity            AlarmSeverity `json:"severity,omitempty"            yaml:"severity,omitempty"`
	Count               int           `json:"count,omitempty"               yaml:"count,omitempty"`
	Time                *time.Time    `json:"time,omitempty"                yaml:"time,omitempty"`
	FirstOccurrenceTime *time.Time    `json:"firstOccurrenceTime,omitempty" yaml:"firstOccurrenceTime,omitempty"`
	CreationTime        *time.Time    `json:"creationTime,omitempty"        yaml:"creationTime,omitempty"`
	LastUpdated         *time.Time    `json:"lastUpdated,omitempty"         yaml:"lastUpdated,omitempty"`
	Source              ObjectRef     `json:"source"                        yaml:"source"`
	Fragments           Fragments     `json:"-"                             yaml:"-"`
}

var alarmKeys = jsonKeys(Alarm{})

// MarshalJSON encodes the alarm with its fragments inlined.
func (a Alarm) MarshalJSON() ([]byte, error) {
	type alias Alarm

	return marshalWithFragments(alias(a), a.Fragments, alarmKeys)
}

// UnmarshalJSON decodes the alarm, collecting unknown properties into
// Fragments.
func (a *Alarm) UnmarshalJSON(data []byte) error {
	type alias Alarm

	fragments, err := unmarshalWithFragments(data, (*alias)(a), alarmKeys)
	if err != nil {
		return err
	}

	a.Fragments = fragments

	return nil
}

// AlarmCreate is the writable subset of an alarm accepted on create.
type AlarmCreate struct {
	Type      string        `json:"type"             yaml:"type"`
	Text      string        `json:"text"             yaml:"text"`
	Severity  AlarmSeverity `json:"severity"         yaml:"severity"`
	Status    AlarmStatus   `json:"status,omitempty" yaml:"status,omitempty"`
	Time      time.Time     `json:"time"             yaml:"time"`
	Source    ObjectRef     `json:"source"           yaml:"source"`
	Fragments Fragments     `json:"-"                yaml:"-"`
}

// MarshalJSON encodes the alarm with its fragments inlined.
func (a AlarmCreate) MarshalJSON() ([]byte, error) {
	type alias AlarmCreate

	return marshalWithFragments(alias(a), a.Fragments, alarmKeys)
}

// AlarmUpdate is the writable subset of an alarm accepted on update.
type AlarmUpdate struct {
	Text      *string        `json:"text,omitempty"     yaml:"text,omitempty"`
	Status    *AlarmStatus   `json:"status,omitempty"   yaml:"status,omitempty"`
	Severity  *AlarmSeverity `json:"severity,omitempty" yaml:"severity,omitempty"`
	Fragments Fragments      `json:"-"                  yaml:"-"`
}

// MarshalJSON encodes the update with its fragments inlined.
func (a AlarmUpdate) MarshalJSON() ([]byte, error) {
	type alias AlarmUpdate

	return marshalWithFragments(alias(a), a.Fragments, alarmKeys)
}

// AlarmCollectionUpdate is the body of a bulk status change.
type AlarmCollectionUpdate struct {
	Status AlarmStatus `json:"status" yaml:"status"`
}

// AlarmCollection is a page of alarms.
type AlarmCollection struct {
	CollectionLinks

	Alarms     []Alarm         `json:"alarms"               yaml:"alarms"`
	Statistics *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// AlarmFilter selects alarms. Status, Severity, and Type are sent as comma
// separated lists.
type AlarmFilter struct {
	Source            *string
	Status            []AlarmStatus
	Severity          []AlarmSeverity
	Type              []string
	Resolved          *bool
	DateFrom          *time.Time
	DateTo            *time.Time
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	WithSourceAssets  *bool
	WithSourceDevices *bool
}

// AlarmListParams filters GET /alarm/alarms.
type AlarmListParams struct {
	PageParams
	AlarmFilter

	LastUpdatedFrom *time.Time
	LastUpdatedTo   *time.Time
}

// AlarmsClient defines operations for alarms.
type AlarmsClient interface {
	List(ctx context.Context, params *AlarmListParams) (*AlarmCollection, error)
	Get(ctx context.Context, id string) (*Alarm, error)
	Create(ctx context.Context, request *AlarmCreate, opts ...CallOption) (*Alarm, error)
	Update(ctx context.Context, id string, request *AlarmUpdate, opts ...CallOption) (*Alarm, error)
	UpdateCollection(ctx context.Context, filter *AlarmFilter, request *AlarmCollectionUpdate, opts ...CallOption) error
	DeleteCollection(ctx context.Context, filter *AlarmFilter, opts ...CallOption) error
	Count(ctx context.Context, filter *AlarmFilter) (int, error)
}
