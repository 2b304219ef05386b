package c8y

import (
	"context"
	"time"
)

// Event represents a device event.
type Event struct {
	ID           string     `json:"id,omitempty"           yaml:"id,omitempty"`
	Self         string     `json:"self,omitempty"         yaml:"self,omitempty"`
	Type         string     `json:"type,omitempty"         yaml:"type,omitempty"`
	Text         string     `json:"text,omitempty"         yaml:"text,omitempty"`
	Time         *time.Time `json:"time,omitempty"         yaml:"time,omitempty"`
	CreationTime *time.Time `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"  yaml:"lastUpdated,omitempty"`
	Source       ObjectRef  `json:"source"                 yaml:"source"`
	Fragments    Fragments  `json:"-"                      yaml:"-"`
}

var eventKeys = jsonKeys(Event{})

// MarshalJSON encodes the event with its fragments inlined.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event

	return marshalWithFragments(alias(e), e.Fragments, eventKeys)
}

// UnmarshalJSON decodes the event, collecting unknown properties into
// Fragments.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event

	fragments, err := unmarshalWithFragments(data, (*alias)(e), eventKeys)
	if err != nil {
		return err
	}

	e.Fragments = fragments

	return nil
}

// EventCreate is the writable subset of an event accepted on create.
type EventCreate struct {
	Type      string    `json:"type"   yaml:"type"`
	Text      string    `json:"text"   yaml:"text"`
	Time      time.Time `json:"time"   yaml:"time"`
	Source    ObjectRef `json:"source" yaml:"source"`
	Fragments Fragments `json:"-"      yaml:"-"`
}

// MarshalJSON encodes the event with its fragments inlined.
func (e EventCreate) MarshalJSON() ([]byte, error) {
	type alias EventCreate

	return marshalWithFragments(alias(e), e.Fragments, eventKeys)
}

// EventUpdate is the writable subset of an event accepted on update. Type,
// time, and source cannot be changed.
type EventUpdate struct {
	Text      *string   `json:"text,omitempty" yaml:"text,omitempty"`
	Fragments Fragments `json:"-"              yaml:"-"`
}

// MarshalJSON encodes the update with its fragments inlined.
func (e EventUpdate) MarshalJSON() ([]byte, error) {
	type alias EventUpdate

	return marshalWithFragments(alias(e), e.Fragments, eventKeys)
}

// EventCollection is a page of events.
type EventCollection struct {
	CollectionLinks

	Events     []Event         `json:"events"               yaml:"events"`
	Statistics *PageStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

// EventListParams filters GET /event/events.
type EventListParams struct {
	PageParams

	Source            *string
	Type              *string
	FragmentType      *string
	FragmentValue     *string
	DateFrom          *time.Time
	DateTo            *time.Time
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	LastUpdatedFrom   *time.Time
	LastUpdatedTo     *time.Time
	WithSourceAssets  *bool
	WithSourceDevices *bool
	Revert            *bool
}

// EventDeleteParams selects the events removed by DeleteCollection.
type EventDeleteParams struct {
	Source       *string
	Type         *string
	FragmentType *string
	DateFrom     *time.Time
	DateTo       *time.Time
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// EventBinary describes the attachment of an event.
type EventBinary struct {
	Self    string     `json:"self,omitempty"    yaml:"self,omitempty"`
	Source  string     `json:"source,omitempty"  yaml:"source,omitempty"`
	Name    string     `json:"name,omitempty"    yaml:"name,omitempty"`
	Type    string     `json:"type,omitempty"    yaml:"type,omitempty"`
	Length  int64      `json:"length,omitempty"  yaml:"length,omitempty"`
	Created *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
}

// EventsClient defines operations for events.
type EventsClient interface {
	List(ctx context.Context, params *EventListParams) (*EventCollection, error)
	Get(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, request *EventCreate, opts ...CallOption) (*Event, error)
	Update(ctx context.Context, id string, request *EventUpdate, opts ...CallOption) (*Event, error)
	Delete(ctx context.Context, id string, opts ...CallOption) error
	DeleteCollection(ctx context.Context, params *EventDeleteParams, opts ...CallOption) error
}

// EventBinariesClient defines operations for event attachments.
type EventBinariesClient interface {
	Upload(ctx context.Context, eventID string, filename string, contentType string, content []byte) (*EventBinary, error)
	Download(ctx context.Context, eventID string) ([]byte, error)
	Replace(ctx context.Context, eventID string, contentType string, content []byte) (*EventBinary, error)
	Delete(ctx context.Context, eventID string) error
}
