package c8y

import (
	"time"
)

// ProcessingMode controls how the platform processes inbound data.
type ProcessingMode string

// Processing modes accepted in the X-Cumulocity-Processing-Mode header.
const (
	ProcessingModePersistent ProcessingMode = "PERSISTENT"
	ProcessingModeTransient  ProcessingMode = "TRANSIENT"
	ProcessingModeQuiescent  ProcessingMode = "QUIESCENT"
	ProcessingModeCEP        ProcessingMode = "CEP"
)

// CallOptions holds per-call settings for mutating endpoints.
type CallOptions struct {
	// ProcessingMode is sent as X-Cumulocity-Processing-Mode when not empty.
	ProcessingMode ProcessingMode
}

// CallOption customizes a single call.
type CallOption func(*CallOptions)

// WithProcessingMode sets the processing mode header for one call.
func WithProcessingMode(mode ProcessingMode) CallOption {
	return func(o *CallOptions) {
		o.ProcessingMode = mode
	}
}

// ApplyCallOptions folds the given options into a CallOptions value.
func ApplyCallOptions(opts []CallOption) CallOptions {
	var options CallOptions

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	return options
}

// PageStatistics describes the page returned by a collection endpoint.
type PageStatistics struct {
	CurrentPage   int  `json:"currentPage"             yaml:"currentPage"`
	PageSize      int  `json:"pageSize"                yaml:"pageSize"`
	TotalPages    *int `json:"totalPages,omitempty"    yaml:"totalPages,omitempty"`
	TotalElements *int `json:"totalElements,omitempty" yaml:"totalElements,omitempty"`
}

// CollectionLinks are the navigation links of a collection response.
type CollectionLinks struct {
	Self string `json:"self,omitempty" yaml:"self,omitempty"`
	Next string `json:"next,omitempty" yaml:"next,omitempty"`
	Prev string `json:"prev,omitempty" yaml:"prev,omitempty"`
}

// PageParams are the paging parameters shared by all list endpoints.
type PageParams struct {
	CurrentPage       *int
	PageSize          *int
	WithTotalPages    *bool
	WithTotalElements *bool
}

// ObjectRef references a managed object by id, as used for measurement,
// event, and alarm sources.
type ObjectRef struct {
	ID   string `json:"id"             yaml:"id"`
	Self string `json:"self,omitempty" yaml:"self,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Source returns a reference to the managed object with the given id.
func Source(id string) ObjectRef {
	return ObjectRef{ID: id}
}

// DateRange bounds a query on a timestamp attribute.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Int returns a pointer to i.
func Int(i int) *int {
	return &i
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time {
	return &t
}
