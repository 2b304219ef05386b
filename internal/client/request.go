package client

import (
	"time"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// callHeaders returns the per-call headers selected by opts, or nil.
func callHeaders(opts []c8y.CallOption) map[string][]string {
	options := c8y.ApplyCallOptions(opts)
	if options.ProcessingMode == "" {
		return nil
	}

	return map[string][]string{
		constants.HeaderProcessingMode: {string(options.ProcessingMode)},
	}
}

// withPaging appends the paging parameters of p to query.
func withPaging(query []internalhttp.QueryParam, p *c8y.PageParams) []internalhttp.QueryParam {
	return append(query, internalhttp.PageQuery(p)...)
}

func pageQuery(p *c8y.PageParams) []internalhttp.QueryParam {
	return internalhttp.PageQuery(p)
}

// nonZero returns nil for the zero time so it is left out of the query.
func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
