package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// Request describes one API call. It is built as a single value per call and
// is never modified by the Client.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is the resource path template, e.g. "/inventory/managedObjects/{id}".
	Path string
	// PathParams are substituted into Path in order.
	PathParams []PathParam
	// Query parameters in the order they are sent. Parameters without values
	// are omitted.
	Query []QueryParam
	// Accept is the Accept header value. It is required.
	Accept string
	// Headers are additional request headers. Empty values are omitted.
	Headers http.Header
	// Body is the encoded request body.
	Body []byte
	// ContentType is the media type of Body.
	ContentType string
}

// PathParam is a named path template value.
type PathParam struct {
	Name  string
	Value string
}

// Param returns a path parameter.
func Param(name, value string) PathParam {
	return PathParam{Name: name, Value: value}
}

// QueryStyle selects how the values of a query parameter are written.
type QueryStyle int

const (
	// QueryScalar writes a single value: name=v.
	QueryScalar QueryStyle = iota
	// QueryCommaList joins values into one key: name=a,b,c.
	QueryCommaList
	// QueryRepeated repeats the key: name=a&name=b.
	QueryRepeated
)

// QueryParam is a query parameter with its encoding rule. A parameter with
// no values is not sent at all.
type QueryParam struct {
	Name   string
	Values []string
	Style  QueryStyle
}

// QueryString returns a scalar parameter, omitted when v is nil.
func QueryString(name string, v *string) QueryParam {
	if v == nil {
		return QueryParam{Name: name}
	}

	return QueryParam{Name: name, Values: []string{*v}}
}

// QueryValue returns a scalar parameter for a string-kinded value, omitted
// when v is nil.
func QueryValue[T ~string](name string, v *T) QueryParam {
	if v == nil {
		return QueryParam{Name: name}
	}

	return QueryParam{Name: name, Values: []string{string(*v)}}
}

// QueryRequired returns a scalar parameter that is always sent.
func QueryRequired(name, v string) QueryParam {
	return QueryParam{Name: name, Values: []string{v}}
}

// QueryBool returns a scalar parameter, omitted when v is nil.
func QueryBool(name string, v *bool) QueryParam {
	if v == nil {
		return QueryParam{Name: name}
	}

	return QueryParam{Name: name, Values: []string{strconv.FormatBool(*v)}}
}

// QueryInt returns a scalar parameter, omitted when v is nil.
func QueryInt(name string, v *int) QueryParam {
	if v == nil {
		return QueryParam{Name: name}
	}

	return QueryParam{Name: name, Values: []string{strconv.Itoa(*v)}}
}

// QueryTime returns a scalar timestamp parameter, omitted when v is nil.
func QueryTime(name string, v *time.Time) QueryParam {
	if v == nil {
		return QueryParam{Name: name}
	}

	return QueryParam{Name: name, Values: []string{v.Format(constants.TimeFormat)}}
}

// QueryCSV returns a comma joined list parameter, omitted when values is
// empty.
func QueryCSV[T ~string](name string, values []T) QueryParam {
	return QueryParam{Name: name, Values: toStrings(values), Style: QueryCommaList}
}

// QueryMulti returns a repeated key list parameter, omitted when values is
// empty.
func QueryMulti[T ~string](name string, values []T) QueryParam {
	return QueryParam{Name: name, Values: toStrings(values), Style: QueryRepeated}
}

// PageQuery returns the paging parameters of p.
func PageQuery(p *c8y.PageParams) []QueryParam {
	if p == nil {
		return nil
	}

	return []QueryParam{
		QueryInt("currentPage", p.CurrentPage),
		QueryInt("pageSize", p.PageSize),
		QueryBool("withTotalPages", p.WithTotalPages),
		QueryBool("withTotalElements", p.WithTotalElements),
	}
}

func toStrings[T ~string](values []T) []string {
	if len(values) == 0 {
		return nil
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}

	return out
}

// ExpandPath substitutes params into template. Every parameter must match a
// placeholder, every placeholder must be matched, and values must not be
// empty. Values are escaped as path segments.
func ExpandPath(template string, params []PathParam) (string, error) {
	path := template

	for _, param := range params {
		placeholder := "{" + param.Name + "}"
		if !strings.Contains(path, placeholder) {
			return "", fmt.Errorf("%w: %w: %q in %s", c8y.ErrInvalidRequest, c8y.ErrUnknownPathParameter, param.Name, template)
		}

		if param.Value == "" {
			return "", fmt.Errorf("%w: %w: %q is empty", c8y.ErrInvalidRequest, c8y.ErrMissingPathParameter, param.Name)
		}

		path = strings.ReplaceAll(path, placeholder, url.PathEscape(param.Value))
	}

	if start := strings.IndexByte(path, '{'); start >= 0 {
		name := path[start:]
		if end := strings.IndexByte(name, '}'); end >= 0 {
			name = name[:end+1]
		}

		return "", fmt.Errorf("%w: %w: %s in %s", c8y.ErrInvalidRequest, c8y.ErrMissingPathParameter, name, template)
	}

	return path, nil
}

// EncodeQuery writes params as a query string, in order. Parameters without
// values produce nothing.
func EncodeQuery(params []QueryParam) string {
	var sb strings.Builder

	for _, param := range params {
		if len(param.Values) == 0 {
			continue
		}

		switch param.Style {
		case QueryCommaList:
			escaped := make([]string, len(param.Values))
			for i, v := range param.Values {
				escaped[i] = url.QueryEscape(v)
			}

			writePair(&sb, param.Name, strings.Join(escaped, ","))
		case QueryRepeated:
			for _, v := range param.Values {
				writePair(&sb, param.Name, url.QueryEscape(v))
			}
		default:
			writePair(&sb, param.Name, url.QueryEscape(param.Values[0]))
		}
	}

	return sb.String()
}

func writePair(sb *strings.Builder, name, escapedValue string) {
	if sb.Len() > 0 {
		sb.WriteByte('&')
	}

	sb.WriteString(url.QueryEscape(name))
	sb.WriteByte('=')
	sb.WriteString(escapedValue)
}

// Target returns the relative request URI of r: the expanded path plus the
// encoded query.
func (r *Request) Target() (string, error) {
	path, err := ExpandPath(r.Path, r.PathParams)
	if err != nil {
		return "", err
	}

	query := EncodeQuery(r.Query)
	if query == "" {
		return path, nil
	}

	return path + "?" + query, nil
}
