package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// DoJSON sends req and decodes the 2xx body into a new T.
func DoJSON[T any](ctx context.Context, c *Client, req *Request) (*T, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var value T

	err = json.Unmarshal(resp.Body, &value)
	if err != nil {
		return nil, &c8y.DecodeError{Target: fmt.Sprintf("%T", value), Err: err}
	}

	return &value, nil
}

// DoRaw sends req and returns the 2xx body unchanged. An empty body is
// returned as an empty, non-nil slice.
func DoRaw(ctx context.Context, c *Client, req *Request) ([]byte, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.Body == nil {
		return []byte{}, nil
	}

	return resp.Body, nil
}

// DoNoContent sends req and discards the 2xx body.
func DoNoContent(ctx context.Context, c *Client, req *Request) error {
	_, err := c.Do(ctx, req)

	return err
}

// JSONBody encodes a write model before it is handed to the pipeline.
func JSONBody(source string, value interface{}) ([]byte, error) {
	body, err := json.Marshal(value)
	if err != nil {
		return nil, &c8y.EncodeError{Source: source, Err: err}
	}

	return body, nil
}
