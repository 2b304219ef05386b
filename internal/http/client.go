package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

const tracerName = "github.com/fivetwenty-io/c8y-client/internal/http"

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Response is the raw result of a call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends Requests. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	adapter        c8y.Adapter
	httpClient     *retryablehttp.Client
	baseHTTPClient *http.Client
	transport      http.RoundTripper
	timeout        time.Duration
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	logger         Logger
	debug          bool
	userAgent      string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient sends requests through httpClient. Its transport is wrapped
// for tracing; httpClient itself is not modified.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.baseHTTPClient = httpClient
	}
}

// WithTransport sets the transport of the default HTTP client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithTracerProvider sets the tracer provider. The global provider is used
// otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracerProvider = provider
	}
}

// NewClient creates a Client that sends requests to baseURL. adapter may be
// nil; when set it runs after base URL binding on every request.
func NewClient(baseURL string, adapter c8y.Adapter, opts ...Option) (*Client, error) {
	base, err := c8y.BaseURLAdapter(baseURL)
	if err != nil {
		return nil, err
	}

	client := &Client{
		adapter:   c8y.ChainAdapters(base, adapter),
		timeout:   constants.DefaultHTTPTimeout,
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.tracerProvider == nil {
		client.tracerProvider = otel.GetTracerProvider()
	}

	client.tracer = client.tracerProvider.Tracer(tracerName)
	client.httpClient = client.newRetryableClient()

	return client, nil
}

// newRetryableClient builds the executor. Requests are attempted exactly
// once: RetryMax is 0, CheckRetry never asks for another attempt, and the
// passthrough error handler returns the single response or error unchanged.
func (c *Client) newRetryableClient() *retryablehttp.Client {
	var httpClient http.Client

	if c.baseHTTPClient != nil {
		httpClient = *c.baseHTTPClient
	} else {
		httpClient = http.Client{Timeout: c.timeout, Transport: c.transport}
	}

	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	httpClient.Transport = otelhttp.NewTransport(base,
		otelhttp.WithTracerProvider(c.tracerProvider),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
	)

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &httpClient
	retryClient.RetryMax = 0
	retryClient.CheckRetry = checkNoRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if c.debug && c.logger != nil {
		retryClient.Logger = &leveledLogger{logger: c.logger}
	}

	return retryClient
}

func checkNoRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Do sends req exactly once. On a 2xx status the response is returned with a
// nil error. On any other status the response is returned together with a
// *c8y.ServerError when the body is the platform error envelope, or a
// *c8y.HTTPError otherwise. A failed exchange is a *c8y.TransportError and
// yields no response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path, trace.WithAttributes(
		attribute.String("c8y.method", req.Method),
		attribute.String("c8y.path_template", req.Path),
		attribute.String("c8y.processing_mode", req.Headers.Get(constants.HeaderProcessingMode)),
	))
	defer span.End()

	resp, err := c.do(ctx, req)
	if resp != nil {
		span.SetAttributes(attribute.Int("c8y.status_code", resp.StatusCode))
	}

	recordStatus(span, err)

	return resp, err
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	retryReq, err := retryablehttp.FromRequest(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", c8y.ErrInvalidRequest, err)
	}

	start := time.Now()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": httpReq.Method,
			"url":    httpReq.URL.Redacted(),
		})
	}

	httpResp, err := c.httpClient.Do(retryReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, &c8y.TransportError{Method: httpReq.Method, URL: httpReq.URL.Redacted(), Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &c8y.TransportError{Method: httpReq.Method, URL: httpReq.URL.Redacted(), Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":   httpReq.Method,
			"url":      httpReq.URL.Redacted(),
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(body),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, decodeError(httpResp, body)
	}

	return resp, nil
}

// buildRequest turns req into an *http.Request and passes it through the
// adapter once.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	if req.Accept == "" {
		return nil, fmt.Errorf("%w: no Accept header for %s %s", c8y.ErrInvalidRequest, req.Method, req.Path)
	}

	target, err := req.Target()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", c8y.ErrInvalidRequest, err)
	}

	for name, values := range req.Headers {
		for _, value := range values {
			if value != "" {
				httpReq.Header.Add(name, value)
			}
		}
	}

	httpReq.Header.Set(constants.HeaderAccept, req.Accept)

	if req.Body != nil && req.ContentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, req.ContentType)
	}

	if c.userAgent != "" {
		httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	httpReq, err = c.adapter.Adapt(httpReq)
	if err != nil {
		return nil, fmt.Errorf("adapting request: %w", err)
	}

	if httpReq.URL.Host == "" {
		return nil, fmt.Errorf("%w: %w", c8y.ErrInvalidRequest, c8y.ErrNoHostInURL)
	}

	return httpReq, nil
}

// decodeError builds the error of a non-2xx response: the structured error
// when the body is the platform envelope, the raw response otherwise.
func decodeError(resp *http.Response, body []byte) error {
	serverErr, ok := c8y.ParseServerError(resp.StatusCode, body)
	if ok {
		return serverErr
	}

	return &c8y.HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}
}

func recordStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// leveledLogger forwards the executor's messages to the client logger at
// debug level.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		result[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return result
}
