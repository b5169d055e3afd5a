package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"resilience-go/pkg/failure"
	"resilience-go/pkg/logger"
	"resilience-go/pkg/retry"
)

// Client wraps fasthttp with retry, failure classification and an
// optional circuit breaker. Each call site supplies an operation context
// key so retry counters and the failure log stay per-site.
type Client struct {
	http    *fasthttp.Client
	exec    *retry.Executor
	breaker *retry.CircuitBreaker
	timeout time.Duration
	log     *logger.Logger
}

type Config struct {
	Timeout      time.Duration
	MaxFailures  int // breaker threshold; zero disables the breaker
	ResetTimeout time.Duration
	Dial         fasthttp.DialFunc // nil means default TCP dial
}

func New(exec *retry.Executor, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			Dial:         cfg.Dial,
		},
		exec:    exec,
		timeout: timeout,
		log:     logger.GetLogger().WithField("component", "http_client"),
	}
	if cfg.MaxFailures > 0 {
		c.breaker = retry.NewCircuitBreaker(cfg.MaxFailures, cfg.ResetTimeout)
	}
	return c
}

// Get fetches targetURL, retrying per the executor's policy under opContext.
func (c *Client) Get(ctx context.Context, opContext, targetURL string) ([]byte, error) {
	res, err := retry.Do(ctx, c.exec, opContext, func(ctx context.Context) ([]byte, error) {
		return c.do(opContext, fasthttp.MethodGet, targetURL, nil, "")
	})
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// PostJSON sends body as application/json and returns the response body.
func (c *Client) PostJSON(ctx context.Context, opContext, targetURL string, body []byte) ([]byte, error) {
	res, err := retry.Do(ctx, c.exec, opContext, func(ctx context.Context) ([]byte, error) {
		return c.do(opContext, fasthttp.MethodPost, targetURL, body, "application/json")
	})
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

func (c *Client) do(opContext, method, targetURL string, body []byte, contentType string) ([]byte, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			// Component failures are never retried, so an open breaker
			// short-circuits straight to the fallback action.
			return nil, failure.NewWithContext(failure.CategoryComponent, err.Error(), opContext)
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(targetURL)
	req.Header.SetMethod(method)
	if contentType != "" {
		req.Header.SetContentType(contentType)
	}
	if body != nil {
		req.SetBody(body)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		f := failure.NewWithContext(failure.CategoryNetwork, err.Error(), opContext)
		c.record(f)
		c.log.WithError(err).WithField("context", opContext).Debug("Transport error")
		return nil, f
	}

	if resp.StatusCode() >= fasthttp.StatusBadRequest {
		f := classifyStatus(opContext, resp.StatusCode())
		c.record(f)
		c.log.WithFields(map[string]interface{}{
			"context": opContext,
			"status":  resp.StatusCode(),
		}).Debug("Request failed")
		return nil, f
	}

	c.record(nil)
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

func (c *Client) record(err error) {
	if c.breaker != nil {
		c.breaker.RecordResult(err)
	}
}

// classifyStatus maps HTTP status codes onto failure categories.
func classifyStatus(opContext string, status int) *failure.Failure {
	var category failure.Category
	switch {
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		category = failure.CategoryAuthentication
	case status == fasthttp.StatusBadRequest || status == fasthttp.StatusUnprocessableEntity:
		category = failure.CategoryValidation
	case status >= fasthttp.StatusInternalServerError:
		category = failure.CategoryNetwork
	default:
		category = failure.CategoryComponent
	}
	return failure.NewWithContext(category, fmt.Sprintf("HTTP %d", status), opContext)
}
