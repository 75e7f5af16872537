// Package suggestapi talks to the remote accessibility analysis service.
package suggestapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/httpclient"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
	"github.com/iamvenkatgiri/AccessAI/internal/usecase/extract"
)

// RequestIDHeader correlates a submission with server logs.
const RequestIDHeader = "X-Request-ID"

type Client struct {
	endpoint string
	path     string
	exec     *httpclient.Executor
	log      *slog.Logger
	newID    func() string
}

type Option func(*Client)

func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

// WithSuggestionsPath sets the JSONPath of the suggestion list in responses.
func WithSuggestionsPath(p string) Option {
	return func(c *Client) { c.path = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRequestIDs overrides request ID generation (tests).
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		path:     extract.DefaultPath,
		exec:     httpclient.NewExecutor(),
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a Client from the api section of accessai.yaml.
func NewFromConfig(cfg domain.APIConfig, log *slog.Logger) *Client {
	hc := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	hc.InsecureSkipVerify = cfg.InsecureSkipVerify

	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(hc)),
		httpclient.WithTimeout(hc.Timeout),
	)

	opts := []Option{WithExecutor(exec), WithSuggestionsPath(cfg.SuggestionsPath)}
	if log != nil {
		opts = append(opts, WithLogger(log))
	}
	return New(cfg.URL, opts...)
}

var _ ports.SuggestionService = (*Client)(nil)

// Analyze posts req and decodes the suggestion list.
// A non-2xx reply is not an error: it yields an empty list and the status code.
func (c *Client) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResponse, error) {
	const op = "suggestapi.analyze"

	httpReq, err := httpclient.BuildAnalysisRequest(ctx, c.endpoint, req)
	if err != nil {
		return domain.AnalysisResponse{}, err
	}

	id := c.newID()
	httpReq.Header.Set(RequestIDHeader, id)

	c.log.Debug("suggest.request", "kind", string(req.Kind), "request_id", id, "url", c.endpoint)

	data, err := c.exec.Do(ctx, httpReq)
	out := domain.AnalysisResponse{
		StatusCode:  data.Status,
		RequestID:   id,
		Duration:    data.Duration,
		Suggestions: []domain.Suggestion{},
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		c.log.Warn("suggest.failed", "kind", string(req.Kind), "request_id", id, "error", err)
		return out, &domain.OpError{Op: op, Kind: domain.KindRemote, Path: c.endpoint, Err: fmt.Errorf("%w: %w", domain.ErrRemote, err)}
	}

	if !out.OK() {
		c.log.Warn("suggest.status", "kind", string(req.Kind), "request_id", id, "status", data.Status)
		return out, nil
	}

	list, err := extract.Suggestions(data.BodyBytes, c.path)
	if err != nil {
		c.log.Warn("suggest.decode_failed", "kind", string(req.Kind), "request_id", id, "error", err)
		return out, &domain.OpError{Op: op, Kind: domain.KindRemote, Path: c.endpoint, Err: fmt.Errorf("%w: %v", domain.ErrRemote, err)}
	}
	out.Suggestions = list

	c.log.Info("suggest.ok",
		"kind", string(req.Kind),
		"request_id", id,
		"status", data.Status,
		"count", len(list),
		"duration_ms", data.Duration.Milliseconds(),
	)
	return out, nil
}
