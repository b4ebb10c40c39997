// Package gain talks to the gain-computation service: it sends listener
// positions, decodes per-channel gains, and keeps out-of-order responses from
// overwriting newer ones.
package gain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/surround-panner/internal/geometry"
)

// Path is the service endpoint for position queries.
const Path = "/api"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 64 << 10

// Request is the wire form of one position query.
type Request struct {
	X float64
	Y float64
}

// NewRequest normalizes pos against canvas into the wire convention.
func NewRequest(pos geometry.Position, canvas geometry.Canvas) (Request, error) {
	n, err := geometry.ToNormalized(pos, canvas.Radius)
	if err != nil {
		return Request{}, err
	}
	x, y := geometry.ToWire(n)
	return Request{X: x, Y: y}, nil
}

// Query encodes the request as URL parameters.
func (r Request) Query() url.Values {
	v := url.Values{}
	v.Set("x", strconv.FormatFloat(r.X, 'f', -1, 64))
	v.Set("y", strconv.FormatFloat(r.Y, 'f', -1, 64))
	return v
}

// Querier fetches gains for one request.
type Querier interface {
	Query(ctx context.Context, req Request) (Response, error)
}

// Client is the HTTP gain service client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for the service at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "gain-client").Logger(),
	}
}

// QueryPosition normalizes pos and fetches its gains.
func (c *Client) QueryPosition(ctx context.Context, pos geometry.Position, canvas geometry.Canvas) (Response, error) {
	req, err := NewRequest(pos, canvas)
	if err != nil {
		return Response{}, err
	}
	return c.Query(ctx, req)
}

// Query sends GET /api?x=..&y=.. and decodes the gains.
func (c *Client) Query(ctx context.Context, req Request) (Response, error) {
	u := c.baseURL + Path + "?" + req.Query().Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	id := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", id)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Response{}, fmt.Errorf("%w: reading body: %w", ErrNetwork, err)
	}

	out, err := DecodeResponse(body)
	if err != nil {
		return Response{}, err
	}

	c.log.Trace().
		Str("requestId", id).
		Float64("x", req.X).
		Float64("y", req.Y).
		Dur("took", time.Since(start)).
		Msg("Gain query done")
	return out, nil
}
