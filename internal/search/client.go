package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/pders01/seek/internal/config"
	"github.com/pders01/seek/internal/debuglog"
	"github.com/pders01/seek/internal/validation"
)

const (
	globalPath = "/api/search"
	cityPath   = "/api/search_city"

	// maxResponseBytes caps how much of a response body is decoded.
	maxResponseBytes = 8 << 20

	probeCacheSize = 256

	requestIDHeader = "X-Request-ID"
)

// Client talks to the remote search service over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client

	// probes remembers image probe outcomes for the session.
	probes     *lru.Cache[string, bool]
	probeGroup singleflight.Group
}

func NewClient(cfg *config.Config) *Client {
	probes, _ := lru.New[string, bool](probeCacheSize)
	return &Client{
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		userAgent: cfg.API.UserAgent,
		client: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		probes: probes,
	}
}

// Endpoint returns the absolute URL, including parameters, that req is sent to.
func (c *Client) Endpoint(req Request) string {
	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("limit", strconv.Itoa(req.Limit))
	params.Set("score_threshold", validation.FormatScoreThreshold(req.ScoreThreshold))

	path := globalPath
	if req.Shape() == ShapeCity {
		path = cityPath
		params.Set("city", req.City)
	}

	return c.baseURL + path + "?" + params.Encode()
}

// Search issues req and returns the results in the order the service sent
// them. Every failure wraps ErrUnavailable. There is no retry.
func (c *Client) Search(ctx context.Context, req Request) ([]Result, error) {
	endpoint := c.Endpoint(req)
	requestID := uuid.NewString()
	log := debuglog.WithFields(map[string]interface{}{
		"request_id": requestID,
		"shape":      req.Shape().String(),
		"limit":      req.Limit,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	log.Debugf("GET %s", endpoint)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Warnf("search request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		log.Warnf("search returned HTTP %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var results []Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&results); err != nil {
		log.Warnf("decoding search response: %v", err)
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if results == nil {
		results = []Result{}
	}

	log.Infof("search returned %d results in %s", len(results), time.Since(start).Round(time.Millisecond))
	return results, nil
}

// ProbeImage checks that an image URL answers a HEAD request with a 2xx
// status. It is used to decide whether to show the image or a placeholder.
// Outcomes are cached per URL and concurrent probes of one URL share a
// single request.
func (c *Client) ProbeImage(ctx context.Context, imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if !validation.IsRemoteResource(imageURL) {
		return fmt.Errorf("not a remote image: %q", imageURL)
	}

	if ok, hit := c.probes.Get(imageURL); hit {
		if ok {
			return nil
		}
		return fmt.Errorf("image unavailable: %s", imageURL)
	}

	_, err, _ := c.probeGroup.Do(imageURL, func() (interface{}, error) {
		err := c.probe(ctx, imageURL)
		if ctx.Err() == nil {
			c.probes.Add(imageURL, err == nil)
		}
		return nil, err
	})
	return err
}

func (c *Client) probe(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		debuglog.Debugf("image probe failed for %s: %v", imageURL, err)
		return fmt.Errorf("probing image: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("image returned HTTP %d", resp.StatusCode)
	}
	return nil
}
