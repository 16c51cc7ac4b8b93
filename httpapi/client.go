// Package httpapi is the thin HTTP collaborator of the normalizer: given an
// opaque continuation token (or a browse id for the first call) it returns
// the next raw document as a tree.Value. It never interprets documents and
// carries no retry or auth logic.
package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"

	catalog "github.com/tunefeed/catalog"
	"github.com/tunefeed/catalog/paginate"
	"github.com/tunefeed/catalog/tree"
)

// DefaultBaseURL is the public InnerTube endpoint of the music catalog.
const DefaultBaseURL = "https://music.youtube.com/youtubei/v1"

const (
	clientName    = "WEB_REMIX"
	clientVersion = "1.20240724.00.00"
)

// Response documents are bounded before decoding; a browse page never comes
// close to these limits.
var decodeOpt = tree.DecodeOpt{MaxBytes: 32 << 20, MaxDepth: 256}

// Client talks to the catalog's browse endpoint.
type Client struct {
	base      string
	visitorID string
	hc        *http.Client
	log       *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (mainly for tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.base = strings.TrimRight(u, "/") }
}

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithVisitorID attaches the opaque visitor id the API uses to shape results.
func WithVisitorID(id string) ClientOption {
	return func(c *Client) { c.visitorID = id }
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a browse client with a 15s request timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		base: DefaultBaseURL,
		hc:   &http.Client{Timeout: 15 * time.Second},
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Browse fetches the initial document of a browse surface.
func (c *Client) Browse(ctx context.Context, browseID string) (tree.Value, error) {
	return c.post(ctx, nil, map[string]any{"browseId": browseID})
}

// Continue fetches a continuation document for token.
func (c *Client) Continue(ctx context.Context, token string) (tree.Value, error) {
	q := url.Values{}
	q.Set("ctoken", token)
	q.Set("continuation", token)
	return c.post(ctx, q, nil)
}

func (c *Client) post(ctx context.Context, query url.Values, extra map[string]any) (tree.Value, error) {
	body := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    clientName,
				"clientVersion": clientVersion,
				"visitorData":   c.visitorID,
			},
		},
	}
	for k, v := range extra {
		body[k] = v
	}
	payload, err := gojson.Marshal(body)
	if err != nil {
		return tree.Value{}, fmt.Errorf("httpapi: encode request: %w", err)
	}

	u := c.base + "/browse"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return tree.Value{}, fmt.Errorf("httpapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return tree.Value{}, fmt.Errorf("httpapi: browse: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return tree.Value{}, fmt.Errorf("httpapi: browse: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, decodeOpt.MaxBytes+1))
	if err != nil {
		return tree.Value{}, fmt.Errorf("httpapi: read body: %w", err)
	}
	doc, err := tree.DecodeWith(data, decodeOpt)
	if err != nil {
		return tree.Value{}, fmt.Errorf("httpapi: %w", err)
	}
	c.log.Debug("httpapi: browse ok", "bytes", len(data), "elapsed", time.Since(start))
	return doc, nil
}

// SectionFetcher adapts the client plus a parser into a paginate.FetchFunc
// over a browse surface: the empty token fetches and parses the initial
// document, later tokens fetch continuations.
func (c *Client) SectionFetcher(p *catalog.Parser, browseID string) paginate.FetchFunc[catalog.Section] {
	return func(ctx context.Context, token string) (catalog.Page[catalog.Section], error) {
		if token == "" {
			doc, err := c.Browse(ctx, browseID)
			if err != nil {
				return catalog.Page[catalog.Section]{}, err
			}
			return p.ParseInitialPage(doc), nil
		}
		doc, err := c.Continue(ctx, token)
		if err != nil {
			return catalog.Page[catalog.Section]{}, err
		}
		return p.ParseContinuationPage(doc), nil
	}
}

// SongFetcher adapts the client plus a parser into a paginate.FetchFunc over
// a flat song listing.
func (c *Client) SongFetcher(p *catalog.Parser, browseID string) paginate.FetchFunc[catalog.Song] {
	return func(ctx context.Context, token string) (catalog.Page[catalog.Song], error) {
		if token == "" {
			doc, err := c.Browse(ctx, browseID)
			if err != nil {
				return catalog.Page[catalog.Song]{}, err
			}
			return p.SongsPage(doc), nil
		}
		doc, err := c.Continue(ctx, token)
		if err != nil {
			return catalog.Page[catalog.Song]{}, err
		}
		return p.SongsContinuationPage(doc), nil
	}
}
