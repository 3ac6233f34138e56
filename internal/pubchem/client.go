// Package pubchem implements a minimal PUG REST client for resolving
// compound names and CIDs into formula and molar mass properties.
package pubchem

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

	"golang.org/x/time/rate"

	"optithor/internal/compounds"
)

// DefaultBaseURL is the public PUG REST endpoint.
const DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

// Attempt statuses recorded for fetches that completed without a transport
// error. Only StatusOK yields a usable record; the failure statuses are
// cached so rebuilding the database skips known-bad queries.
const (
	StatusOK              = "ok"
	StatusNoProperties    = "no_properties"
	StatusEmptyProperties = "empty_properties"
)

// Attempt summarizes one resolution attempt against the registry.
type Attempt struct {
	Query  string `json:"query"`
	Status string `json:"status"`
	CID    string `json:"cid,omitempty"`
}

// Client talks to PubChem. The zero value is not usable; construct with
// NewClient.
type Client struct {
	http       *http.Client
	base       string
	limiter    *rate.Limiter
	maxRetries int
	maxBackoff time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate endpoint (tests).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLimiter overrides the request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithMaxBackoff caps the retry sleep for throttled responses.
func WithMaxBackoff(d time.Duration) Option {
	return func(c *Client) { c.maxBackoff = d }
}

// NewClient returns a client honoring PubChem's five requests per second
// usage policy, retrying throttled requests with exponential backoff.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		base:       DefaultBaseURL,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		maxRetries: 5,
		maxBackoff: 300 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const properties = "MolecularFormula,MolecularWeight,Title"

// FetchByCID resolves a PubChem CID into a compound record.
func (c *Client) FetchByCID(ctx context.Context, cid string) (compounds.Record, error) {
	endpoint := fmt.Sprintf("%s/compound/cid/%s/property/%s/JSON", c.base, url.PathEscape(cid), properties)
	rec, attempt, err := c.fetch(ctx, cid, endpoint)
	if err != nil {
		return compounds.Record{}, err
	}
	if attempt.Status != StatusOK {
		return compounds.Record{}, fmt.Errorf("pubchem: cid %s: %s", cid, attempt.Status)
	}
	return rec, nil
}

// FetchByName resolves a compound name. Semantic failures (unknown name,
// empty property set) are reported through the Attempt, not the error.
func (c *Client) FetchByName(ctx context.Context, name string) (compounds.Record, Attempt, error) {
	endpoint := fmt.Sprintf("%s/compound/name/%s/property/%s/JSON", c.base, url.PathEscape(name), properties)
	return c.fetch(ctx, name, endpoint)
}

func (c *Client) fetch(ctx context.Context, query, endpoint string) (compounds.Record, Attempt, error) {
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return compounds.Record{}, Attempt{}, err
	}
	if status == http.StatusNotFound {
		return compounds.Record{}, Attempt{Query: query, Status: StatusNoProperties}, nil
	}
	if status != http.StatusOK {
		return compounds.Record{}, Attempt{}, fmt.Errorf("pubchem: %s: unexpected status %d", query, status)
	}
	var table propertyTable
	if err := json.Unmarshal(body, &table); err != nil {
		return compounds.Record{}, Attempt{}, fmt.Errorf("pubchem: %s: decode: %w", query, err)
	}
	props := table.PropertyTable.Properties
	if len(props) == 0 {
		return compounds.Record{}, Attempt{Query: query, Status: StatusNoProperties}, nil
	}
	p := props[0]
	if p.MolecularFormula == "" {
		return compounds.Record{}, Attempt{Query: query, Status: StatusEmptyProperties}, nil
	}
	rec := compounds.Record{
		CID:     strconv.FormatInt(p.CID, 10),
		Name:    p.Title,
		Formula: p.MolecularFormula,
	}
	// MolecularWeight arrives as a JSON string.
	if p.MolecularWeight != "" {
		w, err := strconv.ParseFloat(p.MolecularWeight, 64)
		if err != nil {
			return compounds.Record{}, Attempt{}, fmt.Errorf("pubchem: %s: molecular weight %q: %w", query, p.MolecularWeight, err)
		}
		rec.MolarMass = w
	}
	return rec, Attempt{Query: query, Status: StatusOK, CID: rec.CID}, nil
}

// get performs a rate-limited GET, retrying throttled and busy responses
// with exponential backoff.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	backoff := time.Second
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, 0, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, 0, err
		}
		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, 0, readErr
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable
		if !retryable || attempt >= c.maxRetries {
			return body, resp.StatusCode, nil
		}
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.maxBackoff {
			backoff = c.maxBackoff
		}
	}
}

type propertyTable struct {
	PropertyTable struct {
		Properties []property `json:"Properties"`
	} `json:"PropertyTable"`
}

type property struct {
	CID              int64  `json:"CID"`
	MolecularFormula string `json:"MolecularFormula"`
	MolecularWeight  string `json:"MolecularWeight"`
	Title            string `json:"Title"`
}
