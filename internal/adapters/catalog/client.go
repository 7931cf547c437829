// Package catalog is a client for the product catalog REST service
package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "scanwedge"
	apiPrefix      = "/api/v1"

	// HeaderCompany selects the tenant on multi-company backends
	HeaderCompany = "X-Company-Id"

	// opServerError tags errors built from a 5xx answer
	opServerError = "catalog.server_error"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// MissingAsError keeps 5xx answers to a barcode lookup as unavailable.
	// Off by default: the product service answers an unknown barcode with a
	// 500, so a server error on lookup is read as not found.
	MissingAsError bool
}

// Client issues single-attempt requests against the catalog. Failed lookups are
// reported to the caller, never retried.
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) (*Client, error) {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		return nil, perr.WithField(perr.InvalidArgf("catalog base url is required"), "base_url")
	}
	if u, err := url.Parse(o.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, perr.WithField(perr.InvalidArgf("catalog base url %q is not absolute", o.BaseURL), "base_url")
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("catalog"),
		now:  time.Now,
	}, nil
}

// Auth carries the caller's credentials through to the catalog
type Auth struct {
	Token     string
	CompanyID string
}

// Do issues a GET for path+query and maps non-2xx statuses onto error codes
func (c *Client) Do(ctx context.Context, path string, q url.Values, a Auth) (*http.Response, error) {
	u := c.opts.BaseURL + apiPrefix + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "catalog new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}
	if a.CompanyID != "" {
		req.Header.Set(HeaderCompany, a.CompanyID)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "catalog request cancelled")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "catalog do failed")
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("catalog http response")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound:
		_ = drainAndClose(resp.Body)
		return nil, perr.NotFoundf("catalog %s not found", path)
	case resp.StatusCode == http.StatusUnauthorized:
		_ = drainAndClose(resp.Body)
		return nil, perr.Unauthorizedf("catalog rejected credentials")
	case resp.StatusCode == http.StatusForbidden:
		_ = drainAndClose(resp.Body)
		return nil, perr.Forbiddenf("catalog denied access")
	case resp.StatusCode >= 500:
		_ = drainAndClose(resp.Body)
		return nil, perr.WithOp(perr.Unavailablef("catalog server error %d", resp.StatusCode), opServerError)
	default:
		// read a small tail for diagnostics then return
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		_ = resp.Body.Close()
		return nil, perr.Newf(perr.ErrorCodeUnknown, "catalog unexpected status %d body %s", resp.StatusCode, string(body))
	}
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	return rc.Close()
}

// Ping reports whether the catalog host answers at all. Any HTTP status counts
// as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.opts.BaseURL+"/", nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "catalog new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "catalog unreachable")
	}
	return drainAndClose(resp.Body)
}
