package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"

	"github.com/stokaro/leaguesync/config"
)

// FilterHeader carries the JSON encoded request filter.
const FilterHeader = "x-fantasy-filter"

const leagueURLFormat = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/flb/seasons/%d/segments/0/leagues/%s"

// maxErrorBody bounds how much of a failed response is kept in HTTPError.
const maxErrorBody = 512

// HTTPError is returned for a non-2xx API response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fantasy API returned %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	LeagueID string
	Season   int
	ESPNS2   string
	SWID     string
	Public   bool
	Timeout  time.Duration
	// BaseURL replaces the league URL derived from season and league id.
	BaseURL string
	// HTTPClient is used when set; Timeout is then ignored.
	HTTPClient *http.Client
}

// ClientOptionsFromConfig maps a run configuration onto client options.
func ClientOptionsFromConfig(cfg *config.Config) ClientOptions {
	return ClientOptions{
		LeagueID: cfg.LeagueID,
		Season:   cfg.Season,
		ESPNS2:   cfg.ESPNS2,
		SWID:     cfg.SWID,
		Public:   cfg.Public,
		Timeout:  cfg.HTTPTimeout,
		BaseURL:  cfg.BaseURL,
	}
}

// Client is the HTTP Source for one league.
type Client struct {
	leagueURL string
	cookies   []*http.Cookie
	http      *http.Client
	logger    *slog.Logger
}

var _ Source = (*Client)(nil)

// NewClient returns a client for the league in opts. A private league needs
// both session cookies.
func NewClient(opts ClientOptions) (*Client, error) {
	if !opts.Public {
		if opts.ESPNS2 == "" {
			return nil, fmt.Errorf("%w: espn_s2 is required for a private league", config.ErrInvalidConfiguration)
		}
		if opts.SWID == "" {
			return nil, fmt.Errorf("%w: swid is required for a private league", config.ErrInvalidConfiguration)
		}
	}

	leagueURL := opts.BaseURL
	if leagueURL == "" {
		if opts.LeagueID == "" {
			return nil, fmt.Errorf("%w: league id is required", config.ErrInvalidConfiguration)
		}
		leagueURL = fmt.Sprintf(leagueURLFormat, opts.Season, url.PathEscape(opts.LeagueID))
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = config.DefaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		leagueURL: strings.TrimRight(leagueURL, "/"),
		http:      httpClient,
		logger:    slog.Default(),
	}
	if !opts.Public {
		c.cookies = []*http.Cookie{
			{Name: "espn_s2", Value: opts.ESPNS2},
			{Name: "SWID", Value: opts.SWID},
		}
	}
	return c, nil
}

// WithLogger returns a copy of the client that logs to l.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	tmp := *c
	tmp.logger = l
	return &tmp
}

// Fetch performs req and decodes the JSON response.
func (c *Client) Fetch(ctx context.Context, req Request) (any, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", httpReq.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: httpReq.URL.String(), Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", httpReq.URL, err)
	}
	doc, err := oj.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", httpReq.URL, err)
	}

	c.logger.Debug("Fetched league data",
		"views", req.Views,
		"endpoint", req.Endpoint,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return doc, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.leagueURL
	if endpoint := strings.Trim(req.Endpoint, "/"); endpoint != "" {
		target += "/" + endpoint
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}
	q := u.Query()
	for _, v := range req.Views {
		q.Add("view", string(v))
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Filter != nil {
		httpReq.Header.Set(FilterHeader, oj.JSON(req.Filter, &oj.Options{Sort: true}))
	}
	for _, cookie := range c.cookies {
		httpReq.AddCookie(cookie)
	}
	return httpReq, nil
}
