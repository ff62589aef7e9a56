// Package senate fetches roll-call vote documents from the senate.gov LIS feed.
package senate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cartovote/vote-map/internal/domain"
	"github.com/cartovote/vote-map/internal/observability"
)

// DefaultBaseURL is the public LIS roll-call vote feed.
const DefaultBaseURL = "https://www.senate.gov/legislative/LIS/roll_call_votes"

// Client fetches and parses LIS roll-call XML documents.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a senate feed client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch retrieves the roll call identified by (congress, session, roll).
// Argument violations fail before any network I/O; feed failures wrap the
// domain error kinds (ErrNetwork, ErrNotFound, ErrParse).
func (c *Client) Fetch(ctx context.Context, congress, session, roll int) (domain.RollCall, error) {
	if err := validateRef(congress, session, roll); err != nil {
		return domain.RollCall{}, err
	}

	url := voteURL(c.baseURL, congress, session, roll)
	start := time.Now()
	rc, err := c.doFetch(ctx, url)
	c.metrics.FetchDuration.WithLabelValues("senate").Observe(time.Since(start).Seconds())
	c.metrics.FetchRequests.WithLabelValues("senate", fetchOutcome(err)).Inc()
	if err != nil {
		return domain.RollCall{}, err
	}

	c.logger.Info("fetched roll call",
		"congress", congress,
		"session", session,
		"roll", roll,
		"records", len(rc.Records),
	)
	return rc, nil
}

func (c *Client) doFetch(ctx context.Context, url string) (domain.RollCall, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RollCall{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RollCall{}, fmt.Errorf("%w: %s: %v", domain.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.RollCall{}, fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return domain.RollCall{}, fmt.Errorf("%w: %s: status %d", domain.ErrNetwork, url, resp.StatusCode)
	}

	// Some bad vote numbers redirect to an HTML error page served with 200.
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return domain.RollCall{}, fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RollCall{}, fmt.Errorf("%w: read response: %v", domain.ErrNetwork, err)
	}

	rc, err := domain.ParseRollCallXML(body)
	if err != nil {
		return domain.RollCall{}, fmt.Errorf("%s: %w", url, err)
	}
	return rc, nil
}

// validateRef checks the roll-call reference before building a URL.
func validateRef(congress, session, roll int) error {
	if congress < 1 {
		return fmt.Errorf("congress must be a positive integer, got %d", congress)
	}
	if session != 1 && session != 2 {
		return fmt.Errorf("session must be 1 or 2, got %d", session)
	}
	if roll < 1 {
		return fmt.Errorf("roll call number must be a positive integer, got %d", roll)
	}
	return nil
}

// voteURL builds the LIS feed URL, e.g. for (119, 1, 416):
// <base>/vote1191/vote_119_1_00416.xml
func voteURL(base string, congress, session, roll int) string {
	return fmt.Sprintf("%s/vote%d%d/vote_%03d_%d_%05d.xml", base, congress, session, congress, session, roll)
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrParse):
		return "parse_error"
	default:
		return "network_error"
	}
}
