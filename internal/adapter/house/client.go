// Package house fetches roll-call vote documents from the House clerk's
// Electronic Vote System (EVS) feed.
//
// The EVS roll XML records each vote against a bioguide member id and state,
// but not the member's district. Districts come from the clerk's member list
// (MemberData.xml), which maps bioguide ids to state+district codes like
// "NY10" or "AK00" (at-large). The two are joined here to produce one vote
// per census district GEOID (STATEFP + two-digit district).
package house

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

// Default feed locations.
const (
	DefaultBaseURL    = "https://clerk.house.gov/evs"
	DefaultMembersURL = "https://clerk.house.gov/xml/lists/MemberData.xml"
)

// DistrictVote is one representative's vote keyed by census district GEOID.
type DistrictVote struct {
	GEOID    string          `json:"geoid"`
	State    string          `json:"state"`
	Member   string          `json:"member"` // bioguide id
	Position domain.Position `json:"position"`
}

// RollCall is a parsed House roll-call vote.
type RollCall struct {
	Congress int            `json:"congress"`
	Session  int            `json:"session"`
	Number   int            `json:"number"`
	Question string         `json:"question,omitempty"`
	Result   string         `json:"result,omitempty"`
	Votes    []DistrictVote `json:"votes"`
}

// Title builds the human-readable map title for the roll call.
func (rc RollCall) Title() string {
	title := fmt.Sprintf("House %d-%d-%d", rc.Congress, rc.Session, rc.Number)
	if rc.Question != "" {
		title += ": " + rc.Question
	}
	if rc.Result != "" {
		title += " (" + rc.Result + ")"
	}
	return title
}

// Client fetches and joins EVS roll and member documents.
type Client struct {
	baseURL    string
	membersURL string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a House feed client.
func NewClient(baseURL, membersURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		membersURL: membersURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch retrieves the House roll call identified by (congress, session, roll).
// EVS organizes votes by calendar year, derived here from congress and session.
func (c *Client) Fetch(ctx context.Context, congress, session, roll int) (RollCall, error) {
	if err := validateRef(congress, session, roll); err != nil {
		return RollCall{}, err
	}

	start := time.Now()
	rc, err := c.doFetch(ctx, congress, session, roll)
	c.metrics.FetchDuration.WithLabelValues("house").Observe(time.Since(start).Seconds())
	c.metrics.FetchRequests.WithLabelValues("house", fetchOutcome(err)).Inc()
	if err != nil {
		return RollCall{}, err
	}

	c.logger.Info("fetched house roll call",
		"congress", congress,
		"session", session,
		"roll", roll,
		"votes", len(rc.Votes),
	)
	return rc, nil
}

func (c *Client) doFetch(ctx context.Context, congress, session, roll int) (RollCall, error) {
	year := congressYear(congress, session)
	url := fmt.Sprintf("%s/%d/roll%03d.xml", c.baseURL, year, roll)

	rollBody, err := c.get(ctx, url)
	if err != nil {
		return RollCall{}, err
	}
	doc, err := parseRollXML(rollBody)
	if err != nil {
		return RollCall{}, fmt.Errorf("%s: %w", url, err)
	}

	membersBody, err := c.get(ctx, c.membersURL)
	if err != nil {
		return RollCall{}, err
	}
	districts, err := parseMemberDistricts(membersBody)
	if err != nil {
		return RollCall{}, fmt.Errorf("%s: %w", c.membersURL, err)
	}

	votes, err := joinDistrictVotes(doc, districts)
	if err != nil {
		return RollCall{}, err
	}

	return RollCall{
		Congress: congress,
		Session:  session,
		Number:   roll,
		Question: doc.Metadata.Question,
		Result:   doc.Metadata.Result,
		Votes:    votes,
	}, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrNetwork, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrNetwork, err)
	}
	return body, nil
}

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

// congressYear derives the EVS calendar year: the 1st congress convened in
// 1789, each lasts two years, and session 2 is the second year.
func congressYear(congress, session int) int {
	return 1789 + (congress-1)*2 + (session - 1)
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
