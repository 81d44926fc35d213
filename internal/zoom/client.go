package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/englishbay/zoomreport/internal/instrumentation"
	"github.com/englishbay/zoomreport/internal/logging"
	"github.com/englishbay/zoomreport/internal/report"
	"github.com/englishbay/zoomreport/internal/timeutil"
)

const (
	defaultBaseURL  = "https://api.zoom.us/v2"
	defaultTokenURL = "https://zoom.us/oauth/token"

	// Zoom caps page_size at 300; the report endpoints are not paginated
	// further because attendance runs stay well below that.
	pageSize = "300"
)

// Client wraps the Zoom REST API. It implements report.Source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        logging.Logger
	metrics    *instrumentation.Metrics
	now        func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the OAuth-authenticated HTTP client. Used in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics attaches API operation metrics. A nil Metrics records nothing.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Zoom client authenticating with the server-to-server
// OAuth account_credentials grant. The access token is fetched lazily on the
// first API call and reused until it expires.
func NewClient(ctx context.Context, accountID, clientID, clientSecret string, opts ...Option) *Client {
	ts := oauth2.ReuseTokenSource(nil, &accountTokenSource{
		ctx:          ctx,
		tokenURL:     defaultTokenURL,
		accountID:    accountID,
		clientID:     clientID,
		clientSecret: clientSecret,
	})

	c := &Client{
		httpClient: oauth2.NewClient(ctx, ts),
		baseURL:    defaultBaseURL,
		log:        logging.DefaultLogger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// accountTokenSource obtains access tokens using Zoom's account_credentials
// grant, which is close to but not the standard client_credentials flow.
type accountTokenSource struct {
	ctx          context.Context
	tokenURL     string
	accountID    string
	clientID     string
	clientSecret string
}

func (ts *accountTokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{
		"grant_type": {"account_credentials"},
		"account_id": {ts.accountID},
	}

	req, err := http.NewRequestWithContext(ts.ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(ts.clientID, ts.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authentication failed: %s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("token response contained no access token")
	}

	tok := &oauth2.Token{
		AccessToken: payload.AccessToken,
		TokenType:   payload.TokenType,
	}
	if payload.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	}
	return tok, nil
}

// ListRecentMeetings returns the account's previous meetings whose start time
// falls within the lookback window. Meetings without a parseable start time
// are skipped.
func (c *Client) ListRecentMeetings(ctx context.Context, window time.Duration) ([]report.Occurrence, error) {
	c.log.Info("listing recent meetings", logging.KeyWindow, window.String())

	var payload meetingsResponse
	query := url.Values{"type": {"previous_meetings"}, "page_size": {pageSize}}
	if err := c.get(ctx, "list_meetings", "/users/me/meetings", query, &payload); err != nil {
		return nil, err
	}

	cutoff := c.now().UTC().Add(-window)
	var occurrences []report.Occurrence
	for _, m := range payload.Meetings {
		start, err := timeutil.ParseTimestamp(m.StartTime)
		if err != nil {
			continue
		}
		if !start.Before(cutoff) {
			occurrences = append(occurrences, m.toOccurrence())
		}
	}

	c.log.Info("found meetings within window", "meetings", len(occurrences))
	return occurrences, nil
}

// ListMeetingInstances returns all known past occurrences of one meeting.
// The result is unfiltered; callers apply the lookback window.
func (c *Client) ListMeetingInstances(ctx context.Context, meetingID string) ([]report.Occurrence, error) {
	var payload meetingsResponse
	path := "/past_meetings/" + url.PathEscape(meetingID) + "/instances"
	if err := c.get(ctx, "list_instances", path, nil, &payload); err != nil {
		return nil, err
	}

	occurrences := make([]report.Occurrence, 0, len(payload.Meetings))
	for _, m := range payload.Meetings {
		occurrences = append(occurrences, m.toOccurrence())
	}
	return occurrences, nil
}

// ListParticipants returns the raw participant sessions of one occurrence.
// The occurrence UUID is escaped fully, including any embedded slashes.
func (c *Client) ListParticipants(ctx context.Context, occurrenceUUID string) ([]report.Session, error) {
	var payload participantsResponse
	path := "/report/meetings/" + url.PathEscape(occurrenceUUID) + "/participants"
	query := url.Values{"page_size": {pageSize}}
	if err := c.get(ctx, "list_participants", path, query, &payload); err != nil {
		return nil, err
	}

	sessions := make([]report.Session, 0, len(payload.Participants))
	for _, p := range payload.Participants {
		sessions = append(sessions, p.toSession())
	}
	return sessions, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	start := time.Now()
	status := instrumentation.StatusError
	defer func() {
		c.metrics.RecordAPIOperation(ctx, operation, status, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%s returned %s: %s", operation, res.Status, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	status = instrumentation.StatusSuccess
	return nil
}
