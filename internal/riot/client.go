package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pable/go-lol-stats/internal/model"
)

// DefaultRegion is the routing region used for account-v1 and match-v5.
const DefaultRegion = "americas"

// defaultRetryAfter is used when a 429 carries no Retry-After header.
const defaultRetryAfter = 10 * time.Second

// ErrUnauthorized is returned for 401/403 responses; the API key is missing, expired or revoked.
var ErrUnauthorized = errors.New("riot API rejected the key (401/403)")

// Client is a rate-limited Riot API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *RateLimiter
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the regional host, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default 30s-timeout HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimiter replaces the default dev-key limiter.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient returns a client for the given routing region ("americas", "europe", "asia", "sea").
func NewClient(apiKey, region string, opts ...Option) *Client {
	if region == "" {
		region = DefaultRegion
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: fmt.Sprintf("https://%s.api.riotgames.com", region),
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: NewRateLimiter(DevKeyWindows()...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET and JSON-decodes the body into out.
// op and id only label errors.
func (c *Client) get(ctx context.Context, op, id, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &model.TransientFetchError{Op: op, ID: id, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", op, id, model.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		c.limiter.PauseFor(retryAfter(resp.Header.Get("Retry-After")))
		return &model.TransientFetchError{Op: op, ID: id, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	case resp.StatusCode >= 500:
		return &model.TransientFetchError{Op: op, ID: id, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	default:
		return fmt.Errorf("%s %s: HTTP %d", op, id, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", op, id, err)
	}
	return nil
}

func retryAfter(h string) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultRetryAfter
}

// SplitRiotID splits "gameName#tagLine".
func SplitRiotID(riotID string) (gameName, tagLine string, err error) {
	name, tag, ok := strings.Cut(riotID, "#")
	name, tag = strings.TrimSpace(name), strings.TrimSpace(tag)
	if !ok || name == "" || tag == "" {
		return "", "", fmt.Errorf("invalid Riot ID %q: want gameName#tagLine", riotID)
	}
	return name, tag, nil
}

// ResolveAccount looks up the PUUID for a Riot ID.
func (c *Client) ResolveAccount(ctx context.Context, riotID string) (string, error) {
	name, tag, err := SplitRiotID(riotID)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(name), url.PathEscape(tag))

	var acc Account
	if err := c.get(ctx, "account", riotID, path, &acc); err != nil {
		return "", err
	}
	if acc.PUUID == "" {
		return "", fmt.Errorf("account %s: %w", riotID, model.ErrNotFound)
	}
	return acc.PUUID, nil
}

// ListMatches returns one page of match ids for puuid in queue.
func (c *Client) ListMatches(ctx context.Context, puuid string, queue model.Queue, page int) ([]string, error) {
	q := url.Values{}
	q.Set("queue", strconv.Itoa(int(queue)))
	q.Set("start", strconv.Itoa(page*MatchlistPageSize))
	q.Set("count", strconv.Itoa(MatchlistPageSize))
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?%s", url.PathEscape(puuid), q.Encode())

	var ids []string
	if err := c.get(ctx, "matchlist", fmt.Sprintf("%s/q%d/p%d", puuid, queue, page), path, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// FetchMatch returns the match detail payload.
func (c *Client) FetchMatch(ctx context.Context, matchID string) (*Match, error) {
	var m Match
	if err := c.get(ctx, "match", matchID, "/lol/match/v5/matches/"+url.PathEscape(matchID), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FetchTimeline returns the match timeline payload.
func (c *Client) FetchTimeline(ctx context.Context, matchID string) (*Timeline, error) {
	var tl Timeline
	if err := c.get(ctx, "timeline", matchID, "/lol/match/v5/matches/"+url.PathEscape(matchID)+"/timeline", &tl); err != nil {
		return nil, err
	}
	return &tl, nil
}
