package riot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pable/go-lol-stats/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *RateLimiter) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	lim := NewRateLimiter()
	return NewClient("test-key", "", WithBaseURL(srv.URL), WithRateLimiter(lim)), lim
}

func TestResolveAccount(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Riot-Token"); got != "test-key" {
			t.Errorf("X-Riot-Token = %q", got)
		}
		if r.URL.EscapedPath() != "/riot/account/v1/accounts/by-riot-id/Faker%20Fan/KR1" {
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
		}
		fmt.Fprint(w, `{"puuid":"abc","gameName":"Faker Fan","tagLine":"KR1"}`)
	})

	puuid, err := c.ResolveAccount(context.Background(), "Faker Fan#KR1")
	if err != nil {
		t.Fatalf("ResolveAccount: %v", err)
	}
	if puuid != "abc" {
		t.Errorf("puuid = %q, want abc", puuid)
	}
}

func TestResolveAccountRejectsBadID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := c.ResolveAccount(context.Background(), "noTag"); err == nil {
		t.Error("expected error for Riot ID without tag")
	}
}

func TestListMatchesQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("queue") != "420" || q.Get("start") != "200" || q.Get("count") != "100" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `["NA1_1","NA1_2"]`)
	})

	ids, err := c.ListMatches(context.Background(), "abc", 420, 2)
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(ids) != 2 || ids[0] != "NA1_1" {
		t.Errorf("ids = %v", ids)
	}
}

func TestFetchMatchDecodes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lol/match/v5/matches/NA1_9" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"metadata":{"matchId":"NA1_9"},"info":{"gameDuration":1805,"gameEndTimestamp":1,"queueId":420,
			"teams":[{"teamId":100,"win":true},{"teamId":200,"win":false}]}}`)
	})

	m, err := c.FetchMatch(context.Background(), "NA1_9")
	if err != nil {
		t.Fatalf("FetchMatch: %v", err)
	}
	if m.Info.DurationSeconds() != 1805 || m.Info.QueueID != 420 || !m.Info.Teams[0].Win {
		t.Errorf("unexpected match %+v", m.Info)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		retryable bool
		notFound  bool
		unauth    bool
	}{
		{"not found", http.StatusNotFound, false, true, false},
		{"server error", http.StatusBadGateway, true, false, false},
		{"rate limited", http.StatusTooManyRequests, true, false, false},
		{"forbidden", http.StatusForbidden, false, false, true},
		{"bad request", http.StatusBadRequest, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(tt.status)
			})
			_, err := c.FetchTimeline(context.Background(), "NA1_1")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := model.IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v (%v)", got, tt.retryable, err)
			}
			if got := errors.Is(err, model.ErrNotFound); got != tt.notFound {
				t.Errorf("ErrNotFound = %v, want %v", got, tt.notFound)
			}
			if got := errors.Is(err, ErrUnauthorized); got != tt.unauth {
				t.Errorf("ErrUnauthorized = %v, want %v", got, tt.unauth)
			}
		})
	}
}

func TestTooManyRequestsPausesLimiter(t *testing.T) {
	c, lim := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	now := time.Unix(1_700_000_000, 0)
	lim.now = func() time.Time { return now }

	_, _ = c.FetchMatch(context.Background(), "NA1_1")
	if got := lim.reserve(); got != 7*time.Second {
		t.Errorf("limiter wait after 429 = %v, want 7s", got)
	}
}

func TestRetryAfterDefault(t *testing.T) {
	if got := retryAfter(""); got != defaultRetryAfter {
		t.Errorf("retryAfter(\"\") = %v", got)
	}
	if got := retryAfter("3"); got != 3*time.Second {
		t.Errorf("retryAfter(3) = %v", got)
	}
}
