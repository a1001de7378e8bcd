package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimitlessClient fetches field and matchup data from a Limitless-style
// TCG Pocket stats API.
type LimitlessClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	cacheTTL   time.Duration

	mu    sync.RWMutex
	cache map[string]*seasonCacheEntry
}

// LimitlessConfig configures the client.
type LimitlessConfig struct {
	// BaseURL is the stats API base URL.
	BaseURL string

	// CacheTTL is how long fetched season data stays fresh.
	CacheTTL time.Duration

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout time.Duration

	// RateLimitPerSec caps outgoing requests per second.
	RateLimitPerSec float64
}

// DefaultLimitlessConfig returns default configuration.
func DefaultLimitlessConfig() *LimitlessConfig {
	return &LimitlessConfig{
		BaseURL:         "https://play.limitlesstcg.com",
		CacheTTL:        4 * time.Hour,
		RequestTimeout:  30 * time.Second,
		RateLimitPerSec: 1,
	}
}

// seasonCacheEntry caches one season's fetched data.
type seasonCacheEntry struct {
	snapshot  *Snapshot
	matchups  MatchupTable
	expiresAt time.Time
}

// seasonPayload is the wire format of the deck list endpoint.
type seasonPayload struct {
	Season    string    `json:"season"`
	UpdatedAt time.Time `json:"updated_at"`
	Decks     []Deck    `json:"decks"`
}

// matchupPayload is the wire format of the matchup endpoint.
type matchupPayload struct {
	Season   string         `json:"season"`
	Matchups []matchupEntry `json:"matchups"`
}

// matchupEntry is one directed matchup observation.
type matchupEntry struct {
	Deck     string  `json:"deck"`
	Opponent string  `json:"opponent"`
	WinRate  float64 `json:"win_rate"` // 0-100, from Deck's perspective
}

// NewLimitlessClient creates a new client.
func NewLimitlessClient(config *LimitlessConfig) *LimitlessClient {
	if config == nil {
		config = DefaultLimitlessConfig()
	}
	// Zero-valued fields from partial configs fall back to defaults.
	defaults := DefaultLimitlessConfig()
	rateLimit := config.RateLimitPerSec
	if rateLimit <= 0 {
		rateLimit = defaults.RateLimitPerSec
	}
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = defaults.RequestTimeout
	}
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaults.CacheTTL
	}

	return &LimitlessClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
		limiter:  rate.NewLimiter(rate.Limit(rateLimit), 1),
		cacheTTL: cacheTTL,
		cache:    make(map[string]*seasonCacheEntry),
	}
}

// GetSnapshot returns the current field snapshot for a season.
func (c *LimitlessClient) GetSnapshot(ctx context.Context, season string) (*Snapshot, error) {
	entry, err := c.getSeason(ctx, season)
	if err != nil {
		return nil, err
	}
	return entry.snapshot, nil
}

// GetMatchups returns the matchup table for a season.
func (c *LimitlessClient) GetMatchups(ctx context.Context, season string) (MatchupTable, error) {
	entry, err := c.getSeason(ctx, season)
	if err != nil {
		return nil, err
	}
	return entry.matchups, nil
}

// getSeason returns cached season data, fetching on a miss.
func (c *LimitlessClient) getSeason(ctx context.Context, season string) (*seasonCacheEntry, error) {
	if entry := c.getFromCache(season); entry != nil {
		return entry, nil
	}

	snapshot, err := c.fetchSnapshot(ctx, season)
	if err != nil {
		return nil, err
	}
	matchups, err := c.fetchMatchups(ctx, season)
	if err != nil {
		return nil, err
	}

	entry := &seasonCacheEntry{
		snapshot:  snapshot,
		matchups:  matchups,
		expiresAt: time.Now().Add(c.cacheTTL),
	}
	c.setCache(season, entry)

	return entry, nil
}

// fetchSnapshot fetches the deck list for a season.
func (c *LimitlessClient) fetchSnapshot(ctx context.Context, season string) (*Snapshot, error) {
	var payload seasonPayload
	url := fmt.Sprintf("%s/api/pocket/meta/%s", c.baseURL, season)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch season %s: %w", season, err)
	}

	date := payload.UpdatedAt
	if date.IsZero() {
		date = time.Now()
	}

	return &Snapshot{Date: date, Decks: payload.Decks}, nil
}

// fetchMatchups fetches the matchup table for a season.
func (c *LimitlessClient) fetchMatchups(ctx context.Context, season string) (MatchupTable, error) {
	var payload matchupPayload
	url := fmt.Sprintf("%s/api/pocket/matchups/%s", c.baseURL, season)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch matchups %s: %w", season, err)
	}

	table := make(MatchupTable)
	for _, entry := range payload.Matchups {
		if table[entry.Deck] == nil {
			table[entry.Deck] = make(map[string]float64)
		}
		table[entry.Deck][entry.Opponent] = entry.WinRate
	}

	return table, nil
}

// getJSON performs a rate-limited GET and decodes the JSON body.
func (c *LimitlessClient) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "pokemon-tcgp-meta-app/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// getFromCache returns unexpired cached season data, or nil.
func (c *LimitlessClient) getFromCache(season string) *seasonCacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache[strings.ToLower(season)]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry
}

// setCache stores season data in the cache.
func (c *LimitlessClient) setCache(season string, entry *seasonCacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[strings.ToLower(season)] = entry
}

// ClearCache drops all cached season data.
func (c *LimitlessClient) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*seasonCacheEntry)
}
