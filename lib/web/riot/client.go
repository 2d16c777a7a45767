package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"lolstreamsearch/lib/monitoring/global_metrics"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/utils/network"

	"golang.org/x/time/rate"
)

var logger = logging.NewLogger("RIOT_CLIENT")

const (
	endpointAccount   = "account"
	endpointMatchList = "match_list"
	endpointMatch     = "match"
)

// RiotClient talks to the regional Riot account-v1 and match-v5 APIs
type RiotClient struct {
	httpClient      *http.Client
	baseURL         string // overrides https://{region}.api.riotgames.com when set
	defaultRegion   string
	defaultPlatform string
	matchCount      int

	keyMu  sync.RWMutex
	apiKey string

	// Development keys allow 20 req/s and 100 req/2min; stay under both
	shortLimiter *rate.Limiter
	longLimiter  *rate.Limiter
}

type Option func(*RiotClient)

// WithBaseURL sends every request to baseURL regardless of region
func WithBaseURL(baseURL string) Option {
	return func(c *RiotClient) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *RiotClient) {
		c.httpClient = httpClient
	}
}

// WithDefaultPlatform sets the platform prefix given to bare match ids, e.g. "EUW1"
func WithDefaultPlatform(platform string) Option {
	return func(c *RiotClient) {
		c.defaultPlatform = platform
	}
}

func WithMatchCount(count int) Option {
	return func(c *RiotClient) {
		if count > 0 {
			c.matchCount = count
		}
	}
}

// WithRateLimit replaces both limiters. A nil limiter disables that window.
func WithRateLimit(short, long *rate.Limiter) Option {
	return func(c *RiotClient) {
		c.shortLimiter = short
		c.longLimiter = long
	}
}

func NewRiotClient(apiKey string, defaultRegion string, opts ...Option) *RiotClient {
	c := &RiotClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey:          apiKey,
		defaultRegion:   defaultRegion,
		defaultPlatform: "EUW1",
		matchCount:      100,
		shortLimiter:    rate.NewLimiter(rate.Limit(15), 20),
		longLimiter:     rate.NewLimiter(rate.Every(2*time.Minute/90), 90),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAPIKey swaps the key used by subsequent requests
func (c *RiotClient) SetAPIKey(apiKey string) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	c.apiKey = apiKey
}

func (c *RiotClient) key() string {
	c.keyMu.RLock()
	defer c.keyMu.RUnlock()
	return c.apiKey
}

func (c *RiotClient) regionBaseURL(region string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	if region == "" {
		region = c.defaultRegion
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", region)
}

func (c *RiotClient) wait(ctx context.Context) error {
	start := time.Now()
	defer func() {
		global_metrics.RiotRateLimiterWait.Observe(float64(time.Since(start).Milliseconds()))
	}()
	if c.shortLimiter != nil {
		if err := c.shortLimiter.Wait(ctx); err != nil {
			return err
		}
	}
	if c.longLimiter != nil {
		if err := c.longLimiter.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// get performs a rate limited GET and decodes a 200 body into T.
// Any other status is returned as *network.HTTPStatusError alongside the status code; -1 means no response.
func get[T any](ctx context.Context, c *RiotClient, endpoint string, url string) (*T, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, -1, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, -1, err
	}
	req.Header.Set("X-Riot-Token", c.key())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		global_metrics.RiotRequest.WithLabelValues(endpoint, "transport_error").Observe(float64(time.Since(start).Milliseconds()))
		return nil, -1, err
	}
	defer resp.Body.Close()
	global_metrics.RiotRequest.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Observe(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, &network.HTTPStatusError{StatusCode: resp.StatusCode, URL: url}
	}

	var data T
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return &data, resp.StatusCode, nil
}

// GetPUUID resolves a Riot ID (gameName#tagLine) to its PUUID
func (c *RiotClient) GetPUUID(ctx context.Context, region, gameName, tagLine string) (string, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionBaseURL(region), url.PathEscape(gameName), url.PathEscape(tagLine))

	account, statusCode, err := get[Account](ctx, c, endpointAccount, u)
	subject := gameName + "#" + tagLine
	if err != nil {
		return "", &UpstreamLookupError{Endpoint: endpointAccount, Subject: subject, StatusCode: statusCode, Err: err}
	}
	if account.PUUID == "" {
		return "", &UpstreamLookupError{Endpoint: endpointAccount, Subject: subject, StatusCode: statusCode, Err: fmt.Errorf("response has no puuid")}
	}

	logger.Debug("PUUID_RESOLVED", map[string]any{
		logging.GAME_NAME: gameName,
		logging.TAG_LINE:  tagLine,
		logging.REGION:    region,
	})
	return account.PUUID, nil
}

// GetMatchIDs lists match ids for puuid that started within [startTime, endTime] (epoch seconds), most recent first
func (c *RiotClient) GetMatchIDs(ctx context.Context, region, puuid string, startTime, endTime int64) ([]string, error) {
	q := url.Values{}
	q.Set("startTime", strconv.FormatInt(startTime, 10))
	q.Set("endTime", strconv.FormatInt(endTime, 10))
	q.Set("start", "0")
	q.Set("count", strconv.Itoa(c.matchCount))
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s", c.regionBaseURL(region), url.PathEscape(puuid), q.Encode())

	ids, statusCode, err := get[[]string](ctx, c, endpointMatchList, u)
	if err != nil {
		return nil, &UpstreamLookupError{Endpoint: endpointMatchList, Subject: puuid, StatusCode: statusCode, Err: err}
	}
	return *ids, nil
}

// GetMatch fetches a match by id. Bare numeric ids get the default platform prefix.
func (c *RiotClient) GetMatch(ctx context.Context, region, matchID string) (*Match, error) {
	matchID = NormalizeMatchID(matchID, c.defaultPlatform)
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionBaseURL(region), url.PathEscape(matchID))

	match, statusCode, err := get[Match](ctx, c, endpointMatch, u)
	if err != nil {
		return nil, &MatchFetchError{MatchID: matchID, StatusCode: statusCode, Err: err}
	}
	return match, nil
}
