package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/pickem-league/pickem-api/internal/platform/cache"
	"github.com/pickem-league/pickem-api/internal/platform/logging"
	"github.com/pickem-league/pickem-api/internal/platform/resilience"
	"github.com/pickem-league/pickem-api/internal/usecase"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	teamsCacheKey  = "espn:teams"
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	TeamsCache     *cache.Store
}

// Client talks to the public ESPN site API. It implements
// usecase.StatsProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	teamsCache     *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		teamsCache:     cfg.TeamsCache,
	}
}

// Teams lists every NFL franchise. The list changes rarely, so results go
// through the optional TTL cache.
func (c *Client) Teams(ctx context.Context) ([]usecase.ExternalTeam, error) {
	load := func(ctx context.Context) (any, error) {
		var envelope teamsEnvelope
		if err := c.doJSON(ctx, "/teams", nil, &envelope); err != nil {
			return nil, fmt.Errorf("fetch teams: %w", err)
		}
		return mapTeams(envelope), nil
	}

	if c.teamsCache == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return out.([]usecase.ExternalTeam), nil
	}

	out, err := c.teamsCache.GetOrLoad(ctx, teamsCacheKey, load)
	if err != nil {
		return nil, err
	}
	teams, ok := out.([]usecase.ExternalTeam)
	if !ok {
		return nil, fmt.Errorf("unexpected cached teams type %T", out)
	}
	return teams, nil
}

// GamesByWeek lists the scoreboard for one week of a season.
func (c *Client) GamesByWeek(ctx context.Context, season usecase.SeasonInfo, weekNumber int) ([]usecase.ExternalGame, error) {
	if weekNumber < 1 {
		return nil, fmt.Errorf("week number must be >= 1")
	}
	if season.Year < 1 {
		return nil, fmt.Errorf("season year must be >= 1")
	}

	query := map[string]string{
		"seasontype": strconv.Itoa(season.Type),
		"week":       strconv.Itoa(weekNumber),
		"dates":      strconv.Itoa(season.Year),
	}

	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, "/scoreboard", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard week=%d: %w", weekNumber, err)
	}

	games := make([]usecase.ExternalGame, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		games = append(games, mapEvent(event))
	}
	return games, nil
}

// GameResult fetches the final of one game. An unfinished game comes back
// with Completed=false, not an error.
func (c *Client) GameResult(ctx context.Context, gameID string) (usecase.ExternalGameResult, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return usecase.ExternalGameResult{}, fmt.Errorf("game id is required")
	}

	var envelope summaryEnvelope
	if err := c.doJSON(ctx, "/summary", map[string]string{"event": gameID}, &envelope); err != nil {
		return usecase.ExternalGameResult{}, fmt.Errorf("fetch summary game_id=%s: %w", gameID, err)
	}

	return mapGameResult(gameID, envelope), nil
}

// GameBoxScore fetches per-player stat lines for one game.
func (c *Client) GameBoxScore(ctx context.Context, gameID string) (usecase.ExternalBoxScore, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return usecase.ExternalBoxScore{}, fmt.Errorf("game id is required")
	}

	var envelope summaryEnvelope
	if err := c.doJSON(ctx, "/summary", map[string]string{"event": gameID}, &envelope); err != nil {
		return usecase.ExternalBoxScore{}, fmt.Errorf("fetch summary game_id=%s: %w", gameID, err)
	}

	return mapBoxScore(gameID, envelope), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isESPNCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	c.logger.DebugContext(ctx, "espn request", "url", fullURL, "curl_preview", buildCurlPreview(fullURL))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func buildCurlPreview(fullURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl ")
	_, _ = buf.WriteString(shellQuote(fullURL))
	_, _ = buf.WriteString(" -H ")
	_, _ = buf.WriteString(shellQuote("accept: application/json"))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func isESPNCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errESPNTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 512 {
		return body[:512] + "...(truncated)"
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
