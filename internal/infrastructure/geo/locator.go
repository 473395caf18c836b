// Package geo resolves a requester IP to an approximate coordinate. The
// lookup is best effort: denial, failure or an implausible position all fall
// back to the Ikeja reference point and are never surfaced as errors.
package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"

	"eko_market/internal/domain/service/logistics"
	"eko_market/internal/domain/value"
	"eko_market/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	lookupCacheTTL   = 15 * time.Minute
	cacheCleanupTick = time.Hour
)

type Locator struct {
	endpoint   string
	httpClient *http.Client
	cache      *cache.Cache
}

// NewLocator expects an ip-api style endpoint returning {"lat":..,"lon":..}.
func NewLocator(endpoint string, httpClient *http.Client) *Locator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Locator{
		endpoint:   endpoint,
		httpClient: httpClient,
		cache:      cache.New(lookupCacheTTL, cacheCleanupTick),
	}
}

type lookupResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Locate resolves ip to a coordinate inside the expected country extent.
func (l *Locator) Locate(ctx context.Context, ip string) value.Coordinate {
	if cached, ok := l.cache.Get(ip); ok {
		return cached.(value.Coordinate)
	}

	coord := l.lookup(ctx, ip)
	if !coord.InCountryBounds() {
		coord = logistics.FallbackCoordinate()
	}

	l.cache.SetDefault(ip, coord)

	return coord
}

func (l *Locator) lookup(ctx context.Context, ip string) value.Coordinate {
	endpoint := fmt.Sprintf("%s/json/%s", l.endpoint, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return logistics.FallbackCoordinate()
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		logger(ctx).Debug("geo lookup failed", logx.Error(err))
		return logistics.FallbackCoordinate()
	}

	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return logistics.FallbackCoordinate()
	}

	var parsed lookupResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return logistics.FallbackCoordinate()
	}

	return value.Coordinate{Lat: parsed.Lat, Lng: parsed.Lon}
}
