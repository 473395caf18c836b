package logistics

import (
	"math"
	"strings"

	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/value"
)

const earthRadiusKm = 6371

// Default fee constants: flat rider base plus a per-kilometre rate, in naira.
const (
	DefaultBaseFee   = 500
	DefaultPerKmRate = 250
)

// FallbackMarket is assumed when a market label matches no known entry.
// It is a heuristic, not a geocoder.
const FallbackMarket = "Ikeja"

type market struct {
	name  string
	coord value.Coordinate
}

// The fixed set of Lagos markets the agent covers. Order matters: the first
// substring match against a deal's market label wins.
var knownMarkets = []market{ //nolint:gochecknoglobals
	{"Mile 12", value.Coordinate{Lat: 6.6111, Lng: 3.3951}},
	{"Oyingbo", value.Coordinate{Lat: 6.4789, Lng: 3.3813}},
	{"Alaba", value.Coordinate{Lat: 6.4624, Lng: 3.1906}},
	{"Computer Village", value.Coordinate{Lat: 6.5933, Lng: 3.3359}},
	{"Ikeja", value.Coordinate{Lat: 6.5933, Lng: 3.3359}},
	{"Balogun", value.Coordinate{Lat: 6.4549, Lng: 3.3887}},
	{"Lagos Island", value.Coordinate{Lat: 6.4549, Lng: 3.3887}},
}

// FallbackCoordinate is the reference point in the primary market, used when
// geolocation is denied or reports a position outside the country extent.
func FallbackCoordinate() value.Coordinate {
	return value.Coordinate{Lat: 6.5933, Lng: 3.3359}
}

// Estimator derives delivery-fee quotes from a requester location and a
// deal's source market. Quotes are cheap and recomputed per deal per request,
// never memoized.
type Estimator struct {
	baseFee   float64
	perKmRate float64
}

func NewEstimator(baseFee, perKmRate float64) Estimator {
	return Estimator{
		baseFee:   baseFee,
		perKmRate: perKmRate,
	}
}

// Quote estimates the logistics cost for one deal. A nil requester location
// yields no quote: absence is explicit, not a zero-cost default.
func (e Estimator) Quote(
	requester *value.Coordinate,
	deal entity.Deal,
	mode entity.LogisticsMode,
) *entity.LogisticsQuote {
	if requester == nil {
		return nil
	}

	name, coord := ResolveMarket(deal.BuyMarket)
	distance := Haversine(*requester, coord)

	cost := e.baseFee + distance*e.perKmRate
	if mode == entity.ModePickup {
		// Round trip: the buyer collects in person.
		cost *= 2
	}

	return &entity.LogisticsQuote{
		Market:        name,
		DistanceKm:    distance,
		Mode:          mode,
		EstimatedCost: cost,
	}
}

// ResolveMarket maps a free-text market label to one of the known
// coordinates by case-insensitive substring match, falling back to Ikeja.
func ResolveMarket(label string) (string, value.Coordinate) {
	needle := strings.ToLower(label)

	for _, m := range knownMarkets {
		if strings.Contains(needle, strings.ToLower(m.name)) {
			return m.name, m.coord
		}
	}

	return FallbackMarket, FallbackCoordinate()
}

// Haversine computes the great-circle distance between two coordinates in
// kilometres.
func Haversine(a, b value.Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
