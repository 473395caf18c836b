package value

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Nigeria's rough bounding box. Positions reported outside of it are treated
// as bogus and replaced with the Ikeja fallback.
const (
	countryMinLat = 4.0
	countryMaxLat = 14.0
	countryMinLng = 2.5
	countryMaxLng = 15.0
)

// InCountryBounds reports whether the coordinate falls inside the expected
// country extent.
func (c Coordinate) InCountryBounds() bool {
	return c.Lat >= countryMinLat && c.Lat <= countryMaxLat &&
		c.Lng >= countryMinLng && c.Lng <= countryMaxLng
}
