// Package region maps between district names, LAWD codes, and coordinates.
// The mapping is built once from the static region table and is immutable
// afterwards.
package region

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"rentradar/server/config"
)

// Locator resolves regions by name, code, or coordinate. Coordinate lookup
// tests the point against each region's boundary polygon.
type Locator struct {
	regions    []config.Region
	byCode     map[string]int
	byName     map[string]int
	boundaries []orb.Polygon
}

// NewLocator builds a locator over the configured regions.
func NewLocator(regions []config.Region) *Locator {
	l := &Locator{
		regions:    regions,
		byCode:     make(map[string]int, len(regions)),
		byName:     make(map[string]int, len(regions)),
		boundaries: make([]orb.Polygon, len(regions)),
	}
	for i, r := range regions {
		l.byCode[r.Code] = i
		l.byName[r.Name] = i
		l.boundaries[i] = boundsPolygon(r.Bounds)
	}
	return l
}

// CodeForName returns the LAWD code of a district name.
func (l *Locator) CodeForName(name string) (string, bool) {
	i, ok := l.byName[name]
	if !ok {
		return "", false
	}
	return l.regions[i].Code, true
}

// NameForCode returns the district name of a LAWD code.
func (l *Locator) NameForCode(code string) (string, bool) {
	i, ok := l.byCode[code]
	if !ok {
		return "", false
	}
	return l.regions[i].Name, true
}

// Locate returns the region containing the coordinate, or nil when the point
// falls outside every configured boundary.
func (l *Locator) Locate(lat, lng float64) *config.Region {
	point := orb.Point{lng, lat}
	for i, boundary := range l.boundaries {
		if len(boundary) == 0 {
			continue
		}
		if planar.PolygonContains(boundary, point) {
			region := l.regions[i]
			return &region
		}
	}
	return nil
}

// boundsPolygon converts a [minLat, minLng, maxLat, maxLng] box into a closed
// orb ring. Malformed bounds produce an empty polygon that matches nothing.
func boundsPolygon(bounds []float64) orb.Polygon {
	if len(bounds) != 4 {
		return orb.Polygon{}
	}
	minLat, minLng, maxLat, maxLng := bounds[0], bounds[1], bounds[2], bounds[3]
	ring := orb.Ring{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}
	return orb.Polygon{ring}
}
