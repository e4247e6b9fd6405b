package spatial

import "errors"

// ErrNoPoints is returned when an operation requires at least one point.
var ErrNoPoints = errors.New("no points")

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox is the axis-aligned extent of a set of points.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// PointInPolygon reports whether p lies inside the polygon using the
// ray-casting even-odd rule. The polygon is treated as closed (last vertex
// connects back to the first) and must have at least 3 vertices.
// Points exactly on an edge or vertex may be classified either way.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) &&
			p.Lng < (pj.Lng-pi.Lng)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lng {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Bounds calculates the bounding box of a set of points.
func Bounds(points []Point) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, ErrNoPoints
	}

	box := BoundingBox{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLng: points[0].Lng,
	}

	for _, p := range points[1:] {
		if p.Lat < box.MinLat {
			box.MinLat = p.Lat
		}
		if p.Lat > box.MaxLat {
			box.MaxLat = p.Lat
		}
		if p.Lng < box.MinLng {
			box.MinLng = p.Lng
		}
		if p.Lng > box.MaxLng {
			box.MaxLng = p.Lng
		}
	}

	return box, nil
}

// Centroid calculates the arithmetic centroid of a set of points.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}
