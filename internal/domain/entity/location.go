package entity

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrLocationShape is returned when a location is neither a JSON string nor a JSON object.
var ErrLocationShape = errors.New("location must be a string or an object with latitude and longitude")

// globe bounds valid coordinates; X is longitude, Y is latitude.
var globe = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Location is either a free-text place name or a latitude/longitude pair.
// Exactly one form is meaningful: when both coordinates are set the text is ignored.
type Location struct {
	Text      string
	Latitude  *float64
	Longitude *float64
}

// TextLocation builds a free-text location.
func TextLocation(text string) Location {
	return Location{Text: text}
}

// PointLocation builds a coordinate location.
func PointLocation(latitude, longitude float64) Location {
	return Location{Latitude: &latitude, Longitude: &longitude}
}

// IsPoint reports whether the location was given in structured form.
// A single coordinate still counts, so that it fails validation instead of falling back to text.
func (l Location) IsPoint() bool {
	return l.Latitude != nil || l.Longitude != nil
}

// Point returns the location as an orb point. Only meaningful when IsPoint is true.
func (l Location) Point() orb.Point {
	var p orb.Point
	if l.Longitude != nil {
		p[0] = *l.Longitude
	}
	if l.Latitude != nil {
		p[1] = *l.Latitude
	}

	return p
}

// Valid reports whether the location satisfies its shape predicate.
func (l Location) Valid() bool {
	if l.IsPoint() {
		return l.Latitude != nil && l.Longitude != nil && globe.Contains(l.Point())
	}

	return strings.TrimSpace(l.Text) != ""
}

type locationPoint struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// MarshalJSON encodes a text location as a JSON string and a point as an object.
func (l Location) MarshalJSON() ([]byte, error) {
	if l.IsPoint() {
		return json.Marshal(locationPoint{Latitude: l.Latitude, Longitude: l.Longitude})
	}

	return json.Marshal(l.Text)
}

// UnmarshalJSON accepts a string, an object, or null (the zero location, rejected later by validation).
func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = Location{}

		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return errors.Wrap(err, "decode location text")
		}
		*l = Location{Text: text}

		return nil
	case '{':
		var point locationPoint
		if err := json.Unmarshal(trimmed, &point); err != nil {
			return errors.Wrap(ErrLocationShape, err.Error())
		}
		*l = Location{Latitude: point.Latitude, Longitude: point.Longitude}

		return nil
	default:
		return ErrLocationShape
	}
}
