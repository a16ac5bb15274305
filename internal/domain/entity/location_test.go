package entity

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Location
		wantErr bool
	}{
		{name: "text", input: `"Lagos"`, want: TextLocation("Lagos")},
		{name: "point", input: `{"latitude": 6.5244, "longitude": 3.3792}`, want: PointLocation(6.5244, 3.3792)},
		{name: "null", input: `null`, want: Location{}},
		{name: "empty object", input: `{}`, want: Location{}},
		{name: "number", input: `42`, wantErr: true},
		{name: "array", input: `[6.5, 3.3]`, wantErr: true},
		{name: "string coordinate", input: `{"latitude": "6.5", "longitude": 3.3}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Location
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrLocationShape))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocation_MarshalJSON(t *testing.T) {
	text, err := json.Marshal(TextLocation("Lagos"))
	require.NoError(t, err)
	assert.JSONEq(t, `"Lagos"`, string(text))

	point, err := json.Marshal(PointLocation(-33.8688, 151.2093))
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude": -33.8688, "longitude": 151.2093}`, string(point))
}

func TestLocation_Valid(t *testing.T) {
	lat := 10.0

	tests := []struct {
		name     string
		location Location
		want     bool
	}{
		{name: "text", location: TextLocation("Lagos"), want: true},
		{name: "blank text", location: TextLocation("   "), want: false},
		{name: "zero value", location: Location{}, want: false},
		{name: "point", location: PointLocation(6.5, 3.3), want: true},
		{name: "origin", location: PointLocation(0, 0), want: true},
		{name: "pole", location: PointLocation(90, 180), want: true},
		{name: "latitude only", location: Location{Latitude: &lat}, want: false},
		{name: "latitude only with text", location: Location{Text: "Lagos", Latitude: &lat}, want: false},
		{name: "latitude out of range", location: PointLocation(91, 0), want: false},
		{name: "longitude out of range", location: PointLocation(0, -181), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.location.Valid())
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
	assert.Equal(t, "user@example.org", NormalizeEmail("user@example.org"))
}
