package maps

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedZone string

func (z fixedZone) GetTimezoneName(lng, lat float64) string {
	return string(z)
}

func ptr(v float64) *float64 {
	return &v
}

func TestView(t *testing.T) {
	l := NewLocatorWithFinder(fixedZone("Asia/Tokyo"))

	tests := []struct {
		name         string
		query        string
		lat, lng     *float64
		wantEmbed    string
		wantExternal string
		wantZone     string
	}{
		{
			name:         "search",
			query:        "Fushimi Inari & Shrine",
			wantEmbed:    "https://www.google.com/maps?q=Fushimi%20Inari%20%26%20Shrine&output=embed",
			wantExternal: "https://www.google.com/maps/search/?api=1&query=Fushimi%20Inari%20%26%20Shrine",
		},
		{
			name:         "search wins over coordinates",
			query:        "Shibuya",
			lat:          ptr(35.6762),
			lng:          ptr(139.6503),
			wantEmbed:    "https://www.google.com/maps?q=Shibuya&output=embed",
			wantExternal: "https://www.google.com/maps/search/?api=1&query=Shibuya",
		},
		{
			name:         "coordinates",
			lat:          ptr(35.6762),
			lng:          ptr(139.6503),
			wantEmbed:    "https://www.google.com/maps?q=35.6762,139.6503&z=15&output=embed",
			wantExternal: "https://www.google.com/maps/search/?api=1&query=35.6762,139.6503",
			wantZone:     "Asia/Tokyo",
		},
		{
			name:         "world",
			query:        "   ",
			wantEmbed:    "https://www.google.com/maps?q=world&z=2&output=embed",
			wantExternal: "https://www.google.com/maps/search/?api=1&query=world",
		},
		{
			name:         "only latitude",
			lat:          ptr(10),
			wantEmbed:    "https://www.google.com/maps?q=world&z=2&output=embed",
			wantExternal: "https://www.google.com/maps/search/?api=1&query=world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := l.View(tt.query, tt.lat, tt.lng)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmbed, view.EmbedURL)
			assert.Equal(t, tt.wantExternal, view.ExternalURL)
			assert.Equal(t, tt.wantZone, view.Timezone)
		})
	}
}

func TestView_InvalidCoordinates(t *testing.T) {
	l := NewLocatorWithFinder(nil)

	_, err := l.View("", ptr(91), ptr(0))
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = l.View("", ptr(0), ptr(-181))
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestNewLocator_ResolvesTimezone(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timezone data load")
	}

	l, err := NewLocator()
	require.NoError(t, err)

	view, err := l.View("", ptr(35.6762), ptr(139.6503))
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", view.Timezone)
}

func TestQRCode(t *testing.T) {
	png, err := QRCode("https://www.google.com/maps/search/?api=1&query=Kyoto", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
