// Package maps builds the map viewer links for a place search or a coordinate.
package maps

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"wayfarer/models"

	"github.com/ringsaturn/tzf"
	"github.com/skip2/go-qrcode"
)

const (
	embedBase  = "https://www.google.com/maps"
	searchBase = "https://www.google.com/maps/search/?api=1&query="

	DefaultQRSize = 256
	MaxQRSize     = 1024
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// TimezoneFinder resolves the IANA zone at a longitude and latitude.
type TimezoneFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

type Locator struct {
	finder TimezoneFinder
}

// NewLocator loads the bundled timezone boundaries.
func NewLocator() (*Locator, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone finder: %w", err)
	}
	return &Locator{finder: finder}, nil
}

// NewLocatorWithFinder uses finder for timezones; nil disables them.
func NewLocatorWithFinder(finder TimezoneFinder) *Locator {
	return &Locator{finder: finder}
}

// View returns the embed and external links for a search, falling back to the
// given coordinates and then to a world view.
func (l *Locator) View(query string, lat, lng *float64) (models.MapView, error) {
	query = strings.TrimSpace(query)
	if query != "" {
		q := escape(query)
		return models.MapView{
			EmbedURL:    embedBase + "?q=" + q + "&output=embed",
			ExternalURL: searchBase + q,
		}, nil
	}

	if lat != nil && lng != nil {
		if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
			return models.MapView{}, ErrInvalidCoordinates
		}
		coords := formatCoord(*lat) + "," + formatCoord(*lng)
		view := models.MapView{
			EmbedURL:    embedBase + "?q=" + coords + "&z=15&output=embed",
			ExternalURL: searchBase + coords,
		}
		if l.finder != nil {
			view.Timezone = l.finder.GetTimezoneName(*lng, *lat)
		}
		return view, nil
	}

	return models.MapView{
		EmbedURL:    embedBase + "?q=world&z=2&output=embed",
		ExternalURL: searchBase + "world",
	}, nil
}

// QRCode renders content as a PNG QR code.
func QRCode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	if size > MaxQRSize {
		size = MaxQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
