package models

// Weather is the gateway's current-weather answer for a location.
type Weather struct {
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Condition string  `json:"condition"`
	City      string  `json:"city"`
}

type TranslateTextRequest struct {
	Text string `json:"text" binding:"required"`
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// TranslateMediaRequest carries base64 image or audio data.
type TranslateMediaRequest struct {
	Data     string `json:"data" binding:"required"`
	MimeType string `json:"mimeType"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
}

type TranslationResponse struct {
	Translation string `json:"translation"`
}

type EditPhotoRequest struct {
	Image       string `json:"image" binding:"required"`
	Instruction string `json:"instruction" binding:"required"`
}

// ImageResponse holds a data URL, or null when the gateway produced nothing.
type ImageResponse struct {
	Image *string `json:"image"`
}

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type ConvertQuery struct {
	From   string  `form:"from" binding:"required,len=3"`
	To     string  `form:"to" binding:"required,len=3"`
	Amount float64 `form:"amount"`
	// Swap prices the amount in the opposite direction, to -> from.
	Swap bool `form:"swap"`
}

type Conversion struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
}

type MapQuery struct {
	Q   string   `form:"q"`
	Lat *float64 `form:"lat"`
	Lng *float64 `form:"lng"`
}

type MapView struct {
	EmbedURL    string `json:"embedUrl"`
	ExternalURL string `json:"externalUrl"`
	Timezone    string `json:"timezone,omitempty"`
}

// WeatherResponse holds null when the weather could not be fetched.
type WeatherResponse struct {
	Weather *Weather `json:"weather"`
}

type BannerResponse struct {
	BannerURL *string     `json:"bannerUrl"`
	Project   TripProject `json:"project"`
}
