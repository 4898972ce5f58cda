// Package gateway wraps the generative-AI provider behind calls that never fail:
// every backend error is logged, traced, and turned into a fallback value.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wayfarer/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// User-facing fallbacks shown in place of missing AI content.
const (
	FallbackChat           = "Sorry, something went wrong! Please try again."
	FallbackTranslation    = "Error during translation."
	FallbackAudio          = "Error during audio processing."
	EmptyTranslation       = "Could not translate."
	EmptyAudioTranslation  = "Could not understand audio."
	EmptyReplyPlaceholder  = "..."
	defaultRequestTimeout  = 45 * time.Second
	weatherCacheTTL        = 30 * time.Minute
	translationCacheTTL    = 24 * time.Hour
	instrumentationLibrary = "wayfarer/gateway"
)

// Default model identifiers.
const (
	ModelFlash = "gemini-3-flash-preview"
	ModelPro   = "gemini-3-pro-preview"
)

// ErrUnsupported is returned by backends for operations they cannot perform.
var ErrUnsupported = errors.New("operation not supported by this provider")

// ChatRequest is one assistant turn: the new message plus the prior history.
type ChatRequest struct {
	Message string
	History []models.ChatMessage
	Model   string
	Image   *models.InlineData
}

// Backend is a generative-AI provider. Any call may fail.
type Backend interface {
	GenerateBanner(ctx context.Context, destination string) (*models.InlineData, error)
	FetchWeather(ctx context.Context, location string) (*models.Weather, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
	EditPhoto(ctx context.Context, image models.InlineData, instruction string) (*models.InlineData, error)
	TranslateText(ctx context.Context, text, from, to string) (string, error)
	TranslateVision(ctx context.Context, image models.InlineData, from, to string) (string, error)
	TranslateAudio(ctx context.Context, audio models.InlineData, from, to string) (string, error)
}

// Gateway is the safe face of a Backend.
type Gateway struct {
	backend Backend
	cache   Cache
	timeout time.Duration

	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// New wraps backend. cache may be nil.
func New(backend Backend, cache Cache) *Gateway {
	meter := otel.Meter(instrumentationLibrary)

	requests, err := meter.Int64Counter("gateway.requests",
		metric.WithDescription("Generative-AI gateway calls by operation and outcome"))
	if err != nil {
		slog.Warn("failed to create gateway counter", "error", err)
		requests = noop.Int64Counter{}
	}

	duration, err := meter.Float64Histogram("gateway.duration",
		metric.WithDescription("Generative-AI gateway call duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		slog.Warn("failed to create gateway histogram", "error", err)
		duration = noop.Float64Histogram{}
	}

	return &Gateway{
		backend:  backend,
		cache:    cache,
		timeout:  defaultRequestTimeout,
		tracer:   otel.Tracer(instrumentationLibrary),
		requests: requests,
		duration: duration,
	}
}

// call runs fn with a timeout inside a span, records metrics, and converts
// panics into errors.
func (g *Gateway) call(ctx context.Context, op string, fn func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := g.tracer.Start(ctx, "gateway."+op)
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}

		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("gateway call failed", "operation", op, "error", err)
		}

		attrs := metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("outcome", outcome),
		)
		g.requests.Add(ctx, 1, attrs)
		g.duration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
		slog.Info("gateway call", "operation", op, "outcome", outcome, "duration", time.Since(start))
	}()

	return fn(ctx)
}

// GenerateBanner returns a data URL of a landscape image of destination.
func (g *Gateway) GenerateBanner(ctx context.Context, destination string) (string, bool) {
	var image *models.InlineData
	err := g.call(ctx, "banner", func(ctx context.Context) error {
		var err error
		image, err = g.backend.GenerateBanner(ctx, destination)
		return err
	})
	if err != nil || image == nil {
		return "", false
	}
	return DataURL(*image), true
}

// FetchWeather returns today's weather for location, cached for half an hour.
func (g *Gateway) FetchWeather(ctx context.Context, location string) (*models.Weather, bool) {
	key := CacheKey("weather", strings.ToLower(strings.TrimSpace(location)))
	var weather models.Weather
	if g.cachedJSON(ctx, key, &weather) {
		return &weather, true
	}

	var result *models.Weather
	err := g.call(ctx, "weather", func(ctx context.Context) error {
		var err error
		result, err = g.backend.FetchWeather(ctx, location)
		return err
	})
	if err != nil || result == nil {
		return nil, false
	}

	g.storeJSON(ctx, key, result, weatherCacheTTL)
	return result, true
}

// Chat returns the assistant's reply, or FallbackChat when the provider fails.
func (g *Gateway) Chat(ctx context.Context, req ChatRequest) string {
	if req.Model == "" {
		req.Model = ModelFlash
	}

	var reply string
	err := g.call(ctx, "chat", func(ctx context.Context) error {
		var err error
		reply, err = g.backend.Chat(ctx, req)
		return err
	})
	if err != nil {
		return FallbackChat
	}
	return reply
}

// EditPhoto applies instruction to image and returns the result as a data URL.
func (g *Gateway) EditPhoto(ctx context.Context, image models.InlineData, instruction string) (string, bool) {
	var edited *models.InlineData
	err := g.call(ctx, "edit_photo", func(ctx context.Context) error {
		var err error
		edited, err = g.backend.EditPhoto(ctx, image, instruction)
		return err
	})
	if err != nil || edited == nil {
		return "", false
	}
	return DataURL(*edited), true
}

func (g *Gateway) TranslateText(ctx context.Context, text, from, to string) string {
	key := CacheKey("text", from, to, text)
	if cached, ok := g.cached(ctx, key); ok {
		return cached
	}

	var out string
	err := g.call(ctx, "translate_text", func(ctx context.Context) error {
		var err error
		out, err = g.backend.TranslateText(ctx, text, from, to)
		return err
	})
	if err != nil {
		return FallbackTranslation
	}
	if strings.TrimSpace(out) == "" {
		return EmptyTranslation
	}

	g.store(ctx, key, out, translationCacheTTL)
	return out
}

func (g *Gateway) TranslateVision(ctx context.Context, image models.InlineData, from, to string) string {
	var out string
	err := g.call(ctx, "translate_vision", func(ctx context.Context) error {
		var err error
		out, err = g.backend.TranslateVision(ctx, image, from, to)
		return err
	})
	if err != nil {
		return FallbackTranslation
	}
	if strings.TrimSpace(out) == "" {
		return EmptyTranslation
	}
	return out
}

func (g *Gateway) TranslateAudio(ctx context.Context, audio models.InlineData, from, to string) string {
	var out string
	err := g.call(ctx, "translate_audio", func(ctx context.Context) error {
		var err error
		out, err = g.backend.TranslateAudio(ctx, audio, from, to)
		return err
	})
	if err != nil {
		return FallbackAudio
	}
	if strings.TrimSpace(out) == "" {
		return EmptyAudioTranslation
	}
	return out
}

// DataURL renders inline data as a data URL, defaulting to PNG.
func DataURL(data models.InlineData) string {
	mime := data.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + data.Data
}

// SplitDataURL returns the mime type and base64 payload of a data URL.
// Input without a "base64," marker is treated as a bare payload.
func SplitDataURL(s string) (mimeType, data string) {
	idx := strings.Index(s, "base64,")
	if idx < 0 {
		return "", s
	}
	header := strings.TrimPrefix(s[:idx], "data:")
	header = strings.TrimSuffix(header, ";")
	return header, s[idx+len("base64,"):]
}
