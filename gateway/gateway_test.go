package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wayfarer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	err     error
	panics  bool
	reply   string
	image   *models.InlineData
	weather *models.Weather
	lastReq ChatRequest
}

func (f *fakeBackend) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
	if f.panics {
		panic("boom")
	}
	return f.err
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) GenerateBanner(ctx context.Context, destination string) (*models.InlineData, error) {
	if err := f.hit("banner"); err != nil {
		return nil, err
	}
	return f.image, nil
}

func (f *fakeBackend) FetchWeather(ctx context.Context, location string) (*models.Weather, error) {
	if err := f.hit("weather"); err != nil {
		return nil, err
	}
	return f.weather, nil
}

func (f *fakeBackend) Chat(ctx context.Context, req ChatRequest) (string, error) {
	f.lastReq = req
	if err := f.hit("chat"); err != nil {
		return "", err
	}
	return f.reply, nil
}

func (f *fakeBackend) EditPhoto(ctx context.Context, image models.InlineData, instruction string) (*models.InlineData, error) {
	if err := f.hit("edit"); err != nil {
		return nil, err
	}
	return f.image, nil
}

func (f *fakeBackend) TranslateText(ctx context.Context, text, from, to string) (string, error) {
	if err := f.hit("text"); err != nil {
		return "", err
	}
	return f.reply, nil
}

func (f *fakeBackend) TranslateVision(ctx context.Context, image models.InlineData, from, to string) (string, error) {
	if err := f.hit("vision"); err != nil {
		return "", err
	}
	return f.reply, nil
}

func (f *fakeBackend) TranslateAudio(ctx context.Context, audio models.InlineData, from, to string) (string, error) {
	if err := f.hit("audio"); err != nil {
		return "", err
	}
	return f.reply, nil
}

func TestGateway_FallbacksOnError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("quota exceeded")}
	g := New(backend, nil)
	ctx := context.Background()
	img := models.InlineData{MimeType: "image/jpeg", Data: "abc"}

	banner, ok := g.GenerateBanner(ctx, "Tokyo")
	assert.False(t, ok)
	assert.Empty(t, banner)

	weather, ok := g.FetchWeather(ctx, "Tokyo")
	assert.False(t, ok)
	assert.Nil(t, weather)

	assert.Equal(t, FallbackChat, g.Chat(ctx, ChatRequest{Message: "hi"}))

	edited, ok := g.EditPhoto(ctx, img, "make it sunny")
	assert.False(t, ok)
	assert.Empty(t, edited)

	assert.Equal(t, FallbackTranslation, g.TranslateText(ctx, "hello", "English", "Japanese"))
	assert.Equal(t, FallbackTranslation, g.TranslateVision(ctx, img, "Japanese", "English"))
	assert.Equal(t, FallbackAudio, g.TranslateAudio(ctx, img, "Japanese", "English"))
}

func TestGateway_RecoversFromPanic(t *testing.T) {
	g := New(&fakeBackend{panics: true}, nil)

	assert.NotPanics(t, func() {
		assert.Equal(t, FallbackChat, g.Chat(context.Background(), ChatRequest{Message: "hi"}))
	})
}

func TestGateway_EmptyTranslations(t *testing.T) {
	g := New(&fakeBackend{reply: "   "}, nil)
	ctx := context.Background()
	img := models.InlineData{MimeType: "audio/webm", Data: "abc"}

	assert.Equal(t, EmptyTranslation, g.TranslateText(ctx, "hello", "English", "French"))
	assert.Equal(t, EmptyTranslation, g.TranslateVision(ctx, img, "French", "English"))
	assert.Equal(t, EmptyAudioTranslation, g.TranslateAudio(ctx, img, "French", "English"))
}

func TestGateway_ChatDefaultsModel(t *testing.T) {
	backend := &fakeBackend{reply: "Try the ramen."}
	g := New(backend, nil)

	reply := g.Chat(context.Background(), ChatRequest{Message: "Where should I eat?"})

	assert.Equal(t, "Try the ramen.", reply)
	assert.Equal(t, ModelFlash, backend.lastReq.Model)
}

func TestGateway_BannerDataURL(t *testing.T) {
	g := New(&fakeBackend{image: &models.InlineData{Data: "aGVsbG8="}}, nil)

	banner, ok := g.GenerateBanner(context.Background(), "Kyoto")

	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", banner)
}

func TestGateway_BannerWithoutImage(t *testing.T) {
	g := New(&fakeBackend{}, nil)

	_, ok := g.GenerateBanner(context.Background(), "Kyoto")
	assert.False(t, ok)
}

func TestGateway_CachesWeather(t *testing.T) {
	backend := &fakeBackend{weather: &models.Weather{High: 12, Low: 4, Condition: "Sunny", City: "Tokyo"}}
	g := New(backend, NewMemoryCache())
	ctx := context.Background()

	first, ok := g.FetchWeather(ctx, "Tokyo")
	require.True(t, ok)
	second, ok := g.FetchWeather(ctx, " tokyo ")
	require.True(t, ok)

	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, backend.count("weather"))
}

func TestGateway_CachesTextTranslation(t *testing.T) {
	backend := &fakeBackend{reply: "こんにちは"}
	g := New(backend, NewMemoryCache())
	ctx := context.Background()

	assert.Equal(t, "こんにちは", g.TranslateText(ctx, "hello", "English", "Japanese"))
	assert.Equal(t, "こんにちは", g.TranslateText(ctx, "hello", "English", "Japanese"))
	assert.Equal(t, 1, backend.count("text"))

	g.TranslateText(ctx, "hello", "English", "Korean")
	assert.Equal(t, 2, backend.count("text"))
}

func TestGateway_DoesNotCacheFailures(t *testing.T) {
	backend := &fakeBackend{err: errors.New("unavailable")}
	g := New(backend, NewMemoryCache())
	ctx := context.Background()

	g.TranslateText(ctx, "hello", "English", "Japanese")
	backend.err = nil
	backend.reply = "こんにちは"

	assert.Equal(t, "こんにちは", g.TranslateText(ctx, "hello", "English", "Japanese"))
	assert.Equal(t, 2, backend.count("text"))
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", "v", 20*time.Millisecond)
	v, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("text", "a", "b"), CacheKey("text", "a", "b"))
	assert.NotEqual(t, CacheKey("text", "ab", ""), CacheKey("text", "a", "b"))
	assert.NotEqual(t, CacheKey("text", "a"), CacheKey("weather", "a"))
	assert.Contains(t, CacheKey("weather", "tokyo"), "wayfarer:gateway:weather:")
}

func TestDataURL(t *testing.T) {
	tests := []struct {
		name     string
		input    models.InlineData
		expected string
	}{
		{"default mime", models.InlineData{Data: "AAA"}, "data:image/png;base64,AAA"},
		{"jpeg", models.InlineData{MimeType: "image/jpeg", Data: "BBB"}, "data:image/jpeg;base64,BBB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DataURL(tt.input))
		})
	}
}

func TestSplitDataURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMime string
		wantData string
	}{
		{"jpeg data url", "data:image/jpeg;base64,/9j/4AAQ", "image/jpeg", "/9j/4AAQ"},
		{"audio data url", "data:audio/webm;base64,GkXf", "audio/webm", "GkXf"},
		{"bare payload", "iVBORw0KGgo", "", "iVBORw0KGgo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data := SplitDataURL(tt.input)
			assert.Equal(t, tt.wantMime, mime)
			assert.Equal(t, tt.wantData, data)
		})
	}
}
