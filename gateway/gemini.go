package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wayfarer/models"

	"google.golang.org/genai"
)

const (
	geminiImageModel = "gemini-2.5-flash-image"
	geminiAudioModel = "gemini-2.5-flash-native-audio-preview-09-2025"
)

var errNoCandidates = errors.New("empty response from Gemini")

// Gemini serves every operation through the Gemini API.
type Gemini struct {
	client *genai.Client
	// err is the client construction failure, e.g. a missing API key.
	// Every call returns it so the gateway falls back.
	err error
}

// NewGemini creates a Gemini API client. baseURL overrides the endpoint and
// may be empty.
func NewGemini(apiKey, baseURL string) *Gemini {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return &Gemini{err: fmt.Errorf("failed to create Gemini client: GEMINI_API_KEY missing or invalid: %w", err)}
	}
	return &Gemini{client: client}
}

func (g *Gemini) generate(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	return resp, nil
}

// geminiParts converts message parts, decoding inline base64 payloads.
func geminiParts(parts []models.Part) ([]*genai.Part, error) {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			out = append(out, genai.NewPartFromText(p.Text))
		}
		if p.InlineData != nil {
			raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode inline data: %w", err)
			}
			out = append(out, genai.NewPartFromBytes(raw, p.InlineData.MimeType))
		}
	}
	return out, nil
}

func userTurn(parts ...models.Part) ([]*genai.Content, error) {
	converted, err := geminiParts(parts)
	if err != nil {
		return nil, err
	}
	return []*genai.Content{genai.NewContentFromParts(converted, genai.RoleUser)}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	return strings.TrimSpace(resp.Text())
}

// responseImage returns the first inline image of the first candidate.
func responseImage(resp *genai.GenerateContentResponse) (*models.InlineData, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errNoCandidates
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return &models.InlineData{
				MimeType: p.InlineData.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
			}, nil
		}
	}
	return nil, nil
}

func (g *Gemini) GenerateBanner(ctx context.Context, destination string) (*models.InlineData, error) {
	contents, err := userTurn(models.Part{Text: bannerPrompt(destination)})
	if err != nil {
		return nil, err
	}
	resp, err := g.generate(ctx, geminiImageModel, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: "16:9"},
	})
	if err != nil {
		return nil, err
	}
	return responseImage(resp)
}

var weatherSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"high":      {Type: genai.TypeNumber},
		"low":       {Type: genai.TypeNumber},
		"condition": {Type: genai.TypeString},
		"city":      {Type: genai.TypeString},
	},
	Required: []string{"high", "low", "condition", "city"},
}

func (g *Gemini) FetchWeather(ctx context.Context, location string) (*models.Weather, error) {
	contents, err := userTurn(models.Part{Text: weatherPrompt(location)})
	if err != nil {
		return nil, err
	}
	resp, err := g.generate(ctx, ModelFlash, contents, &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   weatherSchema,
	})
	if err != nil {
		return nil, err
	}
	return ParseWeather(responseText(resp))
}

// Chat replays the session history into a new SDK chat and sends the message.
func (g *Gemini) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if g.err != nil {
		return "", g.err
	}

	history := make([]*genai.Content, 0, len(req.History))
	for _, msg := range req.History {
		parts, err := geminiParts(msg.Parts)
		if err != nil {
			return "", err
		}
		history = append(history, genai.NewContentFromParts(parts, genai.Role(msg.Role)))
	}

	chat, err := g.client.Chats.Create(ctx, req.Model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistantInstruction, genai.RoleUser),
	}, history)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	message := []models.Part{{Text: req.Message}}
	if req.Image != nil {
		message = append(message, models.Part{InlineData: req.Image})
	}
	parts, err := geminiParts(message)
	if err != nil {
		return "", err
	}

	resp, err := chat.Send(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	return responseText(resp), nil
}

func (g *Gemini) EditPhoto(ctx context.Context, image models.InlineData, instruction string) (*models.InlineData, error) {
	contents, err := userTurn(models.Part{InlineData: &image}, models.Part{Text: instruction})
	if err != nil {
		return nil, err
	}
	resp, err := g.generate(ctx, geminiImageModel, contents, nil)
	if err != nil {
		return nil, err
	}
	return responseImage(resp)
}

func (g *Gemini) TranslateText(ctx context.Context, text, from, to string) (string, error) {
	return g.generateText(ctx, ModelFlash, models.Part{Text: textTranslationPrompt(text, from, to)})
}

func (g *Gemini) TranslateVision(ctx context.Context, image models.InlineData, from, to string) (string, error) {
	return g.generateText(ctx, ModelFlash, models.Part{InlineData: &image}, models.Part{Text: visionTranslationPrompt(from, to)})
}

func (g *Gemini) TranslateAudio(ctx context.Context, audio models.InlineData, from, to string) (string, error) {
	return g.generateText(ctx, geminiAudioModel, models.Part{InlineData: &audio}, models.Part{Text: audioTranslationPrompt(from, to)})
}

func (g *Gemini) generateText(ctx context.Context, model string, parts ...models.Part) (string, error) {
	contents, err := userTurn(parts...)
	if err != nil {
		return "", err
	}
	resp, err := g.generate(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// ParseWeather reads the weather JSON object, tolerating a Markdown code fence.
func ParseWeather(text string) (*models.Weather, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var w models.Weather
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &w); err != nil {
		return nil, fmt.Errorf("failed to parse weather: %w", err)
	}
	if w.Condition == "" && w.City == "" {
		return nil, fmt.Errorf("failed to parse weather: empty object")
	}
	return &w, nil
}
