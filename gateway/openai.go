package gateway

import (
	"context"
	"fmt"
	"strings"

	"wayfarer/models"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI serves the text and vision operations through the Chat Completions API.
// Image generation, photo edits and audio are not offered by this provider.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT4oMini,
	}
}

func (o *OpenAI) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func userParts(parts []models.Part) openai.ChatCompletionMessageParamUnion {
	content := make([]openai.ChatCompletionContentPartUnionParam, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			content = append(content, openai.TextContentPart(p.Text))
		}
		if p.InlineData != nil && strings.HasPrefix(p.InlineData.MimeType, "image/") {
			content = append(content, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: DataURL(*p.InlineData),
			}))
		}
	}
	return openai.UserMessage(content)
}

func (o *OpenAI) GenerateBanner(ctx context.Context, destination string) (*models.InlineData, error) {
	return nil, ErrUnsupported
}

func (o *OpenAI) FetchWeather(ctx context.Context, location string) (*models.Weather, error) {
	text, err := o.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("Reply with a single JSON object and nothing else."),
		openai.UserMessage(weatherPrompt(location)),
	})
	if err != nil {
		return nil, err
	}
	return ParseWeather(text)
}

func (o *OpenAI) Chat(ctx context.Context, req ChatRequest) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(assistantInstruction)}
	for _, msg := range req.History {
		if msg.Role == models.RoleModel {
			messages = append(messages, openai.AssistantMessage(msg.Text()))
			continue
		}
		messages = append(messages, userParts(msg.Parts))
	}

	parts := []models.Part{{Text: req.Message}}
	if req.Image != nil {
		parts = append(parts, models.Part{InlineData: req.Image})
	}
	messages = append(messages, userParts(parts))

	return o.complete(ctx, messages)
}

func (o *OpenAI) EditPhoto(ctx context.Context, image models.InlineData, instruction string) (*models.InlineData, error) {
	return nil, ErrUnsupported
}

func (o *OpenAI) TranslateText(ctx context.Context, text, from, to string) (string, error) {
	return o.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(textTranslationPrompt(text, from, to)),
	})
}

func (o *OpenAI) TranslateVision(ctx context.Context, image models.InlineData, from, to string) (string, error) {
	return o.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		userParts([]models.Part{{Text: visionTranslationPrompt(from, to)}, {InlineData: &image}}),
	})
}

func (o *OpenAI) TranslateAudio(ctx context.Context, audio models.InlineData, from, to string) (string, error) {
	return "", ErrUnsupported
}
