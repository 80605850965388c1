package gemini

import (
	"context"
	"errors"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNotConfigured is returned by Generate when no API key was present at
// construction. Missing credentials are a recognized state, not a startup
// failure: callers degrade to manual entry.
var ErrNotConfigured = errors.New("gemini API key is not configured")

type IGemini interface {
	Configured() bool
	Generate(ctx context.Context, systemInstruction string, prompt string, maxOutputTokens int32, temperature float32) (string, error)
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	if apiKey == "" {
		return &geminiClient{modelName: modelName}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) Configured() bool {
	return g.client != nil
}

// Generate performs a single GenerateContent round-trip. No retries: a
// transient failure is treated the same as a permanent one by callers.
func (g *geminiClient) Generate(ctx context.Context, systemInstruction string, prompt string, maxOutputTokens int32, temperature float32) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.SetTemperature(temperature)

	if systemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemInstruction)},
		}
	}

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
