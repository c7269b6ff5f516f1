package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiCompleter calls the Gemini completion API. One client per request
// keeps the bridge stateless about connection lifetime.
type GeminiCompleter struct {
	apiKey string
	model  string
}

// NewGeminiCompleter returns nil when no key is configured, which the
// bridge reports as config_error instead of attempting doomed calls.
func NewGeminiCompleter(apiKey string) *GeminiCompleter {
	if apiKey == "" {
		return nil
	}
	return &GeminiCompleter{apiKey: apiKey, model: "gemini-2.0-flash-001"}
}

func (g *GeminiCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt+"\n\nUSER: "+userMessage))
	if err != nil {
		if isCredentialError(err) {
			return "", fmt.Errorf("%w: %v", ErrMissingCredential, err)
		}
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt), nil
		}
	}
	return "", fmt.Errorf("gemini returned no text part")
}

// isCredentialError picks auth failures out of the upstream error so the
// bridge can distinguish config_error from a plain disconnect.
func isCredentialError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401 || apiErr.Code == 403
	}
	return false
}
