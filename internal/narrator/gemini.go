package narrator

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini narrates with a Google Gemini model.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini narrator. The client must be closed with Close.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &UnavailableError{Provider: "gemini", Err: ErrMissingCredential}
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &UnavailableError{Provider: "gemini", Err: err}
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Narrate(ctx context.Context, req Request) (string, error) {
	system, err := systemPrompt(req.World)
	if err != nil {
		return "", err
	}

	// A fresh model handle per call keeps the system instruction local to
	// this request.
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(400)

	cs := model.StartChat()
	for _, ex := range historyWindow(req.History) {
		cs.History = append(cs.History,
			&genai.Content{Role: "user", Parts: []genai.Part{genai.Text(ex.Command)}},
			&genai.Content{Role: "model", Parts: []genai.Part{genai.Text(ex.Response)}},
		)
	}

	resp, err := cs.SendMessage(ctx, genai.Text(req.Input))
	if err != nil {
		return "", &UnavailableError{Provider: g.Name(), Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &UnavailableError{Provider: g.Name(), Err: errors.New("no content returned from Gemini")}
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", &UnavailableError{Provider: g.Name(), Err: errors.New("unexpected response type from Gemini")}
	}
	return strings.TrimSpace(string(text)), nil
}
