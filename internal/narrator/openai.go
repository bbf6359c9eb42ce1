package narrator

import (
	"context"
	"errors"
	"strings"

	oai "github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

const DefaultOpenAIModel = "gpt-4.1-mini"

// OpenAI narrates with an OpenAI chat model.
type OpenAI struct {
	client oai.Client
	model  string
}

// OpenAIOption configures an OpenAI narrator.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	baseURL string
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) {
		c.baseURL = url
	}
}

// NewOpenAI creates an OpenAI narrator.
func NewOpenAI(apiKey, model string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, &UnavailableError{Provider: "openai", Err: ErrMissingCredential}
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	cfg := &openAIConfig{}
	for _, o := range opts {
		o(cfg)
	}

	// The session owns the timeout policy, so requests are never retried.
	reqOpts := []oaioption.RequestOption{
		oaioption.WithAPIKey(apiKey),
		oaioption.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, oaioption.WithBaseURL(cfg.baseURL))
	}

	return &OpenAI{client: oai.NewClient(reqOpts...), model: model}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Narrate(ctx context.Context, req Request) (string, error) {
	system, err := systemPrompt(req.World)
	if err != nil {
		return "", err
	}

	messages := []oai.ChatCompletionMessageParamUnion{oai.SystemMessage(system)}
	for _, ex := range historyWindow(req.History) {
		messages = append(messages, oai.UserMessage(ex.Command), oai.AssistantMessage(ex.Response))
	}
	messages = append(messages, oai.UserMessage(req.Input))

	resp, err := o.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model:               shared.ChatModel(o.model),
		Messages:            messages,
		Temperature:         param.NewOpt(0.7),
		MaxCompletionTokens: param.NewOpt(int64(400)),
	})
	if err != nil {
		return "", &UnavailableError{Provider: o.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &UnavailableError{Provider: o.Name(), Err: errors.New("empty choices in response")}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &UnavailableError{Provider: o.Name(), Err: errors.New("empty completion")}
	}
	return text, nil
}
