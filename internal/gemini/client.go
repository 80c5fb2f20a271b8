package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/davidhbaek/gemini-audio/internal/wire"
)

// Client sends exchanges to the Gemini API. It is built once per process and
// is read-only afterwards.
type Client struct {
	config      *Config
	httpClient  *http.Client
	genaiClient *genai.Client
	logger      zerolog.Logger
}

type Option func(*Client)

func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.config.apiKey = apiKey
	}
}

// WithBaseURL points the client at another endpoint, e.g. a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.config.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithGenaiClient injects an already initialized genai.Client
func WithGenaiClient(existing *genai.Client) Option {
	return func(c *Client) {
		c.genaiClient = existing
	}
}

func NewClient(ctx context.Context, options ...Option) (*Client, error) {
	c := &Client{
		config: NewConfig("", ""),
		logger: zerolog.Nop(),
	}

	for _, option := range options {
		option(c)
	}

	if c.genaiClient != nil {
		return c, nil
	}

	if c.config.apiKey == "" {
		return nil, errors.New("API key is required for Gemini API backend")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     c.config.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.config.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: c.config.baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	c.genaiClient = client

	return c, nil
}

// Send performs one generateContent call. A response without any text is a
// successful empty result.
func (c *Client) Send(ctx context.Context, req wire.Request) (wire.Result, error) {
	if err := req.Validate(); err != nil {
		return wire.Result{}, err
	}

	contents, err := buildContents(req.Turns)
	if err != nil {
		return wire.Result{}, err
	}

	c.logger.Debug().Str("model", req.Model).Int("turns", len(contents)).Msg("calling generateContent")

	rsp, err := c.genaiClient.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		c.logger.Debug().Err(err).Str("model", req.Model).Msg("generateContent failed")
		return wire.Result{}, classify(err)
	}

	if rsp != nil && rsp.UsageMetadata != nil {
		c.logger.Debug().
			Int32("input_tokens", rsp.UsageMetadata.PromptTokenCount).
			Int32("output_tokens", rsp.UsageMetadata.CandidatesTokenCount).
			Msg("generateContent usage")
	}

	return wire.Result{Text: responseText(rsp)}, nil
}

func buildContents(turns []wire.Turn) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(turns))

	for _, turn := range turns {
		parts := make([]*genai.Part, 0, len(turn.Content))

		for _, content := range turn.Content {
			switch part := content.(type) {
			case *wire.Text:
				parts = append(parts, &genai.Part{Text: part.Text})

			case *wire.Media:
				data, err := part.Payload.Bytes()
				if err != nil {
					return nil, fmt.Errorf("decoding %s payload: %w", part.Payload.ContentType, err)
				}
				parts = append(parts, &genai.Part{
					InlineData: &genai.Blob{
						MIMEType: part.Payload.ContentType,
						Data:     data,
					},
				})

			default:
				return nil, fmt.Errorf("unsupported content type %q", content.GetType())
			}
		}

		role := turn.Role
		if role == "" {
			role = wire.RoleUser
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}

	return contents, nil
}

// responseText joins the text parts of the first candidate, skipping thoughts.
func responseText(rsp *genai.GenerateContentResponse) string {
	if rsp == nil || len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}

	return text.String()
}
