package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/careerlens/internal/ai"
	"github.com/spigell/careerlens/internal/logger"
)

const (
	Provider     = "gemini"
	defaultModel = "gemini-2.5-flash"
)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide prompt and chat interactions.
type Generator struct {
	models    contentModels
	modelName string
	logger    *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, model, log), nil
}

func newGenerator(models contentModels, model string, log *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{
		models:    models,
		modelName: model,
		logger:    logger.ForModel(log, Provider, model),
	}
}

// Generate sends a single user prompt and returns the textual reply.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ai.ErrEmptyPrompt
	}

	return g.generate(ctx, genai.Text(prompt), nil)
}

// Chat replays the conversation. System messages become the system instruction
// and assistant turns are sent with the model role.
func (g *Generator) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	system, turns := ai.SplitSystem(messages)
	if len(turns) == 0 {
		return "", ai.ErrEmptyPrompt
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		var role genai.Role = genai.RoleUser
		if turn.Role == ai.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	return g.generate(ctx, contents, cfg)
}

// Ping asks for a single output token. An empty reply still counts as reachable.
func (g *Generator) Ping(ctx context.Context) error {
	if g == nil || g.models == nil {
		return errors.New("gemini generator is not initialized")
	}

	_, err := g.models.GenerateContent(ctx, g.modelName, genai.Text("ping"), &genai.GenerateContentConfig{MaxOutputTokens: 1})
	if err != nil {
		return fmt.Errorf("ping gemini: %w", err)
	}
	return nil
}

func (g *Generator) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	g.logger.Debug("gemini generate content request", zap.Int("turns", len(contents)))

	resp, err := g.models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	output := responseText(resp)
	if output == "" {
		return "", ai.ErrEmptyResponse
	}

	return output, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func (g *Generator) Provider() string {
	return Provider
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
