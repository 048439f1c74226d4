package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// GenerationModel is the fixed chat model used for answers.
const GenerationModel = "gpt-3.5-turbo"

// SystemPrompt restricts the model to the retrieved context. If the context
// is insufficient the model must say so instead of improvising.
const SystemPrompt = "Responde exclusivamente con la información proporcionada en el contexto. " +
	"No agregues conocimientos previos ni información externa. " +
	"Si no puedes responder con el contexto, di que no hay suficiente información."

// NoResponseContent is returned when the model produces a degenerate empty
// response; the pipeline treats that as an answer, not a failure.
const NoResponseContent = "No response content from AI."

// Generator produces an answer for a question given the retrieved context.
type Generator interface {
	Generate(ctx context.Context, pregunta, contexto string) (string, error)
}

// OpenAIGenerator implements Generator via the chat completions API at
// temperature 0 for deterministic sampling.
type OpenAIGenerator struct {
	client openai.Client
}

func NewOpenAIGenerator(apiKey string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrGenerationService)
	}
	return &OpenAIGenerator{client: openai.NewClient(option.WithAPIKey(apiKey))}, nil
}

// Generate sends the system instruction plus "{contexto}\n\nPregunta:
// {pregunta}" and returns the model's text verbatim.
func (g *OpenAIGenerator) Generate(ctx context.Context, pregunta, contexto string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(GenerationModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(fmt.Sprintf("%s\n\nPregunta: %s", contexto, pregunta)),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationService, err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return NoResponseContent, nil
	}
	return completion.Choices[0].Message.Content, nil
}

var _ Generator = (*OpenAIGenerator)(nil)
