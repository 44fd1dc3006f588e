package stub

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/dmorita/sage/internal/config"
	"github.com/dmorita/sage/internal/model"
)

// Responder produces the assistant reply for a prompt.
type Responder interface {
	Reply(ctx context.Context, promptText string) (model.AIResponse, error)
}

// CannedResponder answers with placeholder text echoing the prompt. It is
// the fallback when no Ark credentials are configured.
type CannedResponder struct{}

func (CannedResponder) Reply(_ context.Context, promptText string) (model.AIResponse, error) {
	templates := []string{
		"I understand you're asking about: %q. This is a canned response from the stub backend.",
		"Based on your query about %q, here's what I can tell you...",
		"Interesting question about %q. Let me provide some information...",
	}
	text := fmt.Sprintf(templates[rand.Intn(len(templates))], promptText)

	return model.AIResponse{
		Response: text,
		Model:    "canned",
		Domain:   "general",
	}, nil
}

const systemPrompt = "You are Sage, a concise and friendly study assistant. " +
	"Answer the user's question directly in a few sentences."

// ArkResponder routes prompts through a real Ark chat model via an eino
// chain.
type ArkResponder struct {
	chain     compose.Runnable[map[string]any, *schema.Message]
	modelName string
}

// NewArkResponder compiles the prompt-template -> chat-model chain.
func NewArkResponder(ctx context.Context, cfg config.AIConfig) (*ArkResponder, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}

	return &ArkResponder{chain: runnable, modelName: cfg.Model}, nil
}

func (r *ArkResponder) Reply(ctx context.Context, promptText string) (model.AIResponse, error) {
	message, err := r.chain.Invoke(ctx, map[string]any{
		"system": systemPrompt,
		"query":  promptText,
	})
	if err != nil {
		return model.AIResponse{}, fmt.Errorf("run chat chain: %w", err)
	}

	return model.AIResponse{
		Response: message.Content,
		Model:    r.modelName,
		Domain:   "general",
	}, nil
}
