// Package chat owns the conversation transcript and the send flow against
// the AI endpoint. The transcript is append-only; a reset clears it
// wholesale.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmorita/sage/internal/model"
	chatmodel "github.com/dmorita/sage/internal/model/chat"
)

// Synthetic assistant replies. Send failures are masked behind a fixed
// apology so raw error text never reaches the transcript.
const (
	loginPromptMessage = "Please log in to start chatting with the assistant."
	apologyMessage     = "Sorry, I couldn't process your request. Please try again."
)

// PromptAPI is the slice of the network client the chat session needs.
type PromptAPI interface {
	SendPrompt(ctx context.Context, prompt, token string) (model.AIResponse, error)
}

// TokenSource yields the bearer token to attach to prompt calls. The session
// manager satisfies this; chat never holds the token itself.
type TokenSource interface {
	Token() (string, bool)
}

// Session holds one conversation with the assistant.
type Session struct {
	api    PromptAPI
	tokens TokenSource
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	messages []chatmodel.Message
}

// NewSession wires a chat session to the network client and token source.
// logger may be nil.
func NewSession(api PromptAPI, tokens TokenSource, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		api:      api,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
		messages: make([]chatmodel.Message, 0, 16),
	}
}

// Send submits text to the assistant. Whitespace-only text is a no-op. The
// user message is appended optimistically before the network call; the reply
// or a synthetic assistant message follows. Failures are logged, never
// surfaced: the caller sees only the transcript grow.
func (s *Session) Send(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.append(chatmodel.Message{Content: text, FromUser: true})

	token, ok := s.tokens.Token()
	if !ok {
		s.append(chatmodel.Message{Content: loginPromptMessage})
		return
	}

	resp, err := s.api.SendPrompt(ctx, text, token)
	if err != nil {
		s.logger.Warn("prompt failed", zap.Error(err))
		s.append(chatmodel.Message{Content: apologyMessage})
		return
	}

	s.append(chatmodel.Message{Content: resp.Response})
}

// Clear empties the transcript unconditionally.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = s.messages[:0]
}

// Messages returns a copy of the transcript in order.
func (s *Session) Messages() []chatmodel.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]chatmodel.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

func (s *Session) append(message chatmodel.Message) {
	message.ID = uuid.NewString()
	message.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}
