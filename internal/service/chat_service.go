package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/nikalabs/walletchat/internal/ai"
	"github.com/nikalabs/walletchat/internal/model"
	appErr "github.com/nikalabs/walletchat/internal/pkg/errors"
)

const baseSystemPrompt = `You are an AI assistant for a crypto stablecoin banking app that uses smart wallets.
Your role is to help users understand:
- Smart wallet features and functionality
- Wallet connections (web2 social login and web3 external wallets)
- Transaction processes and gas sponsorship
- Security best practices
- App usage and navigation

IMPORTANT RULES:
- Do NOT provide financial or investment advice
- Do NOT provide trading recommendations
- Do NOT speculate on cryptocurrency prices
- If asked about financial decisions, redirect to: "Please contact support for financial guidance"
- Be helpful, clear, and concise
- If you're unsure about something, say: "Please contact support for assistance with this question."
- Keep responses under 200 words when possible
- Use the provided business knowledge context to answer questions accurately
- If the context doesn't contain relevant information, say so and suggest contacting support`

// contextTopK is how many knowledge entries get injected into the prompt.
const contextTopK = 3

// ChatService runs the retrieval-augmented chat pipeline: rank knowledge
// against the latest user message, fold the winners into the system prompt,
// call the completion provider.
type ChatService struct {
	chatter   ai.IChatter
	retrieval *RetrievalService
	cache     *expirable.LRU[string, string]
}

func NewChatService(chatter ai.IChatter, retrieval *RetrievalService, cacheSize int, cacheTTL time.Duration) *ChatService {
	var cache *expirable.LRU[string, string]
	if cacheSize > 0 && cacheTTL > 0 {
		cache = expirable.NewLRU[string, string](cacheSize, nil, cacheTTL)
	}
	return &ChatService{
		chatter:   chatter,
		retrieval: retrieval,
		cache:     cache,
	}
}

// Chat validates msgs, retrieves context best-effort and returns the model
// reply. Retrieval failures degrade to a contextless prompt; provider
// failures surface typed from the ai package.
func (s *ChatService) Chat(ctx context.Context, msgs []model.Message) (string, error) {
	if err := validateMessages(msgs); err != nil {
		return "", err
	}

	cacheKey := conversationKey(msgs)
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			logutil.GetLogger(ctx).Debug("chat reply cache hit")
			return cached, nil
		}
	}

	system := baseSystemPrompt + s.knowledgeContext(ctx, latestUserText(msgs))

	payload := make([]model.Message, 0, len(msgs)+1)
	payload = append(payload, model.Message{Role: model.RoleSystem, Content: system})
	payload = append(payload, msgs...)

	reply, err := s.chatter.Chat(ctx, payload)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", ai.ErrEmptyResponse
	}
	if s.cache != nil {
		s.cache.Add(cacheKey, reply)
	}
	return reply, nil
}

// knowledgeContext is best-effort: any retrieval error is logged and an empty
// context returned, so a broken embedding provider never blocks the chat.
func (s *ChatService) knowledgeContext(ctx context.Context, query string) string {
	entries, err := s.retrieval.Rank(ctx, query, contextTopK)
	if err != nil {
		logutil.GetLogger(ctx).Error("knowledge retrieval failed, continuing without context", zap.Error(err))
		return ""
	}
	return FormatContext(entries)
}

func validateMessages(msgs []model.Message) error {
	if len(msgs) == 0 {
		return fmt.Errorf("%w: messages are required", appErr.ErrInvalid)
	}
	for i, msg := range msgs {
		if msg.Role != model.RoleUser && msg.Role != model.RoleAssistant {
			return fmt.Errorf("%w: message %d has unsupported role %q", appErr.ErrInvalid, i, msg.Role)
		}
		if msg.Content == "" {
			return fmt.Errorf("%w: message %d has empty content", appErr.ErrInvalid, i)
		}
	}
	return nil
}

// latestUserText picks the retrieval query: content of the last user message,
// empty when the history has none.
func latestUserText(msgs []model.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == model.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}

func conversationKey(msgs []model.Message) string {
	h := sha256.New()
	for _, msg := range msgs {
		h.Write([]byte(msg.Role))
		h.Write([]byte{0})
		h.Write([]byte(msg.Content))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
