// Package assistant provides a chat assistant answering logistics
// questions on top of an external language model.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/pborman/uuid"
	"github.com/sony/gobreaker"
)

// Replies used instead of the model's answer.
const (
	Greeting      = "Hello! I am your Nordic AI assistant. How can I help you with your logistics needs today?"
	FallbackBusy  = "I am currently experiencing high traffic. Please try again later."
	FallbackEmpty = "I apologize, I couldn't generate a response at this time."
)

var (
	// ErrInvalidArgument is returned when one or more arguments are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknown is used when a conversation could not be found.
	ErrUnknown = errors.New("unknown conversation")

	// ErrEmptyMessage is returned when sending blank text.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrPending is returned when sending while a reply is still outstanding.
	ErrPending = errors.New("a reply is still pending")
)

// ConversationID identifies a conversation
type ConversationID string

// Message is a turn of a conversation with the time it was recorded.
type Message struct {
	Turn
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a chat between a customer and the assistant.
type Conversation struct {
	ID       ConversationID `json:"id"`
	Messages []Message      `json:"messages"`
	Pending  bool           `json:"pending"`
}

// Repository provides access to a conversation store.
type Repository interface {
	Store(c *Conversation) error
	Find(id ConversationID) (*Conversation, error)
}

// Service is the interface that provides assistant methods.
type Service interface {
	// Ask returns the assistant's answer to message. It never fails; model
	// errors turn into a fallback answer.
	Ask(ctx context.Context, message string, history []Turn) string

	// StartConversation opens a conversation with the greeting.
	StartConversation() (Conversation, error)

	// LoadConversation returns a conversation.
	LoadConversation(id ConversationID) (Conversation, error)

	// Send posts text to a conversation and records the reply.
	Send(ctx context.Context, id ConversationID, text string) (Conversation, error)
}

type service struct {
	mtx           sync.Mutex
	conversations Repository
	generate      endpoint.Endpoint
	now           func() time.Time
}

// NewService returns an assistant answering through model. Calls to the
// model pass through a circuit breaker named "AssistantModel".
func NewService(conversations Repository, model Model) Service {
	if model == nil {
		model = Unavailable
	}
	generate := makeGenerateEndpoint(model)
	generate = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "AssistantModel"}))(generate)

	return &service{
		conversations: conversations,
		generate:      generate,
		now:           time.Now,
	}
}

type generateRequest struct {
	Message string
	History []Turn
}

func makeGenerateEndpoint(m Model) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(generateRequest)
		return m.Generate(ctx, req.Message, req.History)
	}
}

func (s *service) Ask(ctx context.Context, message string, history []Turn) string {
	resp, err := s.generate(ctx, generateRequest{Message: message, History: history})
	if err != nil {
		return FallbackBusy
	}
	if text, _ := resp.(string); text != "" {
		return text
	}
	return FallbackEmpty
}

func (s *service) StartConversation() (Conversation, error) {
	c := &Conversation{
		ID: ConversationID(uuid.New()),
		Messages: []Message{
			{Turn: Turn{Role: Agent, Text: Greeting}, Timestamp: s.now()},
		},
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if err := s.conversations.Store(c); err != nil {
		return Conversation{}, err
	}
	return snapshot(c), nil
}

func (s *service) LoadConversation(id ConversationID) (Conversation, error) {
	if id == "" {
		return Conversation{}, ErrInvalidArgument
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	c, err := s.conversations.Find(id)
	if err != nil {
		return Conversation{}, err
	}
	return snapshot(c), nil
}

func (s *service) Send(ctx context.Context, id ConversationID, text string) (Conversation, error) {
	if id == "" {
		return Conversation{}, ErrInvalidArgument
	}
	if strings.TrimSpace(text) == "" {
		return Conversation{}, ErrEmptyMessage
	}

	s.mtx.Lock()
	c, err := s.conversations.Find(id)
	if err != nil {
		s.mtx.Unlock()
		return Conversation{}, err
	}
	if c.Pending {
		s.mtx.Unlock()
		return Conversation{}, ErrPending
	}
	history := make([]Turn, 0, len(c.Messages))
	for _, m := range c.Messages {
		history = append(history, m.Turn)
	}
	c.Messages = append(c.Messages, Message{Turn: Turn{Role: User, Text: text}, Timestamp: s.now()})
	c.Pending = true
	s.mtx.Unlock()

	reply := s.Ask(ctx, text, history)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	c.Messages = append(c.Messages, Message{Turn: Turn{Role: Agent, Text: reply}, Timestamp: s.now()})
	c.Pending = false
	if err := s.conversations.Store(c); err != nil {
		return Conversation{}, err
	}
	return snapshot(c), nil
}

func snapshot(c *Conversation) Conversation {
	out := *c
	out.Messages = append([]Message(nil), c.Messages...)
	return out
}
