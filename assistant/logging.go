package assistant

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
)

type loggingService struct {
	logger log.Logger
	Service
}

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger, s}
}

func (s *loggingService) Ask(ctx context.Context, message string, history []Turn) (reply string) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "ask",
			"history", len(history),
			"fallback", reply == FallbackBusy || reply == FallbackEmpty,
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.Ask(ctx, message, history)
}

func (s *loggingService) StartConversation() (c Conversation, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "start_conversation",
			"conversation_id", c.ID,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.StartConversation()
}

func (s *loggingService) LoadConversation(id ConversationID) (c Conversation, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "load_conversation",
			"conversation_id", id,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.LoadConversation(id)
}

func (s *loggingService) Send(ctx context.Context, id ConversationID, text string) (c Conversation, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "send",
			"conversation_id", id,
			"messages", len(c.Messages),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Send(ctx, id, text)
}
