package assistant_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Qalifah/freightbooking/assistant"
	"github.com/Qalifah/freightbooking/inmem"
)

func reply(text string, err error) assistant.Model {
	return assistant.ModelFunc(func(context.Context, string, []assistant.Turn) (string, error) {
		return text, err
	})
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name  string
		model assistant.Model
		want  string
	}{
		{"answer", reply("FOB means Free On Board.", nil), "FOB means Free On Board."},
		{"empty answer", reply("", nil), assistant.FallbackEmpty},
		{"model error", reply("", errors.New("timeout")), assistant.FallbackBusy},
		{"unavailable", nil, assistant.FallbackBusy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := assistant.NewService(inmem.NewConversationRepository(), tt.model)
			if got := s.Ask(context.Background(), "What is FOB?", nil); got != tt.want {
				t.Errorf("Ask = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAskBreakerOpens(t *testing.T) {
	var calls int32
	m := assistant.ModelFunc(func(context.Context, string, []assistant.Turn) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("down")
	})
	s := assistant.NewService(inmem.NewConversationRepository(), m)

	for i := 0; i < 20; i++ {
		if got := s.Ask(context.Background(), "hi", nil); got != assistant.FallbackBusy {
			t.Fatalf("Ask #%d = %q", i, got)
		}
	}
	if n := atomic.LoadInt32(&calls); n >= 20 {
		t.Errorf("model called %d times, want the breaker to stop calls", n)
	}
}

func TestConversation(t *testing.T) {
	var history []assistant.Turn
	m := assistant.ModelFunc(func(_ context.Context, message string, h []assistant.Turn) (string, error) {
		history = h
		return "Echo: " + message, nil
	})
	s := assistant.NewService(inmem.NewConversationRepository(), m)

	c, err := s.StartConversation()
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Messages) != 1 || c.Messages[0].Text != assistant.Greeting || c.Messages[0].Role != assistant.Agent {
		t.Fatalf("messages = %+v, want the greeting", c.Messages)
	}

	c, err = s.Send(context.Background(), c.ID, "Hello")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Messages) != 3 {
		t.Fatalf("len(messages) = %d, want 3", len(c.Messages))
	}
	if c.Messages[1].Role != assistant.User || c.Messages[1].Text != "Hello" {
		t.Errorf("user message = %+v", c.Messages[1])
	}
	if c.Messages[2].Role != assistant.Agent || c.Messages[2].Text != "Echo: Hello" {
		t.Errorf("reply = %+v", c.Messages[2])
	}
	if c.Pending {
		t.Error("conversation still pending")
	}
	if len(history) != 1 || history[0].Text != assistant.Greeting {
		t.Errorf("history = %+v, want only the greeting", history)
	}

	loaded, err := s.LoadConversation(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Messages) != 3 {
		t.Errorf("loaded %d messages, want 3", len(loaded.Messages))
	}
}

func TestSendRejects(t *testing.T) {
	s := assistant.NewService(inmem.NewConversationRepository(), reply("ok", nil))
	c, _ := s.StartConversation()

	if _, err := s.Send(context.Background(), c.ID, "   "); err != assistant.ErrEmptyMessage {
		t.Errorf("blank err = %v, want %v", err, assistant.ErrEmptyMessage)
	}
	if _, err := s.Send(context.Background(), "nope", "hi"); err != assistant.ErrUnknown {
		t.Errorf("unknown err = %v, want %v", err, assistant.ErrUnknown)
	}
	if _, err := s.LoadConversation(""); err != assistant.ErrInvalidArgument {
		t.Errorf("load err = %v, want %v", err, assistant.ErrInvalidArgument)
	}

	got, _ := s.LoadConversation(c.ID)
	if len(got.Messages) != 1 {
		t.Errorf("rejected sends recorded messages: %+v", got.Messages)
	}
}

func TestSendWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := assistant.ModelFunc(func(context.Context, string, []assistant.Turn) (string, error) {
		close(started)
		<-release
		return "done", nil
	})
	s := assistant.NewService(inmem.NewConversationRepository(), m)
	c, _ := s.StartConversation()

	errc := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), c.ID, "first")
		errc <- err
	}()
	<-started

	if _, err := s.Send(context.Background(), c.ID, "second"); err != assistant.ErrPending {
		t.Errorf("err = %v, want %v", err, assistant.ErrPending)
	}
	pending, _ := s.LoadConversation(c.ID)
	if !pending.Pending {
		t.Error("conversation not marked pending")
	}

	close(release)
	if err := <-errc; err != nil {
		t.Fatal(err)
	}

	done, _ := s.LoadConversation(c.ID)
	if len(done.Messages) != 3 || done.Messages[2].Text != "done" {
		t.Errorf("messages = %+v", done.Messages)
	}
}
