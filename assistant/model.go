package assistant

import (
	"context"
	"errors"
)

// Role tells who authored a turn
type Role string

// conversation roles
const (
	User  Role = "user"
	Agent Role = "model"
)

// Turn is one message of a conversation as the model sees it.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Model generates the assistant's reply to message given the turns that
// came before it.
type Model interface {
	Generate(ctx context.Context, message string, history []Turn) (string, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(ctx context.Context, message string, history []Turn) (string, error)

// Generate calls f.
func (f ModelFunc) Generate(ctx context.Context, message string, history []Turn) (string, error) {
	return f(ctx, message, history)
}

// ErrUnavailable is returned by a model that can't be reached.
var ErrUnavailable = errors.New("assistant model unavailable")

// Unavailable is the model used when none is configured. Every call fails.
var Unavailable Model = ModelFunc(func(context.Context, string, []Turn) (string, error) {
	return "", ErrUnavailable
})

// SystemInstruction is the persona a Model implementation should run under.
const SystemInstruction = `You are "Nordic AI", an expert logistics and supply chain assistant for Nordic Logistics (similar to Maersk).
Your tone is professional, helpful, and concise.
You can help with:
1. Explaining Incoterms (EXW, FOB, CIF, etc.).
2. Providing general transit time estimates between major global ports.
3. Suggesting container types for specific goods.
4. Explaining customs procedures generally.

Do not provide real-time tracking data as you don't have access to the live database, but explain *how* to track using the tracking ID.
If the user asks about specific illegal items, politely decline.
Keep answers under 150 words unless requested otherwise.`
