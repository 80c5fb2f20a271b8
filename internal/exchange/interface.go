package exchange

import (
	"context"

	"github.com/davidhbaek/gemini-audio/internal/gemini"
	"github.com/davidhbaek/gemini-audio/internal/wire"
)

type Sender interface {
	// Send one request to the endpoint and return its text
	Send(ctx context.Context, req wire.Request) (wire.Result, error)
}

// Enforce interface compliance
var _ Sender = &gemini.Client{}
