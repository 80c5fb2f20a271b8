package exchange

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davidhbaek/gemini-audio/internal/wire"
)

// Runner issues exchanges one at a time. It never retries and adds no timeout
// of its own: a hung endpoint call hangs the caller.
type Runner struct {
	sender Sender
	model  string
	logger zerolog.Logger
}

type Option func(*Runner)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(sender Sender, model string, options ...Option) *Runner {
	r := &Runner{
		sender: sender,
		model:  model,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Exchange sends req and returns its result. An empty model falls back to the
// runner's model.
func (r *Runner) Exchange(ctx context.Context, req wire.Request) (wire.Result, error) {
	if err := req.Validate(); err != nil {
		return wire.Result{}, err
	}
	if req.Model == "" {
		req.Model = r.model
	}

	id := uuid.NewString()
	r.logger.Debug().Str("exchange_id", id).Str("model", req.Model).Int("turns", len(req.Turns)).Msg("exchange started")

	rsp, err := r.sender.Send(ctx, req)
	if err != nil {
		r.logger.Debug().Str("exchange_id", id).Err(err).Msg("exchange failed")
		return wire.Result{}, err
	}

	r.logger.Debug().Str("exchange_id", id).Int("chars", len(rsp.Text)).Msg("exchange finished")
	return rsp, nil
}

// Ask sends a single text prompt.
func (r *Runner) Ask(ctx context.Context, prompt string) (wire.Result, error) {
	return r.Exchange(ctx, wire.TextRequest(r.model, prompt))
}

// Step is one titled prompt of a batch.
type Step struct {
	Title  string
	Prompt string
}

// RunBatch sends every step in order, each with the same attachments, and
// writes each result to out before the next step is sent. The first failure
// stops the batch.
func (r *Runner) RunBatch(ctx context.Context, steps []Step, out io.Writer, attachments ...wire.Content) error {
	for i, step := range steps {
		fmt.Fprintf(out, "\n[%d] %s:\n", i+1, step.Title)
		fmt.Fprintln(out, strings.Repeat("-", 30))

		parts := append([]wire.Content{&wire.Text{Text: step.Prompt}}, attachments...)
		rsp, err := r.Exchange(ctx, wire.Request{
			Model: r.model,
			Turns: []wire.Turn{wire.UserTurn(parts...)},
		})
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(step.Title), err)
		}

		fmt.Fprintln(out, rsp.Text)
	}

	return nil
}
