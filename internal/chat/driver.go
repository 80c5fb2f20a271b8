// Package chat drives the interactive prompt loop of livechat.
//
// The driver is an explicit two state machine. Each Step blocks on exactly one
// LineReader.ReadLine call and at most one exchange, so no two exchanges are
// ever in flight and output order always matches input order.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davidhbaek/gemini-audio/internal/wire"
)

type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Terminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// Sentinel ends the session, compared case-insensitively.
	Sentinel = "quit"

	ProbePrompt = `Say "Hello! Native Audio API is ready." in exactly those words.`
)

// Exchanger runs one single-turn text exchange.
type Exchanger interface {
	Ask(ctx context.Context, prompt string) (wire.Result, error)
}

type Driver struct {
	exchanger Exchanger
	in        LineReader
	out       io.Writer
	errOut    io.Writer
	model     string
	state     State
	logger    zerolog.Logger
}

type Option func(*Driver)

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithErrorOutput sends per-line failure messages to w instead of the
// response output.
func WithErrorOutput(w io.Writer) Option {
	return func(d *Driver) {
		d.errOut = w
	}
}

func NewDriver(exchanger Exchanger, in LineReader, out io.Writer, model string, options ...Option) *Driver {
	d := &Driver{
		exchanger: exchanger,
		in:        in,
		out:       out,
		errOut:    out,
		model:     model,
		state:     Running,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *Driver) State() State {
	return d.state
}

// Probe checks credentials and model availability with one fixed prompt. On
// failure the driver is terminated and the loop must not start.
func (d *Driver) Probe(ctx context.Context) error {
	fmt.Fprintln(d.out, "\nTesting model connection...")

	rsp, err := d.exchanger.Ask(ctx, ProbePrompt)
	if err != nil {
		d.terminate("probe failed")
		return fmt.Errorf("probing model %s: %w", d.model, err)
	}

	fmt.Fprintf(d.out, "Response: %s\n\n", rsp.Text)
	fmt.Fprintln(d.out, "Model connection successful!")
	fmt.Fprintln(d.out)
	return nil
}

// Step reads one line and handles it. Exchange failures are printed and keep
// the driver running. The returned error is only for a broken input source.
func (d *Driver) Step(ctx context.Context) error {
	if d.state == Terminated {
		return nil
	}

	line, err := d.in.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) {
			d.terminate("input closed")
			return nil
		}
		d.terminate("input failed")
		return fmt.Errorf("reading input: %w", err)
	}

	if strings.EqualFold(line, Sentinel) {
		fmt.Fprintln(d.out, "Goodbye!")
		d.terminate("sentinel")
		return nil
	}

	rsp, err := d.exchanger.Ask(ctx, line)
	if err != nil {
		d.logger.Debug().Err(err).Msg("exchange failed, session continues")
		fmt.Fprintf(d.errOut, "Error: %v\n\n", err)
		return nil
	}

	fmt.Fprintf(d.out, "Gemini: %s\n\n", rsp.Text)
	return nil
}

// Run probes the model and then serves lines until the sentinel or the end of
// input.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.Probe(ctx); err != nil {
		return err
	}

	for d.state == Running {
		if err := d.Step(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (d *Driver) terminate(reason string) {
	d.logger.Debug().Str("reason", reason).Stringer("from", d.state).Msg("session terminated")
	d.state = Terminated
}
