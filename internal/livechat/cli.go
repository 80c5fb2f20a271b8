// Package livechat checks that a Gemini model answers and then relays typed
// messages to it, one exchange per line, until "quit".
package livechat

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davidhbaek/gemini-audio/internal/chat"
	"github.com/davidhbaek/gemini-audio/internal/config"
	"github.com/davidhbaek/gemini-audio/internal/exchange"
	"github.com/davidhbaek/gemini-audio/internal/gemini"
	"github.com/davidhbaek/gemini-audio/internal/logging"
)

const prompt = "You: "

var _ chat.Exchanger = &exchange.Runner{}

type env struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	terminal bool
	config   *config.Config
	logger   zerolog.Logger
}

func CLI(args []string) int {
	app := env{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		terminal: chat.IsTerminal(),
	}
	return app.main(args)
}

func (app *env) main(args []string) int {
	err := app.fromArgs(args)
	switch {
	case errors.Is(err, config.ErrMissingCredential):
		fmt.Fprintf(app.stderr, "Error: %v\n", err)
		fmt.Fprintf(app.stderr, "Get your key at: %s\n", config.APIKeyURL)
		return 1
	case errors.Is(err, config.ErrInvalidModel):
		fmt.Fprintf(app.stderr, "Error: %v\n", err)
		return 1
	case errors.Is(err, flag.ErrHelp):
		return 2
	case err != nil:
		fmt.Fprintf(app.stderr, "parsing args: %v\n", err)
		return 2
	}

	if err := app.run(context.Background()); err != nil {
		if gemini.IsTransport(err) {
			fmt.Fprintf(app.stderr, "Connection error: %v\n", err)
			return 1
		}
		fmt.Fprintf(app.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (app *env) fromArgs(args []string) error {
	fl := flag.NewFlagSet("livechat", flag.ContinueOnError)
	fl.SetOutput(app.stderr)

	var model string
	fl.StringVar(&model, "m", "", "the Gemini model to use (flash, pro, lite or a full name)")
	fl.StringVar(&model, "model", "", "the Gemini model to use (flash, pro, lite or a full name)")

	var verbose bool
	fl.BoolVar(&verbose, "v", false, "log debug output to stderr")
	fl.BoolVar(&verbose, "verbose", false, "log debug output to stderr")

	if err := fl.Parse(args); err != nil {
		return err
	}
	if fl.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fl.Args(), " "))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.UseModel(model); err != nil {
		return err
	}

	app.config = cfg
	app.logger = logging.New(app.stderr, verbose || cfg.Debug)

	return nil
}

func (app *env) run(ctx context.Context) error {
	fmt.Fprintln(app.stdout, strings.Repeat("=", 60))
	fmt.Fprintln(app.stdout, "Gemini Live API Test")
	fmt.Fprintln(app.stdout, strings.Repeat("=", 60))
	fmt.Fprintf(app.stdout, "Model: %s\n", app.config.Model)
	fmt.Fprintf(app.stdout, "Type messages to test the Live API. Type %q to exit.\n", chat.Sentinel)
	fmt.Fprintln(app.stdout, strings.Repeat("-", 60))

	client, err := gemini.NewClient(ctx,
		gemini.WithAPIKey(app.config.APIKey),
		gemini.WithBaseURL(app.config.BaseURL),
		gemini.WithLogger(app.logger),
	)
	if err != nil {
		return err
	}

	in, err := app.lineReader()
	if err != nil {
		return err
	}
	if closer, ok := in.(io.Closer); ok {
		defer closer.Close()
	}

	runner := exchange.NewRunner(client, app.config.Model, exchange.WithLogger(app.logger))
	driver := chat.NewDriver(runner, in, app.stdout, app.config.Model,
		chat.WithErrorOutput(app.stderr),
		chat.WithLogger(app.logger),
	)

	return driver.Run(ctx)
}

func (app *env) lineReader() (chat.LineReader, error) {
	if app.terminal {
		return chat.NewTerminalReader(prompt)
	}
	return chat.NewScanReader(app.stdin, app.stdout, prompt), nil
}
