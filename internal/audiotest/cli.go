// Package audiotest sends one audio file to Gemini with three fixed prompts
// and prints each answer as it arrives.
package audiotest

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davidhbaek/gemini-audio/internal/config"
	"github.com/davidhbaek/gemini-audio/internal/exchange"
	"github.com/davidhbaek/gemini-audio/internal/gemini"
	"github.com/davidhbaek/gemini-audio/internal/logging"
	"github.com/davidhbaek/gemini-audio/internal/media"
	"github.com/davidhbaek/gemini-audio/internal/wire"
)

// Steps are sent in this order, each with the audio attached.
var Steps = []exchange.Step{
	{Title: "Transcription", Prompt: "Transcribe this audio. Provide the full text."},
	{Title: "Audio Description", Prompt: "Describe this audio clip. What do you hear? Include details about speakers, tone, background sounds, etc."},
	{Title: "Content Analysis", Prompt: "Analyze this audio content. Summarize the main topics, identify any speakers, and note the overall sentiment."},
}

var errUsage = errors.New("missing audio file argument")

type env struct {
	stdout io.Writer
	stderr io.Writer
	config *config.Config
	logger zerolog.Logger
	path   string
}

func CLI(args []string) int {
	app := env{stdout: os.Stdout, stderr: os.Stderr}
	return app.main(args)
}

func (app *env) main(args []string) int {
	err := app.fromArgs(args)
	switch {
	case errors.Is(err, config.ErrMissingCredential):
		fmt.Fprintf(app.stderr, "Error: %v\n", err)
		fmt.Fprintf(app.stderr, "Get your key at: %s\n", config.APIKeyURL)
		return 1
	case errors.Is(err, errUsage):
		fmt.Fprintln(app.stderr, "Usage: audiotest [-m model] [-v] <audio_file>")
		fmt.Fprintf(app.stderr, "Supported formats: %s\n", media.SupportedFormats())
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
		if errors.Is(err, media.ErrUnsupportedFormat) {
			fmt.Fprintf(app.stderr, "Error: Unsupported audio format: %s\n", strings.ToLower(filepath.Ext(app.path)))
			fmt.Fprintf(app.stderr, "Supported: %s\n", media.SupportedFormats())
			return 1
		}
		fmt.Fprintf(app.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (app *env) fromArgs(args []string) error {
	fl := flag.NewFlagSet("audiotest", flag.ContinueOnError)
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

	// The credential is checked before anything touches the file.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if fl.NArg() < 1 {
		return errUsage
	}

	if err := cfg.UseModel(model); err != nil {
		return err
	}

	app.config = cfg
	app.path = fl.Arg(0)
	app.logger = logging.New(app.stderr, verbose || cfg.Debug)

	return nil
}

func (app *env) run(ctx context.Context) error {
	if _, ok := media.ContentType(filepath.Ext(app.path)); !ok {
		return media.ErrUnsupportedFormat
	}

	fmt.Fprintf(app.stdout, "Processing: %s\n", app.path)
	fmt.Fprintln(app.stdout, strings.Repeat("-", 50))

	fmt.Fprintln(app.stdout, "Loading audio file...")
	payload, err := media.Prepare(app.path)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Loaded: %s (%s)\n", filepath.Base(app.path), payload.ContentType)

	app.logger.Debug().
		Str("path", app.path).
		Str("content_type", payload.ContentType).
		Int("encoded_len", len(payload.Data)).
		Msg("payload prepared")

	client, err := gemini.NewClient(ctx,
		gemini.WithAPIKey(app.config.APIKey),
		gemini.WithBaseURL(app.config.BaseURL),
		gemini.WithLogger(app.logger),
	)
	if err != nil {
		return err
	}

	runner := exchange.NewRunner(client, app.config.Model, exchange.WithLogger(app.logger))
	if err := runner.RunBatch(ctx, Steps, app.stdout, &wire.Media{Payload: payload}); err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, "\n"+strings.Repeat("-", 50))
	fmt.Fprintln(app.stdout, "Done!")

	return nil
}
